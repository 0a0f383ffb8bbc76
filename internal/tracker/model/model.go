package model

import "time"

type Company struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Contact struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"-"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	LinkedIn  *string   `json:"linkedin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Application struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"-"`
	Status      Status    `json:"status"`
	AppliedDate Date      `json:"applied_date"`
	ContactID   *string   `json:"contact_id,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Job carries its Application's owner denormalized into OwnerID so read
// queries stay single-table; write paths verify the two always agree.
type Job struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"-"`
	ApplicationID string    `json:"application_id"`
	CompanyID     string    `json:"company_id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description,omitempty"`
	Requirements  *string   `json:"requirements,omitempty"`
	Location      *string   `json:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
