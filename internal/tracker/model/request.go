package model

import "jobtrackr/pkg/pagination"

type CompanyRequest struct {
	Name    string  `json:"name"`
	Website *string `json:"website"`
}

type ContactRequest struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
}

type ApplicationRequest struct {
	Status      string  `json:"status"`
	AppliedDate string  `json:"applied_date"`
	ContactID   *string `json:"contact_id"`
	Notes       *string `json:"notes"`
}

type JobRequest struct {
	ApplicationID string  `json:"application_id"`
	CompanyID     string  `json:"company_id"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	Requirements  *string `json:"requirements"`
	Location      *string `json:"location"`
}

// ListResponse is the envelope for every paginated list endpoint.
type ListResponse struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}
