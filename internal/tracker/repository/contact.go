package repository

import (
	"context"
	"database/sql"

	"jobtrackr/internal/tracker/model"
	"jobtrackr/pkg/logger"
)

const contactCols = "id, owner_id, name, email, phone, linkedin, created_at, updated_at"

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Contact, error) {
	var c model.Contact
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+contactCols+` FROM contacts WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.LinkedIn, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO contacts (id, owner_id, name, email, phone, linkedin, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING created_at, updated_at`,
		c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.LinkedIn,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert contact for owner %s: %v", c.OwnerID, err)
	}
	return err
}

func (r *ContactRepository) Update(ctx context.Context, c *model.Contact) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE contacts SET name = $1, email = $2, phone = $3, linkedin = $4, updated_at = NOW()
		 WHERE id = $5 AND owner_id = $6 RETURNING updated_at`,
		c.Name, c.Email, c.Phone, c.LinkedIn, c.ID, c.OwnerID,
	).Scan(&c.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to update contact %s: %v", c.ID, err)
	}
	return err
}

func (r *ContactRepository) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM contacts WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		if !IsForeignKeyViolation(err) {
			logger.Sugar.Errorf("Failed to delete contact %s: %v", id, err)
		}
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ContactRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		logger.Sugar.Errorf("Failed to count contacts for owner %s: %v", ownerID, err)
	}
	return n, err
}

func (r *ContactRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+contactCols+` FROM contacts WHERE owner_id = $1
		 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		logger.Sugar.Errorf("Failed to list contacts for owner %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.LinkedIn, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
