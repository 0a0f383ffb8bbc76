package repository

import (
	"context"
	"database/sql"

	"jobtrackr/internal/tracker/model"
	"jobtrackr/pkg/logger"
)

const applicationCols = "id, owner_id, status, applied_date, contact_id, notes, created_at, updated_at"

type ApplicationRepository struct {
	DB *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Application, error) {
	var a model.Application
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+applicationCols+` FROM applications WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&a.ID, &a.OwnerID, &a.Status, &a.AppliedDate, &a.ContactID, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) Insert(ctx context.Context, a *model.Application) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO applications (id, owner_id, status, applied_date, contact_id, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING created_at, updated_at`,
		a.ID, a.OwnerID, a.Status, a.AppliedDate, a.ContactID, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert application for owner %s: %v", a.OwnerID, err)
	}
	return err
}

func (r *ApplicationRepository) Update(ctx context.Context, a *model.Application) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE applications SET status = $1, applied_date = $2, contact_id = $3, notes = $4, updated_at = NOW()
		 WHERE id = $5 AND owner_id = $6 RETURNING updated_at`,
		a.Status, a.AppliedDate, a.ContactID, a.Notes, a.ID, a.OwnerID,
	).Scan(&a.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to update application %s: %v", a.ID, err)
	}
	return err
}

func (r *ApplicationRepository) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM applications WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		if !IsForeignKeyViolation(err) {
			logger.Sugar.Errorf("Failed to delete application %s: %v", id, err)
		}
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ApplicationRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		logger.Sugar.Errorf("Failed to count applications for owner %s: %v", ownerID, err)
	}
	return n, err
}

// List orders by applied_date descending with id as tiebreaker, the
// deterministic order the client shows applications in.
func (r *ApplicationRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]model.Application, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+applicationCols+` FROM applications WHERE owner_id = $1
		 ORDER BY applied_date DESC, id ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		logger.Sugar.Errorf("Failed to list applications for owner %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	applications := []model.Application{}
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Status, &a.AppliedDate, &a.ContactID, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, a)
	}
	return applications, rows.Err()
}
