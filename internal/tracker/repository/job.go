package repository

import (
	"context"
	"database/sql"

	"jobtrackr/internal/tracker/model"
	"jobtrackr/pkg/logger"
)

const jobCols = "id, owner_id, application_id, company_id, title, description, requirements, location, created_at, updated_at"

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Job, error) {
	var j model.Job
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&j.ID, &j.OwnerID, &j.ApplicationID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Insert(ctx context.Context, j *model.Job) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO jobs (id, owner_id, application_id, company_id, title, description, requirements, location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING created_at, updated_at`,
		j.ID, j.OwnerID, j.ApplicationID, j.CompanyID, j.Title, j.Description, j.Requirements, j.Location,
	).Scan(&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert job for owner %s: %v", j.OwnerID, err)
	}
	return err
}

func (r *JobRepository) Update(ctx context.Context, j *model.Job) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE jobs SET application_id = $1, company_id = $2, title = $3, description = $4, requirements = $5, location = $6, updated_at = NOW()
		 WHERE id = $7 AND owner_id = $8 RETURNING updated_at`,
		j.ApplicationID, j.CompanyID, j.Title, j.Description, j.Requirements, j.Location, j.ID, j.OwnerID,
	).Scan(&j.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		logger.Sugar.Errorf("Failed to update job %s: %v", j.ID, err)
	}
	return err
}

func (r *JobRepository) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete job %s: %v", id, err)
		return 0, err
	}
	return result.RowsAffected()
}

func (r *JobRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		logger.Sugar.Errorf("Failed to count jobs for owner %s: %v", ownerID, err)
	}
	return n, err
}

func (r *JobRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]model.Job, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+jobCols+` FROM jobs WHERE owner_id = $1
		 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		logger.Sugar.Errorf("Failed to list jobs for owner %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	jobs := []model.Job{}
	for rows.Next() {
		var j model.Job
		if err := rows.Scan(&j.ID, &j.OwnerID, &j.ApplicationID, &j.CompanyID, &j.Title, &j.Description, &j.Requirements, &j.Location, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}
