package repository

import (
	"context"
	"database/sql"

	"jobtrackr/internal/tracker/model"
	"jobtrackr/pkg/logger"
)

const companyCols = "id, owner_id, name, website, created_at, updated_at"

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) scan(row *sql.Row) (*model.Company, error) {
	var c model.Company
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByNameKey looks a company up by its case/whitespace-insensitive
// comparison key. The predicate mirrors the unique index on
// (owner_id, lower(btrim(name))) so lookup and constraint agree.
func (r *CompanyRepository) FindByNameKey(ctx context.Context, ownerID, nameKey string) (*model.Company, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+companyCols+` FROM companies WHERE owner_id = $1 AND lower(btrim(name)) = $2`,
		ownerID, nameKey)
	return r.scan(row)
}

func (r *CompanyRepository) GetByID(ctx context.Context, ownerID, id string) (*model.Company, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+companyCols+` FROM companies WHERE id = $1 AND owner_id = $2`,
		id, ownerID)
	return r.scan(row)
}

func (r *CompanyRepository) Insert(ctx context.Context, c *model.Company) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO companies (id, owner_id, name, website, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW()) RETURNING created_at, updated_at`,
		c.ID, c.OwnerID, c.Name, c.Website,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil && !IsUniqueViolation(err) {
		logger.Sugar.Errorf("Failed to insert company for owner %s: %v", c.OwnerID, err)
	}
	return err
}

func (r *CompanyRepository) Update(ctx context.Context, c *model.Company) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE companies SET name = $1, website = $2, updated_at = NOW()
		 WHERE id = $3 AND owner_id = $4 RETURNING updated_at`,
		c.Name, c.Website, c.ID, c.OwnerID,
	).Scan(&c.UpdatedAt)
	if err != nil && err != sql.ErrNoRows && !IsUniqueViolation(err) {
		logger.Sugar.Errorf("Failed to update company %s: %v", c.ID, err)
	}
	return err
}

func (r *CompanyRepository) Delete(ctx context.Context, ownerID, id string) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM companies WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		if !IsForeignKeyViolation(err) {
			logger.Sugar.Errorf("Failed to delete company %s: %v", id, err)
		}
		return 0, err
	}
	return result.RowsAffected()
}

func (r *CompanyRepository) Count(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE owner_id = $1`, ownerID).Scan(&n)
	if err != nil {
		logger.Sugar.Errorf("Failed to count companies for owner %s: %v", ownerID, err)
	}
	return n, err
}

func (r *CompanyRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]model.Company, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+companyCols+` FROM companies WHERE owner_id = $1
		 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		logger.Sugar.Errorf("Failed to list companies for owner %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Website, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}
