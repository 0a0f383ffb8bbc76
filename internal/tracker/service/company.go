package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"jobtrackr/internal/events"
	"jobtrackr/internal/tracker/model"
	"jobtrackr/internal/tracker/repository"
	"jobtrackr/pkg/apperr"
	"jobtrackr/pkg/names"
	"jobtrackr/pkg/pagination"
)

type CompanyService struct {
	Repo   *repository.CompanyRepository
	Events *events.Hub
}

func NewCompanyService(repo *repository.CompanyRepository, hub *events.Hub) *CompanyService {
	return &CompanyService{Repo: repo, Events: hub}
}

// GetOrCreate makes company creation idempotent per owner: two calls
// with names that differ only by case or whitespace resolve to the same
// row. The uniqueness decision itself belongs to the store's unique
// index, so a concurrent creator losing the race between lookup and
// insert recovers by re-running the lookup.
func (s *CompanyService) GetOrCreate(ctx context.Context, ownerID string, req model.CompanyRequest) (*model.Company, bool, error) {
	n := names.Normalize(req.Name)
	if n.Key == "" {
		return nil, false, apperr.New(apperr.InvalidArgument, "company name is required")
	}

	existing, err := s.Repo.FindByNameKey(ctx, ownerID, n.Key)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, apperr.Wrap(apperr.Internal, err, "failed to look up company")
	}

	company := &model.Company{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    n.Display,
		Website: optional(req.Website),
	}
	err = s.Repo.Insert(ctx, company)
	if err == nil {
		s.Events.Publish(ownerID, "company", events.ActionCreated, company)
		return company, false, nil
	}

	if repository.IsUniqueViolation(err) {
		// A concurrent creator won between the lookup and the insert.
		winner, lerr := s.Repo.FindByNameKey(ctx, ownerID, n.Key)
		if lerr != nil {
			return nil, false, apperr.Wrap(apperr.Internal, lerr, "failed to recover existing company after conflict")
		}
		return winner, true, nil
	}
	return nil, false, apperr.Wrap(apperr.Internal, err, "failed to create company")
}

func (s *CompanyService) Get(ctx context.Context, ownerID, id string) (*model.Company, error) {
	company, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "company")
	}
	return company, nil
}

func (s *CompanyService) List(ctx context.Context, ownerID string, params pagination.Params) ([]model.Company, pagination.Meta, error) {
	total, err := s.Repo.Count(ctx, ownerID)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to count companies")
	}
	companies, err := s.Repo.List(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to list companies")
	}
	return companies, params.Meta(total), nil
}

// Update renames and/or re-points a company. Renaming onto another
// company's normalized name (same owner) is a Conflict identifying the
// colliding row, never a silent merge.
func (s *CompanyService) Update(ctx context.Context, ownerID, id string, req model.CompanyRequest) (*model.Company, error) {
	n := names.Normalize(req.Name)
	if n.Key == "" {
		return nil, apperr.New(apperr.InvalidArgument, "company name is required")
	}

	company, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "company")
	}

	if n.Key != names.Key(company.Name) {
		other, err := s.Repo.FindByNameKey(ctx, ownerID, n.Key)
		if err == nil && other.ID != id {
			return nil, apperr.Newf(apperr.Conflict, "company name already used by company %s", other.ID)
		}
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.Internal, err, "failed to look up company")
		}
	}

	company.Name = n.Display
	company.Website = optional(req.Website)

	err = s.Repo.Update(ctx, company)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		return nil, apperr.New(apperr.NotFound, "company not found")
	case repository.IsUniqueViolation(err):
		// A concurrent rename or create took the name after our check.
		other, lerr := s.Repo.FindByNameKey(ctx, ownerID, n.Key)
		if lerr == nil {
			return nil, apperr.Newf(apperr.Conflict, "company name already used by company %s", other.ID)
		}
		return nil, apperr.New(apperr.Conflict, "company name already in use")
	default:
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update company")
	}

	s.Events.Publish(ownerID, "company", events.ActionUpdated, company)
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := s.Repo.Delete(ctx, ownerID, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.New(apperr.Conflict, "company is still referenced by existing jobs")
		}
		return apperr.Wrap(apperr.Internal, err, "failed to delete company")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "company not found")
	}
	s.Events.Publish(ownerID, "company", events.ActionDeleted, map[string]string{"id": id})
	return nil
}
