package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"jobtrackr/internal/events"
	"jobtrackr/internal/tracker/model"
	"jobtrackr/internal/tracker/repository"
	"jobtrackr/pkg/apperr"
	"jobtrackr/pkg/pagination"
)

type ApplicationService struct {
	Repo     *repository.ApplicationRepository
	Contacts *repository.ContactRepository
	Events   *events.Hub
}

func NewApplicationService(repo *repository.ApplicationRepository, contacts *repository.ContactRepository, hub *events.Hub) *ApplicationService {
	return &ApplicationService{Repo: repo, Contacts: contacts, Events: hub}
}

// validate checks the caller-supplied fields and resolves them into
// store-ready values. The referenced contact, when present, must exist
// under the same owner; a contact owned by someone else is reported as
// missing, not forbidden.
func (s *ApplicationService) validate(ctx context.Context, ownerID string, req model.ApplicationRequest) (model.Status, model.Date, *string, error) {
	status := model.Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return "", model.Date{}, nil, apperr.Newf(apperr.InvalidArgument, "unknown application status %q", req.Status)
	}

	date, err := model.ParseDate(strings.TrimSpace(req.AppliedDate))
	if err != nil {
		return "", model.Date{}, nil, apperr.New(apperr.InvalidArgument, "applied_date must be a YYYY-MM-DD date")
	}

	contactID := optional(req.ContactID)
	if contactID != nil {
		if _, err := s.Contacts.GetByID(ctx, ownerID, *contactID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return "", model.Date{}, nil, apperr.Newf(apperr.NotFound, "contact %s not found", *contactID)
			}
			return "", model.Date{}, nil, apperr.Wrap(apperr.Internal, err, "failed to load contact")
		}
	}
	return status, date, contactID, nil
}

func (s *ApplicationService) Create(ctx context.Context, ownerID string, req model.ApplicationRequest) (*model.Application, error) {
	status, date, contactID, err := s.validate(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	application := &model.Application{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Status:      status,
		AppliedDate: date,
		ContactID:   contactID,
		Notes:       optional(req.Notes),
	}
	if err := s.Repo.Insert(ctx, application); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperr.New(apperr.NotFound, "referenced contact no longer exists")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create application")
	}
	s.Events.Publish(ownerID, "application", events.ActionCreated, application)
	return application, nil
}

func (s *ApplicationService) Get(ctx context.Context, ownerID, id string) (*model.Application, error) {
	application, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "application")
	}
	return application, nil
}

func (s *ApplicationService) List(ctx context.Context, ownerID string, params pagination.Params) ([]model.Application, pagination.Meta, error) {
	total, err := s.Repo.Count(ctx, ownerID)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to count applications")
	}
	applications, err := s.Repo.List(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to list applications")
	}
	return applications, params.Meta(total), nil
}

func (s *ApplicationService) Update(ctx context.Context, ownerID, id string, req model.ApplicationRequest) (*model.Application, error) {
	application, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "application")
	}

	status, date, contactID, err := s.validate(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	application.Status = status
	application.AppliedDate = date
	application.ContactID = contactID
	application.Notes = optional(req.Notes)

	if err := s.Repo.Update(ctx, application); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "application not found")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apperr.New(apperr.NotFound, "referenced contact no longer exists")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update application")
	}
	s.Events.Publish(ownerID, "application", events.ActionUpdated, application)
	return application, nil
}

func (s *ApplicationService) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := s.Repo.Delete(ctx, ownerID, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.New(apperr.Conflict, "application is still referenced by existing jobs")
		}
		return apperr.Wrap(apperr.Internal, err, "failed to delete application")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "application not found")
	}
	s.Events.Publish(ownerID, "application", events.ActionDeleted, map[string]string{"id": id})
	return nil
}
