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

type ContactService struct {
	Repo   *repository.ContactRepository
	Events *events.Hub
}

func NewContactService(repo *repository.ContactRepository, hub *events.Hub) *ContactService {
	return &ContactService{Repo: repo, Events: hub}
}

func (s *ContactService) Create(ctx context.Context, ownerID string, req model.ContactRequest) (*model.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "contact name is required")
	}

	contact := &model.Contact{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Name:     name,
		Email:    optional(req.Email),
		Phone:    optional(req.Phone),
		LinkedIn: optional(req.LinkedIn),
	}
	if err := s.Repo.Insert(ctx, contact); err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create contact")
	}
	s.Events.Publish(ownerID, "contact", events.ActionCreated, contact)
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*model.Contact, error) {
	contact, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "contact")
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, ownerID string, params pagination.Params) ([]model.Contact, pagination.Meta, error) {
	total, err := s.Repo.Count(ctx, ownerID)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to count contacts")
	}
	contacts, err := s.Repo.List(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to list contacts")
	}
	return contacts, params.Meta(total), nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, id string, req model.ContactRequest) (*model.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "contact name is required")
	}

	contact, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "contact")
	}

	contact.Name = name
	contact.Email = optional(req.Email)
	contact.Phone = optional(req.Phone)
	contact.LinkedIn = optional(req.LinkedIn)

	if err := s.Repo.Update(ctx, contact); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "contact not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update contact")
	}
	s.Events.Publish(ownerID, "contact", events.ActionUpdated, contact)
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := s.Repo.Delete(ctx, ownerID, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.New(apperr.Conflict, "contact is still referenced by existing applications")
		}
		return apperr.Wrap(apperr.Internal, err, "failed to delete contact")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "contact not found")
	}
	s.Events.Publish(ownerID, "contact", events.ActionDeleted, map[string]string{"id": id})
	return nil
}
