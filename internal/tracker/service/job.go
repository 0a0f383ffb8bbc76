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

type JobService struct {
	Repo         *repository.JobRepository
	Applications *repository.ApplicationRepository
	Companies    *repository.CompanyRepository
	Events       *events.Hub
}

func NewJobService(repo *repository.JobRepository, applications *repository.ApplicationRepository, companies *repository.CompanyRepository, hub *events.Hub) *JobService {
	return &JobService{Repo: repo, Applications: applications, Companies: companies, Events: hub}
}

// validateRefs confirms the referenced application and company exist
// under the same owner. The job row stores the owner denormalized, so
// this check is what keeps the job's owner in agreement with its
// application's owner on every write.
func (s *JobService) validateRefs(ctx context.Context, ownerID string, req model.JobRequest) error {
	if strings.TrimSpace(req.ApplicationID) == "" {
		return apperr.New(apperr.InvalidArgument, "application_id is required")
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		return apperr.New(apperr.InvalidArgument, "company_id is required")
	}
	if _, err := s.Applications.GetByID(ctx, ownerID, req.ApplicationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Newf(apperr.NotFound, "application %s not found", req.ApplicationID)
		}
		return apperr.Wrap(apperr.Internal, err, "failed to load application")
	}
	if _, err := s.Companies.GetByID(ctx, ownerID, req.CompanyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.Newf(apperr.NotFound, "company %s not found", req.CompanyID)
		}
		return apperr.Wrap(apperr.Internal, err, "failed to load company")
	}
	return nil
}

func (s *JobService) Create(ctx context.Context, ownerID string, req model.JobRequest) (*model.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.New(apperr.InvalidArgument, "job title is required")
	}
	if err := s.validateRefs(ctx, ownerID, req); err != nil {
		return nil, err
	}

	job := &model.Job{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		ApplicationID: req.ApplicationID,
		CompanyID:     req.CompanyID,
		Title:         title,
		Description:   optional(req.Description),
		Requirements:  optional(req.Requirements),
		Location:      optional(req.Location),
	}
	if err := s.Repo.Insert(ctx, job); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperr.New(apperr.NotFound, "referenced application or company no longer exists")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create job")
	}
	s.Events.Publish(ownerID, "job", events.ActionCreated, job)
	return job, nil
}

func (s *JobService) Get(ctx context.Context, ownerID, id string) (*model.Job, error) {
	job, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "job")
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context, ownerID string, params pagination.Params) ([]model.Job, pagination.Meta, error) {
	total, err := s.Repo.Count(ctx, ownerID)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to count jobs")
	}
	jobs, err := s.Repo.List(ctx, ownerID, params.Limit, params.Offset)
	if err != nil {
		return nil, pagination.Meta{}, apperr.Wrap(apperr.Internal, err, "failed to list jobs")
	}
	return jobs, params.Meta(total), nil
}

func (s *JobService) Update(ctx context.Context, ownerID, id string, req model.JobRequest) (*model.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.New(apperr.InvalidArgument, "job title is required")
	}

	job, err := s.Repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, notFoundOrInternal(err, "job")
	}

	if err := s.validateRefs(ctx, ownerID, req); err != nil {
		return nil, err
	}

	job.ApplicationID = req.ApplicationID
	job.CompanyID = req.CompanyID
	job.Title = title
	job.Description = optional(req.Description)
	job.Requirements = optional(req.Requirements)
	job.Location = optional(req.Location)

	if err := s.Repo.Update(ctx, job); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "job not found")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, apperr.New(apperr.NotFound, "referenced application or company no longer exists")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to update job")
	}
	s.Events.Publish(ownerID, "job", events.ActionUpdated, job)
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, ownerID, id string) error {
	rows, err := s.Repo.Delete(ctx, ownerID, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to delete job")
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "job not found")
	}
	s.Events.Publish(ownerID, "job", events.ActionDeleted, map[string]string{"id": id})
	return nil
}
