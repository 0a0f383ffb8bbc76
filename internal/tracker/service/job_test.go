package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrackr/internal/events"
	"jobtrackr/internal/tracker/model"
	"jobtrackr/internal/tracker/repository"
	"jobtrackr/pkg/apperr"
)

func newJobService(t *testing.T) (*JobService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewJobService(
		repository.NewJobRepository(db),
		repository.NewApplicationRepository(db),
		repository.NewCompanyRepository(db),
		events.NewHub(),
	), mock
}

func TestCreateJob(t *testing.T) {
	svc, mock := newJobService(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("app-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "status", "applied_date", "contact_id", "notes", "created_at", "updated_at"}).
			AddRow("app-1", "owner-1", "applied", time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), nil, nil, now, now))
	mock.ExpectQuery(`SELECT .+ FROM companies WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("c-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "website", "created_at", "updated_at"}).
			AddRow("c-1", "owner-1", "Globex", nil, now, now))
	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs(sqlmock.AnyArg(), "owner-1", "app-1", "c-1", "Staff Engineer", nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	job, err := svc.Create(context.Background(), "owner-1", model.JobRequest{
		ApplicationID: "app-1",
		CompanyID:     "c-1",
		Title:         "  Staff Engineer ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", job.Title)
	assert.Equal(t, "owner-1", job.OwnerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Referencing an application that belongs to another owner fails with a
// NotFound naming the application, and no job row is created.
func TestCreateJobForeignApplication(t *testing.T) {
	svc, mock := newJobService(t)

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("app-foreign", "owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Create(context.Background(), "owner-1", model.JobRequest{
		ApplicationID: "app-foreign",
		CompanyID:     "c-1",
		Title:         "Staff Engineer",
	})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Contains(t, err.Error(), "app-foreign")
	assert.NoError(t, mock.ExpectationsWereMet(), "no insert should be attempted")
}

func TestCreateJobMissingTitle(t *testing.T) {
	svc, mock := newJobService(t)

	_, err := svc.Create(context.Background(), "owner-1", model.JobRequest{
		ApplicationID: "app-1",
		CompanyID:     "c-1",
		Title:         "   ",
	})
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJobMissingRefIDs(t *testing.T) {
	svc, mock := newJobService(t)

	_, err := svc.Create(context.Background(), "owner-1", model.JobRequest{
		CompanyID: "c-1",
		Title:     "Staff Engineer",
	})
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteJobOwnerScoped(t *testing.T) {
	svc, mock := newJobService(t)

	mock.ExpectExec(`DELETE FROM jobs WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("j-1", "owner-B").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := svc.Delete(context.Background(), "owner-B", "j-1")
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
