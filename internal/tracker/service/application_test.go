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
	"jobtrackr/pkg/pagination"
)

func newApplicationService(t *testing.T) (*ApplicationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewApplicationService(
		repository.NewApplicationRepository(db),
		repository.NewContactRepository(db),
		events.NewHub(),
	), mock
}

func TestCreateApplication(t *testing.T) {
	svc, mock := newApplicationService(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(sqlmock.AnyArg(), "owner-1", model.StatusApplied, sqlmock.AnyArg(), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	application, err := svc.Create(context.Background(), "owner-1", model.ApplicationRequest{
		Status:      "Applied",
		AppliedDate: "2025-11-03",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApplied, application.Status)
	assert.Equal(t, "2025-11-03", application.AppliedDate.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateApplicationUnknownStatus(t *testing.T) {
	svc, mock := newApplicationService(t)

	_, err := svc.Create(context.Background(), "owner-1", model.ApplicationRequest{
		Status:      "ghosted",
		AppliedDate: "2025-11-03",
	})
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	assert.Contains(t, err.Error(), "ghosted")
	assert.NoError(t, mock.ExpectationsWereMet(), "no store call should be made")
}

func TestCreateApplicationBadDate(t *testing.T) {
	svc, mock := newApplicationService(t)

	_, err := svc.Create(context.Background(), "owner-1", model.ApplicationRequest{
		Status:      "applied",
		AppliedDate: "03/11/2025",
	})
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A referenced contact owned by another user is reported as missing,
// and nothing is inserted.
func TestCreateApplicationForeignContact(t *testing.T) {
	svc, mock := newApplicationService(t)
	contactID := "ct-other"

	mock.ExpectQuery(`SELECT .+ FROM contacts WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(contactID, "owner-1").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Create(context.Background(), "owner-1", model.ApplicationRequest{
		Status:      "interview",
		AppliedDate: "2025-11-03",
		ContactID:   &contactID,
	})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.Contains(t, err.Error(), contactID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func applicationListRows(owner string, n int, startDay int) *sqlmock.Rows {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "status", "applied_date", "contact_id", "notes", "created_at", "updated_at"})
	for i := 0; i < n; i++ {
		rows.AddRow(
			"app-"+string(rune('a'+i)), owner, "applied",
			time.Date(2025, 11, startDay-i, 0, 0, 0, 0, time.UTC),
			nil, nil, now, now,
		)
	}
	return rows
}

// 15 rows, page 2 with limit 10: five items, accurate totals.
func TestListApplicationsSecondPage(t *testing.T) {
	svc, mock := newApplicationService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE owner_id = \$1`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(15))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE owner_id = \$1\s+ORDER BY applied_date DESC, id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("owner-1", 10, 10).
		WillReturnRows(applicationListRows("owner-1", 5, 20))

	applications, meta, err := svc.List(context.Background(), "owner-1", pagination.Parse("2", "10"))
	require.NoError(t, err)
	assert.Len(t, applications, 5)
	assert.Equal(t, 15, meta.TotalCount)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, 2, meta.Page)
}

// A page far past the end is an empty page with accurate totals, not an
// error.
func TestListApplicationsPastEnd(t *testing.T) {
	svc, mock := newApplicationService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM applications WHERE owner_id = \$1`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE owner_id = \$1\s+ORDER BY applied_date DESC, id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("owner-1", 10, 9980).
		WillReturnRows(applicationListRows("owner-1", 0, 20))

	applications, meta, err := svc.List(context.Background(), "owner-1", pagination.Parse("999", "10"))
	require.NoError(t, err)
	assert.Empty(t, applications)
	assert.Equal(t, 1, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestUpdateApplicationOwnerScoped(t *testing.T) {
	svc, mock := newApplicationService(t)

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("app-1", "owner-B").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), "owner-B", "app-1", model.ApplicationRequest{
		Status:      "offer",
		AppliedDate: "2025-11-03",
	})
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
