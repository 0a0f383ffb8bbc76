package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"jobtrackr/internal/tracker/service"
	"jobtrackr/middleware"
	"jobtrackr/pkg/apperr"
	"jobtrackr/pkg/pagination"
)

type Handler struct {
	DB           *sql.DB
	Companies    *service.CompanyService
	Jobs         *service.JobService
	Applications *service.ApplicationService
	Contacts     *service.ContactService
}

func NewHandler(db *sql.DB, companies *service.CompanyService, jobs *service.JobService, applications *service.ApplicationService, contacts *service.ContactService) *Handler {
	return &Handler{
		DB:           db,
		Companies:    companies,
		Jobs:         jobs,
		Applications: applications,
		Contacts:     contacts,
	}
}

func ownerFrom(r *http.Request) string {
	return r.Context().Value(middleware.OwnerIDKey).(string)
}

func paramsFrom(r *http.Request) pagination.Params {
	q := r.URL.Query()
	return pagination.Parse(q.Get("page"), q.Get("limit"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the typed error kinds onto HTTP status codes. A
// NotFound covers both genuinely absent rows and rows owned by another
// user, so nothing here can leak cross-tenant existence.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.Unauthenticated:
		status = http.StatusUnauthorized
	case apperr.InvalidArgument:
		status = http.StatusBadRequest
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Conflict:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.PingContext(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
