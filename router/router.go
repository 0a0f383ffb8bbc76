package router

import (
	"database/sql"
	"net/http"

	"jobtrackr/internal/events"
	trackerHandler "jobtrackr/internal/tracker"
	"jobtrackr/internal/tracker/repository"
	"jobtrackr/internal/tracker/service"
	"jobtrackr/middleware"
)

func Setup(db *sql.DB, hub *events.Hub) http.Handler {
	mux := http.NewServeMux()

	// Change-event feed
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Context().Value(middleware.OwnerIDKey).(string)
		events.ServeWs(hub, w, r, ownerID)
	})
	mux.Handle("/ws", middleware.AuthMiddleware(wsHandler))

	// REST API
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	companies := service.NewCompanyService(companyRepo, hub)
	contacts := service.NewContactService(contactRepo, hub)
	applications := service.NewApplicationService(applicationRepo, contactRepo, hub)
	jobs := service.NewJobService(jobRepo, applicationRepo, companyRepo, hub)

	h := trackerHandler.NewHandler(db, companies, jobs, applications, contacts)
	auth := middleware.AuthMiddleware

	mux.HandleFunc("/api/health", h.Health)

	mux.Handle("/api/companies", auth(http.HandlerFunc(h.ListCompanies)))
	mux.Handle("/api/companies/create", auth(http.HandlerFunc(h.CreateCompany)))
	mux.Handle("/api/companies/get", auth(http.HandlerFunc(h.GetCompany)))
	mux.Handle("/api/companies/update", auth(http.HandlerFunc(h.UpdateCompany)))
	mux.Handle("/api/companies/delete", auth(http.HandlerFunc(h.DeleteCompany)))

	mux.Handle("/api/jobs", auth(http.HandlerFunc(h.ListJobs)))
	mux.Handle("/api/jobs/create", auth(http.HandlerFunc(h.CreateJob)))
	mux.Handle("/api/jobs/get", auth(http.HandlerFunc(h.GetJob)))
	mux.Handle("/api/jobs/update", auth(http.HandlerFunc(h.UpdateJob)))
	mux.Handle("/api/jobs/delete", auth(http.HandlerFunc(h.DeleteJob)))

	mux.Handle("/api/applications", auth(http.HandlerFunc(h.ListApplications)))
	mux.Handle("/api/applications/create", auth(http.HandlerFunc(h.CreateApplication)))
	mux.Handle("/api/applications/get", auth(http.HandlerFunc(h.GetApplication)))
	mux.Handle("/api/applications/update", auth(http.HandlerFunc(h.UpdateApplication)))
	mux.Handle("/api/applications/delete", auth(http.HandlerFunc(h.DeleteApplication)))

	mux.Handle("/api/contacts", auth(http.HandlerFunc(h.ListContacts)))
	mux.Handle("/api/contacts/create", auth(http.HandlerFunc(h.CreateContact)))
	mux.Handle("/api/contacts/get", auth(http.HandlerFunc(h.GetContact)))
	mux.Handle("/api/contacts/update", auth(http.HandlerFunc(h.UpdateContact)))
	mux.Handle("/api/contacts/delete", auth(http.HandlerFunc(h.DeleteContact)))

	return middleware.CORSMiddleware(mux)
}
