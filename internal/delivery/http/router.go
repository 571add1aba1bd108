package http

import (
	"net/http"

	"pharmacy-backend/internal/delivery/http/handler"
	"pharmacy-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	prescriptionHandler *handler.PrescriptionHandler
	drugHandler         *handler.DrugHandler
	dashboardHandler    *handler.DashboardHandler
	requestIDMiddleware *middleware.RequestIDMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	drugHandler *handler.DrugHandler,
	dashboardHandler *handler.DashboardHandler,
	requestIDMiddleware *middleware.RequestIDMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		prescriptionHandler: prescriptionHandler,
		drugHandler:         drugHandler,
		dashboardHandler:    dashboardHandler,
		requestIDMiddleware: requestIDMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Identity
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", r.authHandler.RegisterUser).Methods(http.MethodPost)

	// Prescriptions
	api.HandleFunc("/prescriptions", r.prescriptionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/prescriptions/{id}", r.prescriptionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/prescriptions/{id}/status", r.prescriptionHandler.UpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/prescriptions/{id}/labels", r.prescriptionHandler.GetLabels).Methods(http.MethodGet)

	// Drug catalog
	api.HandleFunc("/drugs", r.drugHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/drugs", r.drugHandler.Add).Methods(http.MethodPost)

	// Dashboard
	api.HandleFunc("/dashboard/notifications", r.dashboardHandler.Notifications).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/statistics/drug-prescriptions", r.dashboardHandler.DrugStatistics).Methods(http.MethodGet)

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
