package api

import (
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/somnologia/somnologia/internal/api/recovery"
	"github.com/somnologia/somnologia/internal/health"
	"github.com/somnologia/somnologia/internal/interpreter"
	"github.com/somnologia/somnologia/internal/services"
	"github.com/somnologia/somnologia/internal/store"
)

// NewRouter wires all API routes. recentDreams caps the dashboard's recent
// list; pass 0 for the default.
func NewRouter(st store.Store, provider interpreter.Interpreter, recentDreams int, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	// Global middlewares
	router.Use(recovery.Middleware)
	router.Use(RequestLogger(log))

	// Domain services
	personSvc := services.NewPersonService(st)
	tagSvc := services.NewTagService(st)
	dreamSvc := services.NewDreamService(st)
	dashboardSvc := services.NewDashboardService(st, recentDreams)
	interpretSvc := services.NewInterpretService(st, provider)

	// Handlers
	personHandler := NewPersonHandler(personSvc)
	tagHandler := NewTagHandler(tagSvc)
	dreamHandler := NewDreamHandler(dreamSvc)
	dashboardHandler := NewDashboardHandler(dashboardSvc)
	interpretHandler := NewInterpretHandler(interpretSvc)

	// Health endpoints; the pinger is optional on the store implementation.
	pinger, _ := st.(health.HealthPinger)
	healthHandler := NewHealthHandler(pinger)
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Person endpoints
	v1.HandleFunc("/persons/", personHandler.List).Methods("GET")
	v1.HandleFunc("/persons/", personHandler.Create).Methods("POST")
	v1.HandleFunc("/persons/{id:[0-9]+}/", personHandler.Get).Methods("GET")
	v1.HandleFunc("/persons/{id:[0-9]+}/", personHandler.Update).Methods("PUT")
	v1.HandleFunc("/persons/{id:[0-9]+}/", personHandler.Delete).Methods("DELETE")

	// Tag endpoints
	v1.HandleFunc("/tags/", tagHandler.List).Methods("GET")
	v1.HandleFunc("/tags/", tagHandler.Create).Methods("POST")
	v1.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.Get).Methods("GET")
	v1.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.Update).Methods("PUT")
	v1.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.Delete).Methods("DELETE")

	// Dream endpoints
	v1.HandleFunc("/dreams/", dreamHandler.List).Methods("GET")
	v1.HandleFunc("/dreams/", dreamHandler.Create).Methods("POST")
	v1.HandleFunc("/dreams/{id:[0-9]+}/", dreamHandler.Get).Methods("GET")
	v1.HandleFunc("/dreams/{id:[0-9]+}/", dreamHandler.Update).Methods("PUT")
	v1.HandleFunc("/dreams/{id:[0-9]+}/", dreamHandler.Delete).Methods("DELETE")

	// Aggregation and interpretation endpoints
	v1.HandleFunc("/dashboard/", dashboardHandler.Get).Methods("GET")
	v1.HandleFunc("/interpret/", interpretHandler.Interpret).Methods("POST")

	return router
}
