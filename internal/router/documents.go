package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/intakehq/document-router-api/internal/handlers"
	"github.com/intakehq/document-router-api/internal/middleware"
	"github.com/intakehq/document-router-api/internal/utils"
)

func NewRouter(docHandler *handlers.DocumentHandler, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	// Routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Document endpoints
	api.HandleFunc("/documents/classify", docHandler.ClassifyDocument).Methods(http.MethodPost)
	api.HandleFunc("/threads/{id}", docHandler.GetThreadHistory).Methods(http.MethodGet)

	return r
}
