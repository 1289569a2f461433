package routes

import (
	"net/http"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/api/handlers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/api/middleware"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	diagnosisHandler  *handlers.DiagnosisHandler
	predictionHandler *handlers.PredictionHandler
	recordHandler     *handlers.RecordHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	diagnosisHandler *handlers.DiagnosisHandler,
	predictionHandler *handlers.PredictionHandler,
	recordHandler *handlers.RecordHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		diagnosisHandler:  diagnosisHandler,
		predictionHandler: predictionHandler,
		recordHandler:     recordHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Diagnosis endpoints
	r.mux.HandleFunc("POST /api/diagnosis/text", r.diagnosisHandler.DiagnoseText)
	r.mux.HandleFunc("POST /api/diagnosis/keywords", r.diagnosisHandler.DiagnoseKeywords)

	// Record endpoints
	r.mux.HandleFunc("POST /api/records", r.recordHandler.Create)
	r.mux.HandleFunc("GET /api/records", r.recordHandler.ListByUser)
	r.mux.HandleFunc("GET /api/records/{id}", r.recordHandler.GetByID)
	r.mux.HandleFunc("DELETE /api/records/{id}", r.recordHandler.Delete)

	// Prediction endpoints
	r.mux.HandleFunc("GET /api/predictions/{recordId}", r.predictionHandler.GetByRecordID)
	r.mux.HandleFunc("POST /api/records/{recordId}/prediction", r.predictionHandler.Save)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything
	handler = middleware.CORSMiddleware(handler)

	return handler
}
