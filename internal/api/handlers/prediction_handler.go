package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
)

// PredictionSaver defines the interface for overwriting a record's prediction
type PredictionSaver interface {
	ReplacePredictionResult(ctx context.Context, recordID string, candidates []entities.PredictionCandidate, elapsedSec *float64) (*entities.Prediction, error)
}

// PredictionHandler handles prediction requests
type PredictionHandler struct {
	predictions repositories.PredictionRepository
	saver       PredictionSaver
}

// NewPredictionHandler creates a new prediction handler
func NewPredictionHandler(predictions repositories.PredictionRepository, saver PredictionSaver) *PredictionHandler {
	return &PredictionHandler{
		predictions: predictions,
		saver:       saver,
	}
}

// GetByRecordID handles GET /api/records/:recordId/prediction
func (h *PredictionHandler) GetByRecordID(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("recordId")
	if recordID == "" {
		respondWithError(w, http.StatusBadRequest, "record ID is required")
		return
	}

	prediction, err := h.predictions.GetByRecordID(r.Context(), recordID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prediction)
}

type savePredictionRequest struct {
	Candidates []entities.PredictionCandidate `json:"candidates"`
	ElapsedSec *float64                       `json:"elapsedSec,omitempty"`
}

// Save handles POST /api/records/:recordId/prediction. Candidates are sorted
// by probability before scoring, so callers may submit them in any order.
// Any existing prediction for the record is overwritten.
func (h *PredictionHandler) Save(w http.ResponseWriter, r *http.Request) {
	recordID := r.PathValue("recordId")
	if recordID == "" {
		respondWithError(w, http.StatusBadRequest, "record ID is required")
		return
	}

	var req savePredictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(req.Candidates) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one candidate is required")
		return
	}

	sort.SliceStable(req.Candidates, func(i, j int) bool {
		return req.Candidates[i].RiskScore > req.Candidates[j].RiskScore
	})

	prediction, err := h.saver.ReplacePredictionResult(r.Context(), recordID, req.Candidates, req.ElapsedSec)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, prediction)
}
