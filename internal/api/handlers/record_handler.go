package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
)

// RecordHandler handles symptom record requests
type RecordHandler struct {
	records repositories.SymptomRecordRepository
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records repositories.SymptomRecordRepository) *RecordHandler {
	return &RecordHandler{
		records: records,
	}
}

type createRecordRequest struct {
	UserID string `json:"userId"`
}

// Create handles POST /api/records
func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	record := &entities.SymptomRecord{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}
	if err := h.records.Create(r.Context(), record); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, record)
}

// GetByID handles GET /api/records/:id
func (h *RecordHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "record ID is required")
		return
	}

	record, err := h.records.GetByID(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

// ListByUser handles GET /api/records?userId=
func (h *RecordHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	records, err := h.records.ListByUser(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
	})
}

// Delete handles DELETE /api/records/:id
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "record ID is required")
		return
	}

	if err := h.records.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
