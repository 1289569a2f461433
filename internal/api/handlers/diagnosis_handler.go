package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/application/services"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

// DiagnosisService defines the interface for diagnosis operations
type DiagnosisService interface {
	DiagnoseText(ctx context.Context, user *entities.UserContext, recordID, text string) (*services.DiagnosisResult, error)
	DiagnoseKeywords(ctx context.Context, user *entities.UserContext, recordID string, keywords []string) (*services.DiagnosisResult, error)
}

// DiagnosisHandler handles diagnosis requests
type DiagnosisHandler struct {
	service DiagnosisService
}

// NewDiagnosisHandler creates a new diagnosis handler
func NewDiagnosisHandler(service DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{
		service: service,
	}
}

type diagnoseTextRequest struct {
	User     *entities.UserContext `json:"user"`
	RecordID string                `json:"recordId,omitempty"`
	Text     string                `json:"text"`
}

type diagnoseKeywordsRequest struct {
	User     *entities.UserContext `json:"user"`
	RecordID string                `json:"recordId,omitempty"`
	Keywords []string              `json:"keywords"`
}

// DiagnoseText handles POST /api/diagnosis/text
func (h *DiagnosisHandler) DiagnoseText(w http.ResponseWriter, r *http.Request) {
	var req diagnoseTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.DiagnoseText(r.Context(), req.User, req.RecordID, req.Text)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// DiagnoseKeywords handles POST /api/diagnosis/keywords
func (h *DiagnosisHandler) DiagnoseKeywords(w http.ResponseWriter, r *http.Request) {
	var req diagnoseKeywordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.DiagnoseKeywords(r.Context(), req.User, req.RecordID, req.Keywords)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// Helper functions

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, appErr.Message)
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}
