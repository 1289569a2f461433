package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/api/handlers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

type stubPredictionRepo struct {
	prediction *entities.Prediction
	err        error
}

func (s *stubPredictionRepo) Create(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	return s.err
}

func (s *stubPredictionRepo) Replace(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	return s.err
}

func (s *stubPredictionRepo) GetByRecordID(ctx context.Context, recordID string) (*entities.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prediction, nil
}

func (s *stubPredictionRepo) DeleteByRecordID(ctx context.Context, recordID string) error {
	return s.err
}

type stubPredictionSaver struct {
	got        []entities.PredictionCandidate
	prediction *entities.Prediction
	err        error
}

func (s *stubPredictionSaver) ReplacePredictionResult(ctx context.Context, recordID string, candidates []entities.PredictionCandidate, elapsedSec *float64) (*entities.Prediction, error) {
	s.got = candidates
	if s.err != nil {
		return nil, s.err
	}
	return s.prediction, nil
}

func newPredictionRequest(method, target, body, recordID string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.SetPathValue("recordId", recordID)
	return req
}

func TestPredictionHandler_GetByRecordID(t *testing.T) {
	t.Run("returns the prediction", func(t *testing.T) {
		repo := &stubPredictionRepo{prediction: &entities.Prediction{
			ID:        "pred-1",
			RecordID:  "record-1",
			RiskLevel: entities.RiskHigh,
			Ranks: []*entities.PredictionRank{
				{Rank: 1, FineLabel: "위염", RiskScore: 0.7},
			},
		}}
		handler := handlers.NewPredictionHandler(repo, &stubPredictionSaver{})

		req := newPredictionRequest("GET", "/api/records/record-1/prediction", "", "record-1")
		w := httptest.NewRecorder()

		handler.GetByRecordID(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response entities.Prediction
		err := json.NewDecoder(w.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "pred-1", response.ID)
		assert.Len(t, response.Ranks, 1)
	})

	t.Run("missing prediction returns 404", func(t *testing.T) {
		repo := &stubPredictionRepo{err: apperrors.NewNotFoundError("prediction for record record-9 not found")}
		handler := handlers.NewPredictionHandler(repo, &stubPredictionSaver{})

		req := newPredictionRequest("GET", "/api/records/record-9/prediction", "", "record-9")
		w := httptest.NewRecorder()

		handler.GetByRecordID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPredictionHandler_Save(t *testing.T) {
	t.Run("sorts candidates by probability before saving", func(t *testing.T) {
		saver := &stubPredictionSaver{prediction: &entities.Prediction{ID: "pred-2", RecordID: "record-1"}}
		handler := handlers.NewPredictionHandler(&stubPredictionRepo{}, saver)

		body := `{"candidates":[
			{"coarseLabel":"호흡기질환","fineLabel":"감기","riskScore":0.25},
			{"coarseLabel":"호흡기질환","fineLabel":"급성 기관지염","riskScore":0.62},
			{"coarseLabel":"호흡기질환","fineLabel":"천식","riskScore":0.13}
		]}`
		req := newPredictionRequest("POST", "/api/records/record-1/prediction", body, "record-1")
		w := httptest.NewRecorder()

		handler.Save(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, saver.got, 3)
		assert.Equal(t, "급성 기관지염", saver.got[0].FineLabel)
		assert.Equal(t, "감기", saver.got[1].FineLabel)
		assert.Equal(t, "천식", saver.got[2].FineLabel)
	})

	t.Run("empty candidate list is rejected", func(t *testing.T) {
		handler := handlers.NewPredictionHandler(&stubPredictionRepo{}, &stubPredictionSaver{})

		req := newPredictionRequest("POST", "/api/records/record-1/prediction", `{"candidates":[]}`, "record-1")
		w := httptest.NewRecorder()

		handler.Save(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown record returns 404", func(t *testing.T) {
		saver := &stubPredictionSaver{err: apperrors.NewNotFoundError("symptom record with id missing not found")}
		handler := handlers.NewPredictionHandler(&stubPredictionRepo{}, saver)

		body := `{"candidates":[{"fineLabel":"위염","riskScore":0.5}]}`
		req := newPredictionRequest("POST", "/api/records/missing/prediction", body, "missing")
		w := httptest.NewRecorder()

		handler.Save(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
