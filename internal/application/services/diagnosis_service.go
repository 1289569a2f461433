package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/providers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/observability"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/utils"
)

const minKeywordCount = 2

// symptomExtractor abstracts the multi-attempt extraction step.
type symptomExtractor interface {
	Extract(ctx context.Context, text string) ([][]entities.ExtractedSymptom, error)
}

// riskScorer abstracts the scoring step.
type riskScorer interface {
	Score(top entities.PredictionCandidate) entities.RiskAssessment
}

// DiagnosisService runs the full self-diagnosis pipeline: extraction,
// canonicalization, classification, risk scoring, and persistence of the
// ranked result.
type DiagnosisService struct {
	extractor   symptomExtractor
	normalizer  *utils.SymptomNormalizer
	classifier  providers.DiseaseClassifierProvider
	scorer      riskScorer
	records     repositories.SymptomRecordRepository
	predictions repositories.PredictionRepository
	eventBus    providers.EventBus
}

// NewDiagnosisService creates a new diagnosis service. eventBus may be nil
// when no broker is configured.
func NewDiagnosisService(
	extractor symptomExtractor,
	normalizer *utils.SymptomNormalizer,
	classifier providers.DiseaseClassifierProvider,
	scorer riskScorer,
	records repositories.SymptomRecordRepository,
	predictions repositories.PredictionRepository,
	eventBus providers.EventBus,
) *DiagnosisService {
	return &DiagnosisService{
		extractor:   extractor,
		normalizer:  normalizer,
		classifier:  classifier,
		scorer:      scorer,
		records:     records,
		predictions: predictions,
		eventBus:    eventBus,
	}
}

// DiagnosisResult is the pipeline output returned to the API layer.
type DiagnosisResult struct {
	Record     *entities.SymptomRecord `json:"record"`
	Prediction *entities.Prediction    `json:"prediction"`
}

// DiagnoseText runs the pipeline from a free-text symptom description.
// recordID is optional: when set the symptoms are attached to that existing
// record, otherwise a fresh record is created. When no symptoms can be
// extracted the classifier is never called and the caller receives a
// validation error asking the user to rephrase.
func (s *DiagnosisService) DiagnoseText(ctx context.Context, user *entities.UserContext, recordID, text string) (*DiagnosisResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("symptom description is required")
	}
	if user == nil || user.UserID == "" {
		return nil, apperrors.NewValidationError("user context is required")
	}

	start := time.Now()

	attempts, err := s.extractor.Extract(ctx, text)
	if err != nil {
		return nil, apperrors.NewExternalError("symptom extraction failed", err)
	}

	var mentions []entities.ExtractedSymptom
	for _, attempt := range attempts {
		mentions = append(mentions, attempt...)
	}

	symptoms := s.normalizer.Canonicalize(mentions)
	if len(symptoms) == 0 {
		return nil, apperrors.NewValidationError("no symptoms detected, please rephrase your description")
	}

	return s.diagnose(ctx, user, recordID, symptoms, start)
}

// DiagnoseKeywords runs the pipeline from pre-selected symptom keywords,
// skipping extraction. At least two keywords are required for a meaningful
// classification.
func (s *DiagnosisService) DiagnoseKeywords(ctx context.Context, user *entities.UserContext, recordID string, keywords []string) (*DiagnosisResult, error) {
	if user == nil || user.UserID == "" {
		return nil, apperrors.NewValidationError("user context is required")
	}

	symptoms := s.normalizer.CanonicalizeKeywords(keywords)
	if len(symptoms) < minKeywordCount {
		return nil, apperrors.NewValidationError("at least two symptom keywords are required")
	}

	return s.diagnose(ctx, user, recordID, symptoms, time.Now())
}

func (s *DiagnosisService) diagnose(ctx context.Context, user *entities.UserContext, recordID string, symptoms []entities.CanonicalSymptom, start time.Time) (*DiagnosisResult, error) {
	var record *entities.SymptomRecord
	if recordID != "" {
		existing, err := s.records.GetByID(ctx, recordID)
		if err != nil {
			return nil, err
		}
		if err := s.records.SaveSymptoms(ctx, recordID, symptoms); err != nil {
			return nil, err
		}
		existing.Symptoms = symptoms
		record = existing
	} else {
		record = &entities.SymptomRecord{
			ID:        uuid.New().String(),
			UserID:    user.UserID,
			Symptoms:  symptoms,
			CreatedAt: time.Now(),
		}
		if err := s.records.Create(ctx, record); err != nil {
			return nil, err
		}
	}

	keywords := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		keywords = append(keywords, symptom.Keyword)
	}

	candidates, err := s.classifier.Predict(ctx, &entities.ClassificationRequest{
		SymptomKeywords: keywords,
		Age:             user.Age,
		Gender:          user.Gender,
		Height:          user.Height,
		Weight:          user.Weight,
		BMI:             user.BMI,
		ChronicDiseases: user.ChronicDiseases,
		Medications:     user.Medications,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("disease classification failed", err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewExternalError("disease classification returned no candidates", nil)
	}

	elapsed := time.Since(start).Seconds()
	prediction, err := s.SavePredictionResult(ctx, record.ID, candidates, &elapsed)
	if err != nil {
		return nil, err
	}

	return &DiagnosisResult{
		Record:     record,
		Prediction: prediction,
	}, nil
}

// SavePredictionResult scores the top candidate and persists the prediction
// with the full ranked candidate list. The candidates must already be
// ordered best-first.
func (s *DiagnosisService) SavePredictionResult(ctx context.Context, recordID string, candidates []entities.PredictionCandidate, elapsedSec *float64) (*entities.Prediction, error) {
	if len(candidates) == 0 {
		return nil, apperrors.NewValidationError("at least one prediction candidate is required")
	}

	prediction, ranks := s.buildPrediction(recordID, candidates, elapsedSec)
	if err := s.predictions.Create(ctx, prediction, ranks); err != nil {
		return nil, err
	}
	prediction.Ranks = ranks

	s.publishEvent(ctx, entities.PredictionEventCreated, prediction)
	return prediction, nil
}

// ReplacePredictionResult re-scores and overwrites any existing prediction
// for the record.
func (s *DiagnosisService) ReplacePredictionResult(ctx context.Context, recordID string, candidates []entities.PredictionCandidate, elapsedSec *float64) (*entities.Prediction, error) {
	if len(candidates) == 0 {
		return nil, apperrors.NewValidationError("at least one prediction candidate is required")
	}

	if _, err := s.records.GetByID(ctx, recordID); err != nil {
		return nil, err
	}

	prediction, ranks := s.buildPrediction(recordID, candidates, elapsedSec)
	if err := s.predictions.Replace(ctx, prediction, ranks); err != nil {
		return nil, err
	}
	prediction.Ranks = ranks

	s.publishEvent(ctx, entities.PredictionEventReplaced, prediction)
	return prediction, nil
}

func (s *DiagnosisService) buildPrediction(recordID string, candidates []entities.PredictionCandidate, elapsedSec *float64) (*entities.Prediction, []*entities.PredictionRank) {
	top := candidates[0]
	assessment := s.scorer.Score(top)

	prediction := &entities.Prediction{
		ID:          uuid.New().String(),
		RecordID:    recordID,
		CoarseLabel: top.CoarseLabel,
		FineLabel:   top.FineLabel,
		RiskScore:   assessment.RiskScore,
		RiskLevel:   assessment.RiskLevel,
		Guideline:   assessment.Guideline,
		ElapsedSec:  elapsedSec,
		CreatedAt:   time.Now(),
	}

	ranks := make([]*entities.PredictionRank, 0, len(candidates))
	for i, candidate := range candidates {
		ranks = append(ranks, &entities.PredictionRank{
			ID:           uuid.New().String(),
			PredictionID: prediction.ID,
			Rank:         i + 1,
			CoarseLabel:  candidate.CoarseLabel,
			FineLabel:    candidate.FineLabel,
			RiskScore:    candidate.RiskScore,
		})
	}

	return prediction, ranks
}

func (s *DiagnosisService) publishEvent(ctx context.Context, eventType string, prediction *entities.Prediction) {
	if s.eventBus == nil {
		return
	}

	event := &entities.PredictionEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		RecordID:   prediction.RecordID,
		Prediction: prediction,
		Timestamp:  time.Now(),
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelPredictions, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("record_id", prediction.RecordID).
			Msg("failed to publish prediction event")
	}
}
