package entities

import "time"

// RiskLevel is the categorical risk classification shown to the user.
type RiskLevel string

const (
	RiskEmergency RiskLevel = "응급"
	RiskHigh      RiskLevel = "높음"
	RiskModerate  RiskLevel = "보통"
	RiskLow       RiskLevel = "낮음"
)

// PredictionCandidate is one ranked disease hypothesis as received from the
// classification service. RiskScore here is the raw classification
// probability of the candidate, not the weighted score stored on Prediction.
// RiskLevel and Guideline are optional; when an upstream caller already
// decided them the scoring engine honors them instead of recomputing.
type PredictionCandidate struct {
	CoarseLabel string    `json:"coarseLabel"`
	FineLabel   string    `json:"fineLabel"`
	RiskScore   float64   `json:"riskScore"`
	RiskLevel   RiskLevel `json:"riskLevel,omitempty"`
	Guideline   string    `json:"guideline,omitempty"`
}

// RiskAssessment is the scoring engine's output for the top candidate.
type RiskAssessment struct {
	RiskScore float64   `json:"riskScore"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Guideline string    `json:"guideline"`
}

// Prediction is the persisted diagnosis result, one per symptom record.
// RiskScore is the weighted score derived from the rank-1 candidate's
// probability and the contextual weights; it is immutable after creation.
type Prediction struct {
	ID          string            `json:"id"`
	RecordID    string            `json:"recordId"`
	CoarseLabel string            `json:"coarseLabel"`
	FineLabel   string            `json:"fineLabel"`
	RiskScore   float64           `json:"riskScore"`
	RiskLevel   RiskLevel         `json:"riskLevel"`
	Guideline   string            `json:"guideline"`
	ElapsedSec  *float64          `json:"elapsedSec,omitempty"`
	Ranks       []*PredictionRank `json:"ranks,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// PredictionRank preserves one entry of the full ordered candidate list.
// Rank is 1-based; RiskScore stores the raw classification probability.
type PredictionRank struct {
	ID           string  `json:"id"`
	PredictionID string  `json:"predictionId"`
	Rank         int     `json:"rank"`
	CoarseLabel  string  `json:"coarseLabel"`
	FineLabel    string  `json:"fineLabel"`
	RiskScore    float64 `json:"riskScore"`
}

// PredictionEvent is published on the event bus when a prediction is
// created or replaced.
type PredictionEvent struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	RecordID   string      `json:"recordId"`
	Prediction *Prediction `json:"prediction,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

const (
	PredictionEventCreated  = "prediction.created"
	PredictionEventReplaced = "prediction.replaced"
)
