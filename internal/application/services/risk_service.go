package services

import (
	"math"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/config"
)

// Risk ladder thresholds applied to the weighted score.
const (
	emergencyThreshold = 6.0
	highThreshold      = 4.5
	moderateThreshold  = 2.5
)

// emergencyDiseases lists the fine labels eligible for the 응급 level. A
// score above the emergency threshold alone is not enough; the condition
// itself must warrant an ER visit.
var emergencyDiseases = map[string]struct{}{
	"심근경색":  {},
	"협심증":   {},
	"심부전":   {},
	"뇌졸중":   {},
	"폐렴":    {},
	"패혈증":   {},
	"기흉":    {},
	"장폐색":   {},
	"급성 췌장염": {},
}

// riskGuidelines maps each level to its fixed user guidance.
var riskGuidelines = map[entities.RiskLevel]string{
	entities.RiskEmergency: "즉시 응급실 방문이 필요합니다. 119에 연락하세요.",
	entities.RiskHigh:      "오늘 중으로 가까운 병원 방문을 권장합니다.",
	entities.RiskModerate:  "증상을 경과 관찰하고 지속되거나 악화되면 병원을 방문하세요.",
	entities.RiskLow:       "생활 관리를 하며 증상을 지켜보세요.",
}

// RiskService converts the top candidate's raw classification probability
// into a weighted score, a categorical level, and a guidance message.
type RiskService struct {
	weights config.ScoringWeights
}

// NewRiskService creates a new risk scoring service.
func NewRiskService(weights config.ScoringWeights) *RiskService {
	return &RiskService{weights: weights}
}

// Score assesses the top-ranked candidate. The weighted score is always
// computed as probability times the sum of the six contextual weights,
// rounded to two decimals. When the candidate arrives with both a level and
// a guideline already decided upstream, those are kept as-is.
func (s *RiskService) Score(top entities.PredictionCandidate) entities.RiskAssessment {
	score := round2(top.RiskScore * s.weights.Sum())

	if top.RiskLevel != "" && top.Guideline != "" {
		return entities.RiskAssessment{
			RiskScore: score,
			RiskLevel: top.RiskLevel,
			Guideline: top.Guideline,
		}
	}

	level := s.classify(score, top.FineLabel)
	return entities.RiskAssessment{
		RiskScore: score,
		RiskLevel: level,
		Guideline: riskGuidelines[level],
	}
}

func (s *RiskService) classify(score float64, fineLabel string) entities.RiskLevel {
	if score >= emergencyThreshold {
		if _, ok := emergencyDiseases[fineLabel]; ok {
			return entities.RiskEmergency
		}
	}
	switch {
	case score >= highThreshold:
		return entities.RiskHigh
	case score >= moderateThreshold:
		return entities.RiskModerate
	default:
		return entities.RiskLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
