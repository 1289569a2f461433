package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/application/services"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/config"
)

func defaultWeights() config.ScoringWeights {
	return config.ScoringWeights{
		Symptom:    1.0,
		Chronic:    1.0,
		Age:        1.0,
		Gender:     1.0,
		BMI:        1.0,
		Medication: 1.0,
	}
}

func TestRiskService_Score(t *testing.T) {
	t.Run("weights the raw probability and rounds to two decimals", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		assessment := service.Score(entities.PredictionCandidate{
			CoarseLabel: "소화기질환",
			FineLabel:   "위염",
			RiskScore:   0.62,
		})

		assert.Equal(t, 3.72, assessment.RiskScore)
		assert.Equal(t, entities.RiskModerate, assessment.RiskLevel)
		assert.Equal(t, "증상을 경과 관찰하고 지속되거나 악화되면 병원을 방문하세요.", assessment.Guideline)
	})

	t.Run("rounding keeps two decimals", func(t *testing.T) {
		weights := defaultWeights()
		weights.Chronic = 1.11
		service := services.NewRiskService(weights)

		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "위염",
			RiskScore: 0.333,
		})

		// 0.333 * 6.11 = 2.03463
		assert.Equal(t, 2.03, assessment.RiskScore)
	})

	t.Run("high score on a non-emergency disease stays at high", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "위염",
			RiskScore: 1.0,
		})

		assert.Equal(t, 6.0, assessment.RiskScore)
		assert.Equal(t, entities.RiskHigh, assessment.RiskLevel)
		assert.Equal(t, "오늘 중으로 가까운 병원 방문을 권장합니다.", assessment.Guideline)
	})

	t.Run("high score on an emergency disease reaches emergency", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "심근경색",
			RiskScore: 1.0,
		})

		assert.Equal(t, entities.RiskEmergency, assessment.RiskLevel)
		assert.Equal(t, "즉시 응급실 방문이 필요합니다. 119에 연락하세요.", assessment.Guideline)
	})

	t.Run("threshold boundaries", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		cases := []struct {
			name  string
			prob  float64
			level entities.RiskLevel
		}{
			{"exactly moderate", 2.5 / 6.0, entities.RiskModerate},
			{"just below moderate", 0.41, entities.RiskLow},
			{"exactly high", 0.75, entities.RiskHigh},
			{"just below high", 0.74, entities.RiskModerate},
			{"zero probability", 0.0, entities.RiskLow},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assessment := service.Score(entities.PredictionCandidate{
					FineLabel: "위염",
					RiskScore: tc.prob,
				})
				assert.Equal(t, tc.level, assessment.RiskLevel)
			})
		}
	})

	t.Run("score is monotone in probability", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		low := service.Score(entities.PredictionCandidate{FineLabel: "위염", RiskScore: 0.3})
		high := service.Score(entities.PredictionCandidate{FineLabel: "위염", RiskScore: 0.7})

		assert.Less(t, low.RiskScore, high.RiskScore)
	})

	t.Run("honors a precomputed level and guideline", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "위염",
			RiskScore: 0.2,
			RiskLevel: entities.RiskHigh,
			Guideline: "사전 계산된 안내입니다.",
		})

		// Level and guideline pass through untouched, score is still derived.
		assert.Equal(t, entities.RiskHigh, assessment.RiskLevel)
		assert.Equal(t, "사전 계산된 안내입니다.", assessment.Guideline)
		assert.Equal(t, 1.2, assessment.RiskScore)
	})

	t.Run("level without guideline is recomputed", func(t *testing.T) {
		service := services.NewRiskService(defaultWeights())

		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "위염",
			RiskScore: 0.5,
			RiskLevel: entities.RiskEmergency,
		})

		assert.Equal(t, entities.RiskModerate, assessment.RiskLevel)
	})

	t.Run("custom weights shift the ladder", func(t *testing.T) {
		weights := defaultWeights()
		weights.Chronic = 2.0
		weights.Age = 2.0
		service := services.NewRiskService(weights)

		// 0.62 * 8.0 = 4.96
		assessment := service.Score(entities.PredictionCandidate{
			FineLabel: "위염",
			RiskScore: 0.62,
		})

		assert.Equal(t, 4.96, assessment.RiskScore)
		assert.Equal(t, entities.RiskHigh, assessment.RiskLevel)
	})
}
