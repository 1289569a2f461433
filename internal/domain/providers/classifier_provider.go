package providers

import (
	"context"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

// DiseaseClassifierProvider is the boundary to the remote classification
// model. Candidates are returned ordered by descending confidence.
type DiseaseClassifierProvider interface {
	Predict(ctx context.Context, req *entities.ClassificationRequest) ([]entities.PredictionCandidate, error)
}
