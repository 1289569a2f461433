package repositories

import (
	"context"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

// PredictionRepository persists diagnosis results. A prediction and its rank
// rows form one atomic unit: readers must never observe one without the
// other.
type PredictionRepository interface {
	// Create writes the prediction and its ranks in a single transaction.
	// Returns a conflict error when the record already has a prediction.
	Create(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error

	// Replace atomically removes any existing prediction for the record and
	// writes the new one, in a single transaction. Safe to call whether or
	// not a prediction exists.
	Replace(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error

	// GetByRecordID retrieves the prediction for a record including its
	// ranks ordered by rank ascending.
	GetByRecordID(ctx context.Context, recordID string) (*entities.Prediction, error)

	// DeleteByRecordID removes the prediction and its ranks for a record.
	DeleteByRecordID(ctx context.Context, recordID string) error
}
