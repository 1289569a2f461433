package repositories

import (
	"context"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
)

// SymptomRecordRepository persists self-diagnosis sessions and the canonical
// symptoms reported in them.
type SymptomRecordRepository interface {
	// Create creates a new symptom record
	Create(ctx context.Context, record *entities.SymptomRecord) error

	// GetByID retrieves a record with its symptoms
	GetByID(ctx context.Context, id string) (*entities.SymptomRecord, error)

	// ListByUser retrieves a user's records, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.SymptomRecord, error)

	// Delete removes a record (predictions and symptoms cascade)
	Delete(ctx context.Context, id string) error

	// SaveSymptoms replaces the symptoms stored for a record
	SaveSymptoms(ctx context.Context, recordID string, symptoms []entities.CanonicalSymptom) error
}
