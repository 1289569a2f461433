package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

// SymptomRecordAdapter implements the SymptomRecordRepository interface
type SymptomRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomRecordAdapter creates a new symptom record adapter
func NewSymptomRecordAdapter(client *postgres.Client) repositories.SymptomRecordRepository {
	return &SymptomRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new symptom record
func (a *SymptomRecordAdapter) Create(ctx context.Context, record *entities.SymptomRecord) error {
	query, args, err := a.db.Insert("symptom_records").Rows(goqu.Record{
		"id":         record.ID,
		"user_id":    record.UserID,
		"created_at": record.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create symptom record", err)
	}

	if len(record.Symptoms) > 0 {
		return a.SaveSymptoms(ctx, record.ID, record.Symptoms)
	}
	return nil
}

// GetByID retrieves a record with its symptoms
func (a *SymptomRecordAdapter) GetByID(ctx context.Context, id string) (*entities.SymptomRecord, error) {
	query, args, err := a.db.Select("id", "user_id", "created_at").
		From("symptom_records").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record := &entities.SymptomRecord{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.UserID,
		&record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("symptom record with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get symptom record", err)
	}

	symptoms, err := a.getSymptoms(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Symptoms = symptoms

	return record, nil
}

// ListByUser retrieves a user's records, newest first
func (a *SymptomRecordAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.SymptomRecord, error) {
	query, args, err := a.db.Select("id", "user_id", "created_at").
		From("symptom_records").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list symptom records", err)
	}
	defer rows.Close()

	var records []*entities.SymptomRecord
	for rows.Next() {
		record := &entities.SymptomRecord{}
		if err := rows.Scan(&record.ID, &record.UserID, &record.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate symptom records", err)
	}

	for _, record := range records {
		symptoms, err := a.getSymptoms(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		record.Symptoms = symptoms
	}

	return records, nil
}

// Delete removes a record together with its symptoms
func (a *SymptomRecordAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	symptomQuery, symptomArgs, err := a.db.Delete("record_symptoms").
		Where(goqu.Ex{"record_id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build symptom delete query", err)
	}
	if _, err := tx.ExecContext(ctx, symptomQuery, symptomArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete record symptoms", err)
	}

	query, args, err := a.db.Delete("symptom_records").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete symptom record", err)
	}
	if count, err := result.RowsAffected(); err == nil && count == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("symptom record with id %s not found", id))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit record delete", err)
	}
	return nil
}

// SaveSymptoms replaces the symptoms stored for a record. The position
// column preserves canonical insertion order.
func (a *SymptomRecordAdapter) SaveSymptoms(ctx context.Context, recordID string, symptoms []entities.CanonicalSymptom) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	deleteQuery, deleteArgs, err := a.db.Delete("record_symptoms").
		Where(goqu.Ex{"record_id": recordID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build symptom delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear record symptoms", err)
	}

	if len(symptoms) > 0 {
		records := make([]goqu.Record, 0, len(symptoms))
		for i, s := range symptoms {
			var timeOfDay *string
			if s.Time != nil {
				t := string(*s.Time)
				timeOfDay = &t
			}
			records = append(records, goqu.Record{
				"record_id":   recordID,
				"keyword":     s.Keyword,
				"label":       s.Label,
				"time_of_day": timeOfDay,
				"position":    i,
			})
		}

		insertQuery, insertArgs, err := a.db.Insert("record_symptoms").Rows(records).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build symptom insert query", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return apperrors.NewInternalError("failed to save record symptoms", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit record symptoms", err)
	}
	return nil
}

func (a *SymptomRecordAdapter) getSymptoms(ctx context.Context, recordID string) ([]entities.CanonicalSymptom, error) {
	query, args, err := a.db.Select("keyword", "label", "time_of_day").
		From("record_symptoms").
		Where(goqu.Ex{"record_id": recordID}).
		Order(goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build symptom query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get record symptoms", err)
	}
	defer rows.Close()

	var symptoms []entities.CanonicalSymptom
	for rows.Next() {
		var symptom entities.CanonicalSymptom
		var timeOfDay sql.NullString
		if err := rows.Scan(&symptom.Keyword, &symptom.Label, &timeOfDay); err != nil {
			return nil, apperrors.NewInternalError("failed to scan record symptom", err)
		}
		if timeOfDay.Valid {
			symptom.Time = entities.ParseTimeContext(timeOfDay.String)
		}
		symptoms = append(symptoms, symptom)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate record symptoms", err)
	}

	return symptoms, nil
}
