package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/adapters/database"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

func setupRecordAdapter(t *testing.T) (repositories.SymptomRecordRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := database.NewSymptomRecordAdapter(postgres.NewClientWithDB(db))
	return adapter, mock
}

func TestSymptomRecordAdapter_Create(t *testing.T) {
	t.Run("stores the record and its symptoms", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)
		night := entities.TimeNight

		mock.ExpectExec(`INSERT INTO "symptom_records"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := adapter.Create(context.Background(), &entities.SymptomRecord{
			ID:     "record-1",
			UserID: "user-1",
			Symptoms: []entities.CanonicalSymptom{
				{Keyword: "cough", Label: "기침", Time: &night},
				{Keyword: "fever", Label: "발열"},
			},
			CreatedAt: time.Now(),
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSymptomRecordAdapter_GetByID(t *testing.T) {
	t.Run("returns the record with symptoms in stored order", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)
		created := time.Now()

		mock.ExpectQuery(`SELECT .+ FROM "symptom_records"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}).
				AddRow("record-1", "user-1", created))

		mock.ExpectQuery(`SELECT .+ FROM "record_symptoms"`).
			WillReturnRows(sqlmock.NewRows([]string{"keyword", "label", "time_of_day"}).
				AddRow("cough", "기침", "night").
				AddRow("fever", "발열", nil))

		record, err := adapter.GetByID(context.Background(), "record-1")

		require.NoError(t, err)
		require.Len(t, record.Symptoms, 2)
		assert.Equal(t, "기침", record.Symptoms[0].Label)
		require.NotNil(t, record.Symptoms[0].Time)
		assert.Equal(t, entities.TimeNight, *record.Symptoms[0].Time)
		assert.Nil(t, record.Symptoms[1].Time)
	})

	t.Run("missing record is a not found error", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "symptom_records"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

		_, err := adapter.GetByID(context.Background(), "missing")

		assert.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestSymptomRecordAdapter_SaveSymptoms(t *testing.T) {
	t.Run("replaces existing symptoms in one transaction", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`INSERT INTO "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := adapter.SaveSymptoms(context.Background(), "record-1", []entities.CanonicalSymptom{
			{Keyword: "headache", Label: "두통"},
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty symptom list just clears the stored ones", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := adapter.SaveSymptoms(context.Background(), "record-1", nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSymptomRecordAdapter_Delete(t *testing.T) {
	t.Run("deleting an unknown record reports not found", func(t *testing.T) {
		adapter, mock := setupRecordAdapter(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "record_symptoms"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "symptom_records"`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := adapter.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}
