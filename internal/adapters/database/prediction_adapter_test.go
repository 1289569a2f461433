package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/adapters/database"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

func setupPredictionAdapter(t *testing.T) (repositories.PredictionRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	adapter := database.NewPredictionAdapter(postgres.NewClientWithDB(db))
	return adapter, mock
}

func samplePrediction() (*entities.Prediction, []*entities.PredictionRank) {
	prediction := &entities.Prediction{
		ID:          "pred-1",
		RecordID:    "record-1",
		CoarseLabel: "호흡기질환",
		FineLabel:   "급성 기관지염",
		RiskScore:   3.72,
		RiskLevel:   entities.RiskModerate,
		Guideline:   "증상을 경과 관찰하고 지속되거나 악화되면 병원을 방문하세요.",
		CreatedAt:   time.Now(),
	}
	ranks := []*entities.PredictionRank{
		{ID: "rank-1", PredictionID: "pred-1", Rank: 1, CoarseLabel: "호흡기질환", FineLabel: "급성 기관지염", RiskScore: 0.62},
		{ID: "rank-2", PredictionID: "pred-1", Rank: 2, CoarseLabel: "호흡기질환", FineLabel: "감기", RiskScore: 0.25},
	}
	return prediction, ranks
}

func TestPredictionAdapter_Create(t *testing.T) {
	t.Run("commits prediction and ranks in one transaction", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)
		prediction, ranks := samplePrediction()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "predictions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "prediction_ranks"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := adapter.Create(context.Background(), prediction, ranks)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate record surfaces as conflict and rolls back", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)
		prediction, ranks := samplePrediction()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "predictions"`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := adapter.Create(context.Background(), prediction, ranks)

		assert.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rank insert failure rolls everything back", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)
		prediction, ranks := samplePrediction()

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "predictions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "prediction_ranks"`).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := adapter.Create(context.Background(), prediction, ranks)

		assert.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPredictionAdapter_Replace(t *testing.T) {
	t.Run("deletes the old prediction and inserts the new one atomically", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)
		prediction, ranks := samplePrediction()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "prediction_ranks"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "predictions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "predictions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "prediction_ranks"`).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := adapter.Replace(context.Background(), prediction, ranks)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPredictionAdapter_GetByRecordID(t *testing.T) {
	t.Run("returns the prediction with ranks in order", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)
		created := time.Now()

		mock.ExpectQuery(`SELECT .+ FROM "predictions"`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "record_id", "coarse_label", "fine_label", "risk_score",
				"risk_level", "guideline", "elapsed_sec", "created_at",
			}).AddRow("pred-1", "record-1", "호흡기질환", "급성 기관지염", 3.72, "보통", "안내", 4.2, created))

		mock.ExpectQuery(`SELECT .+ FROM "prediction_ranks"`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "prediction_id", "rank", "coarse_label", "fine_label", "risk_score",
			}).
				AddRow("rank-1", "pred-1", 1, "호흡기질환", "급성 기관지염", 0.62).
				AddRow("rank-2", "pred-1", 2, "호흡기질환", "감기", 0.25).
				AddRow("rank-3", "pred-1", 3, "호흡기질환", "천식", 0.13))

		prediction, err := adapter.GetByRecordID(context.Background(), "record-1")

		require.NoError(t, err)
		assert.Equal(t, "pred-1", prediction.ID)
		assert.Equal(t, entities.RiskModerate, prediction.RiskLevel)
		require.NotNil(t, prediction.ElapsedSec)
		assert.Equal(t, 4.2, *prediction.ElapsedSec)

		require.Len(t, prediction.Ranks, 3)
		for i, rank := range prediction.Ranks {
			assert.Equal(t, i+1, rank.Rank)
		}
		assert.Equal(t, prediction.FineLabel, prediction.Ranks[0].FineLabel)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing prediction is a not found error", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)

		mock.ExpectQuery(`SELECT .+ FROM "predictions"`).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "record_id", "coarse_label", "fine_label", "risk_score",
				"risk_level", "guideline", "elapsed_sec", "created_at",
			}))

		_, err := adapter.GetByRecordID(context.Background(), "missing")

		assert.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPredictionAdapter_DeleteByRecordID(t *testing.T) {
	t.Run("removes ranks before the prediction", func(t *testing.T) {
		adapter, mock := setupPredictionAdapter(t)

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "prediction_ranks"`).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "predictions"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := adapter.DeleteByRecordID(context.Background(), "record-1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
