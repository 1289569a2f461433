package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/entities"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/yeonwoo-dev/bodycheck-backend/pkg/errors"
)

const uniqueViolationCode = "23505"

// PredictionAdapter implements the PredictionRepository interface
type PredictionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPredictionAdapter creates a new prediction adapter
func NewPredictionAdapter(client *postgres.Client) repositories.PredictionRepository {
	return &PredictionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create writes the prediction and its ranks in one transaction. A record
// that already has a prediction surfaces as a conflict error.
func (a *PredictionAdapter) Create(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := a.insertPrediction(ctx, tx, prediction, ranks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit prediction", err)
	}
	return nil
}

// Replace removes any existing prediction for the record and writes the new
// one, all inside a single transaction.
func (a *PredictionAdapter) Replace(ctx context.Context, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := a.deleteByRecordID(ctx, tx, prediction.RecordID); err != nil {
		return err
	}
	if err := a.insertPrediction(ctx, tx, prediction, ranks); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit prediction", err)
	}
	return nil
}

func (a *PredictionAdapter) insertPrediction(ctx context.Context, tx *sql.Tx, prediction *entities.Prediction, ranks []*entities.PredictionRank) error {
	record := goqu.Record{
		"id":           prediction.ID,
		"record_id":    prediction.RecordID,
		"coarse_label": prediction.CoarseLabel,
		"fine_label":   prediction.FineLabel,
		"risk_score":   prediction.RiskScore,
		"risk_level":   string(prediction.RiskLevel),
		"guideline":    prediction.Guideline,
		"elapsed_sec":  prediction.ElapsedSec,
		"created_at":   prediction.CreatedAt,
	}

	query, args, err := a.db.Insert("predictions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolationCode {
			return apperrors.NewConflictError(fmt.Sprintf("prediction already exists for record %s", prediction.RecordID))
		}
		return apperrors.NewInternalError("failed to create prediction", err)
	}

	if len(ranks) == 0 {
		return nil
	}

	rankRecords := make([]goqu.Record, 0, len(ranks))
	for _, r := range ranks {
		rankRecords = append(rankRecords, goqu.Record{
			"id":            r.ID,
			"prediction_id": r.PredictionID,
			"rank":          r.Rank,
			"coarse_label":  r.CoarseLabel,
			"fine_label":    r.FineLabel,
			"risk_score":    r.RiskScore,
		})
	}

	query, args, err = a.db.Insert("prediction_ranks").Rows(rankRecords).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rank insert query", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create prediction ranks", err)
	}

	return nil
}

// GetByRecordID retrieves a prediction with its ranks ordered by rank.
func (a *PredictionAdapter) GetByRecordID(ctx context.Context, recordID string) (*entities.Prediction, error) {
	query, args, err := a.db.Select(
		"id", "record_id", "coarse_label", "fine_label", "risk_score",
		"risk_level", "guideline", "elapsed_sec", "created_at",
	).From("predictions").
		Where(goqu.Ex{"record_id": recordID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	prediction := &entities.Prediction{}
	var riskLevel string
	var elapsedSec sql.NullFloat64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&prediction.ID,
		&prediction.RecordID,
		&prediction.CoarseLabel,
		&prediction.FineLabel,
		&prediction.RiskScore,
		&riskLevel,
		&prediction.Guideline,
		&elapsedSec,
		&prediction.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("prediction for record %s not found", recordID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get prediction", err)
	}

	prediction.RiskLevel = entities.RiskLevel(riskLevel)
	if elapsedSec.Valid {
		prediction.ElapsedSec = &elapsedSec.Float64
	}

	ranks, err := a.getRanks(ctx, prediction.ID)
	if err != nil {
		return nil, err
	}
	prediction.Ranks = ranks

	return prediction, nil
}

func (a *PredictionAdapter) getRanks(ctx context.Context, predictionID string) ([]*entities.PredictionRank, error) {
	query, args, err := a.db.Select(
		"id", "prediction_id", "rank", "coarse_label", "fine_label", "risk_score",
	).From("prediction_ranks").
		Where(goqu.Ex{"prediction_id": predictionID}).
		Order(goqu.C("rank").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build rank query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get prediction ranks", err)
	}
	defer rows.Close()

	var ranks []*entities.PredictionRank
	for rows.Next() {
		rank := &entities.PredictionRank{}
		if err := rows.Scan(
			&rank.ID,
			&rank.PredictionID,
			&rank.Rank,
			&rank.CoarseLabel,
			&rank.FineLabel,
			&rank.RiskScore,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan prediction rank", err)
		}
		ranks = append(ranks, rank)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate prediction ranks", err)
	}

	return ranks, nil
}

// DeleteByRecordID removes the prediction and its ranks for a record.
func (a *PredictionAdapter) DeleteByRecordID(ctx context.Context, recordID string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if err := a.deleteByRecordID(ctx, tx, recordID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit prediction delete", err)
	}
	return nil
}

func (a *PredictionAdapter) deleteByRecordID(ctx context.Context, tx *sql.Tx, recordID string) error {
	rankQuery, rankArgs, err := a.db.Delete("prediction_ranks").
		Where(goqu.C("prediction_id").In(
			a.db.Select("id").From("predictions").Where(goqu.Ex{"record_id": recordID}),
		)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build rank delete query", err)
	}
	if _, err := tx.ExecContext(ctx, rankQuery, rankArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete prediction ranks", err)
	}

	query, args, err := a.db.Delete("predictions").
		Where(goqu.Ex{"record_id": recordID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete prediction", err)
	}

	return nil
}
