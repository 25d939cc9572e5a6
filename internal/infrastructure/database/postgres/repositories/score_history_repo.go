// Package repositories implements the listing.HistoryStore contract on
// PostgreSQL.
package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/BrandGuard-Intelligence/pkg/errors"
)

// ScoreHistoryRepository stores one row per analysis outcome. Rows are
// append-only; re-analyzing a listing adds a new row rather than updating.
type ScoreHistoryRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

func NewScoreHistoryRepository(pool *pgxpool.Pool, log logging.Logger) *ScoreHistoryRepository {
	return &ScoreHistoryRepository{pool: pool, logger: log}
}

const insertColumns = `
	id, listing_id, brand, matched_text, match_type, mention_confidence,
	score, confidence, risk_level, likely_counterfeit, outcome, degraded,
	indicators, analyzed_at`

func rowValues(result *listing.ScoreResult) ([]interface{}, error) {
	indicators, err := json.Marshal(result.Indicators)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode indicator results")
	}

	var mentionBrand, mentionText, mentionType string
	var mentionConfidence float64
	if result.Mention != nil {
		mentionBrand = result.Mention.Brand
		mentionText = result.Mention.Matched
		mentionType = string(result.Mention.Type)
		mentionConfidence = result.Mention.Confidence
	}

	analyzedAt := result.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now().UTC()
	}

	return []interface{}{
		uuid.New(), result.ListingID, mentionBrand, mentionText, mentionType, mentionConfidence,
		result.Score, result.Confidence, string(result.RiskLevel), result.LikelyCounterfeit,
		string(result.Outcome), result.Degraded, indicators, analyzedAt,
	}, nil
}

func (r *ScoreHistoryRepository) Save(ctx context.Context, result *listing.ScoreResult) error {
	values, err := rowValues(result)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO score_history (`+insertColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		values...,
	)
	if err != nil {
		r.logger.Error("failed to persist score result",
			logging.String("listing_id", result.ListingID),
			logging.Err(err),
		)
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to insert score history row")
	}
	return nil
}

// SaveBatch inserts many results in one round-trip via the COPY protocol.
func (r *ScoreHistoryRepository) SaveBatch(ctx context.Context, results []*listing.ScoreResult) error {
	if len(results) == 0 {
		return nil
	}

	columns := []string{
		"id", "listing_id", "brand", "matched_text", "match_type", "mention_confidence",
		"score", "confidence", "risk_level", "likely_counterfeit", "outcome", "degraded",
		"indicators", "analyzed_at",
	}

	rows := make([][]interface{}, 0, len(results))
	for _, result := range results {
		values, err := rowValues(result)
		if err != nil {
			return err
		}
		rows = append(rows, values)
	}

	inserted, err := r.pool.CopyFrom(ctx, pgx.Identifier{"score_history"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		r.logger.Error("failed to batch persist score results", logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to batch insert score history")
	}
	r.logger.Debug("persisted score history batch", logging.Int64("inserted", inserted))
	return nil
}

const selectColumns = `
	listing_id, brand, matched_text, match_type, mention_confidence,
	score, confidence, risk_level, likely_counterfeit, outcome, degraded,
	indicators, analyzed_at`

func (r *ScoreHistoryRepository) FindByListingID(ctx context.Context, listingID string, limit int) ([]*listing.ScoreResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM score_history
		WHERE listing_id = $1
		ORDER BY analyzed_at DESC
		LIMIT $2`,
		listingID, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query score history")
	}
	defer rows.Close()

	return collectResults(rows)
}

func (r *ScoreHistoryRepository) ListHighRisk(ctx context.Context, limit int) ([]*listing.ScoreResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectColumns+`
		FROM score_history
		WHERE likely_counterfeit
		ORDER BY analyzed_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to query high-risk history")
	}
	defer rows.Close()

	return collectResults(rows)
}

func collectResults(rows pgx.Rows) ([]*listing.ScoreResult, error) {
	var results []*listing.ScoreResult
	for rows.Next() {
		var (
			result         listing.ScoreResult
			mentionBrand   string
			mentionText    string
			mentionType    string
			mentionConf    float64
			riskLevel      string
			outcome        string
			indicatorsJSON []byte
		)
		if err := rows.Scan(
			&result.ListingID, &mentionBrand, &mentionText, &mentionType, &mentionConf,
			&result.Score, &result.Confidence, &riskLevel, &result.LikelyCounterfeit,
			&outcome, &result.Degraded, &indicatorsJSON, &result.AnalyzedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan score history row")
		}

		result.RiskLevel = listing.RiskLevel(riskLevel)
		result.Outcome = listing.Outcome(outcome)
		if mentionBrand != "" {
			result.Mention = &listing.BrandMention{
				Brand:      mentionBrand,
				Matched:    mentionText,
				Type:       listing.MatchType(mentionType),
				Confidence: mentionConf,
			}
		}
		if len(indicatorsJSON) > 0 {
			if err := json.Unmarshal(indicatorsJSON, &result.Indicators); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode indicator results")
			}
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate score history rows")
	}
	return results, nil
}

//Personal.AI order the ending
