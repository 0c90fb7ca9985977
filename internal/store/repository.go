package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/devlink-kr/idea-insight/internal/errors"
	"github.com/devlink-kr/idea-insight/internal/textfeat"
	"github.com/devlink-kr/idea-insight/internal/types"
)

// Repository exposes the read and append contracts the scoring core
// consumes. Reads return snapshots; the only writes are appends.
type Repository struct {
	db *DB
}

// NewRepository creates a new repository.
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

const ideaColumns = `id, title, description, category, tech_stack,
	implementation_difficulty, target_audience, revenue_model, package_type,
	price, view_count, purchase_count, status, created_at`

func scanIdea(row interface{ Scan(...interface{}) error }) (*types.IdeaMetrics, error) {
	var idea types.IdeaMetrics
	var techStack string
	err := row.Scan(
		&idea.ID, &idea.Title, &idea.Description, &idea.Category, &techStack,
		&idea.Difficulty, &idea.TargetAudience, &idea.RevenueModel,
		&idea.PackageType, &idea.Price, &idea.ViewCount, &idea.PurchaseCount,
		&idea.Status, &idea.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(techStack), &idea.TechStack); err != nil {
		return nil, fmt.Errorf("failed to decode tech stack for idea %s: %w", idea.ID, err)
	}
	return &idea, nil
}

// GetIdea loads one idea snapshot. A missing idea is a NotFoundError.
func (r *Repository) GetIdea(ctx context.Context, id string) (*types.IdeaMetrics, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)

	idea, err := scanIdea(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("idea", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query idea: %w", err)
	}

	return idea, nil
}

// GetDeveloperProfile loads a developer profile, returning an empty default
// profile when the developer has no recorded history.
func (r *Repository) GetDeveloperProfile(ctx context.Context, userID string) (*types.DeveloperProfile, error) {
	var profile types.DeveloperProfile
	var github sql.NullString
	var skills, specialization string

	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, github_username, skill_scores, project_completion_rate,
			average_project_duration_days, success_rate, specialization_areas
		FROM developer_profiles WHERE user_id = ?
	`, userID).Scan(
		&profile.UserID, &github, &skills, &profile.CompletionRate,
		&profile.AvgProjectDays, &profile.SuccessRate, &specialization,
	)

	if err == sql.ErrNoRows {
		// New developer: valid empty profile, not an error.
		return &types.DeveloperProfile{
			UserID:      userID,
			SkillScores: map[string]float64{},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query developer profile: %w", err)
	}

	profile.GithubUsername = github.String
	if err := json.Unmarshal([]byte(skills), &profile.SkillScores); err != nil {
		return nil, fmt.Errorf("failed to decode skill scores for %s: %w", userID, err)
	}
	if err := json.Unmarshal([]byte(specialization), &profile.SpecializationAreas); err != nil {
		return nil, fmt.Errorf("failed to decode specialization areas for %s: %w", userID, err)
	}

	return &profile, nil
}

// GetMarketSignals returns the newest signal per keyword for the given
// keywords. Zero signals is a valid result.
func (r *Repository) GetMarketSignals(ctx context.Context, keywords []string) ([]types.MarketSignal, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(keywords))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, len(keywords))
	for i, kw := range keywords {
		args[i] = strings.ToLower(kw)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT keyword, search_volume, trend_direction, market_size_estimate,
			competition_level, revenue_potential, confidence_score
		FROM market_signals
		WHERE keyword IN (`+placeholders+`)
		GROUP BY keyword
		HAVING MAX(collected_at)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query market signals: %w", err)
	}
	defer rows.Close()

	var signals []types.MarketSignal
	for rows.Next() {
		var s types.MarketSignal
		if err := rows.Scan(
			&s.Keyword, &s.SearchVolume, &s.TrendDirection, &s.MarketSizeEstimate,
			&s.CompetitionLevel, &s.RevenuePotential, &s.ConfidenceScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan market signal: %w", err)
		}
		signals = append(signals, s)
	}

	return signals, rows.Err()
}

// GetCompletedPurchases returns a user's completed purchase history joined
// with the purchased idea's metadata, newest first.
func (r *Repository) GetCompletedPurchases(ctx context.Context, userID string) ([]types.PurchaseRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.idea_id, i.category, i.package_type,
			p.price, i.tech_stack, i.implementation_difficulty, p.created_at
		FROM purchases p
		JOIN ideas i ON i.id = p.idea_id
		WHERE p.user_id = ? AND p.status = 'completed'
		ORDER BY p.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	return scanPurchases(rows)
}

// GetPurchasesByCategories returns completed purchases of ideas in the
// given categories made by users other than excludeUserID. Used by the
// collaborative signal to find peer purchase sets.
func (r *Repository) GetPurchasesByCategories(ctx context.Context, categories []string, excludeUserID string) ([]types.PurchaseRecord, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(categories))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(categories)+1)
	for _, cat := range categories {
		args = append(args, cat)
	}
	args = append(args, excludeUserID)

	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, p.idea_id, i.category, i.package_type,
			p.price, i.tech_stack, i.implementation_difficulty, p.created_at
		FROM purchases p
		JOIN ideas i ON i.id = p.idea_id
		WHERE p.status = 'completed'
			AND i.category IN (`+placeholders+`)
			AND p.user_id != ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query peer purchases: %w", err)
	}
	defer rows.Close()

	return scanPurchases(rows)
}

func scanPurchases(rows *sql.Rows) ([]types.PurchaseRecord, error) {
	var purchases []types.PurchaseRecord
	for rows.Next() {
		var p types.PurchaseRecord
		var techStack string
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.IdeaID, &p.Category, &p.PackageType,
			&p.Price, &techStack, &p.Difficulty, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		if err := json.Unmarshal([]byte(techStack), &p.TechStack); err != nil {
			return nil, fmt.Errorf("failed to decode tech stack for purchase %s: %w", p.ID, err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// GetActiveApprovedIdeas returns all approved ideas, excluding the given
// ids.
func (r *Repository) GetActiveApprovedIdeas(ctx context.Context, excludeIDs []string) ([]types.IdeaMetrics, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE status = 'approved'`
	var args []interface{}

	if len(excludeIDs) > 0 {
		placeholders := strings.Repeat("?,", len(excludeIDs))
		placeholders = placeholders[:len(placeholders)-1]
		query += ` AND id NOT IN (` + placeholders + `)`
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}

	return r.queryIdeas(ctx, query, args...)
}

// GetTopPurchasedIdeas returns the most-purchased approved ideas, newest
// first within equal purchase counts. Feeds the popularity signal and the
// cold-start fallback.
func (r *Repository) GetTopPurchasedIdeas(ctx context.Context, limit int) ([]types.IdeaMetrics, error) {
	return r.queryIdeas(ctx, `
		SELECT `+ideaColumns+` FROM ideas
		WHERE status = 'approved'
		ORDER BY purchase_count DESC, created_at DESC
		LIMIT ?
	`, limit)
}

func (r *Repository) queryIdeas(ctx context.Context, query string, args ...interface{}) ([]types.IdeaMetrics, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ideas: %w", err)
	}
	defer rows.Close()

	var ideas []types.IdeaMetrics
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, *idea)
	}

	return ideas, rows.Err()
}

// AppendPrediction appends one prediction history row. It never updates an
// existing row.
func (r *Repository) AppendPrediction(ctx context.Context, rec PredictionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO predictions (
			id, idea_id, developer_id, prediction_score, market_timing,
			technical_feasibility, developer_match, funding_probability,
			confidence_interval, factors, recommendation, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.IdeaID, rec.DeveloperID, rec.PredictionScore,
		rec.MarketTiming, rec.TechnicalFeasibility, rec.DeveloperMatch,
		rec.FundingProbability, rec.ConfidenceInterval, rec.Factors,
		rec.Recommendation, rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append prediction: %w", err)
	}
	return nil
}

// AppendClickEvent appends one recommendation click row.
func (r *Repository) AppendClickEvent(ctx context.Context, ev ClickEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO click_events (id, user_id, idea_id, position, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, ev.ID, ev.UserID, ev.IdeaID, ev.Position, ev.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to append click event: %w", err)
	}
	return nil
}

// UpsertTextFeatureCache persists one extraction result keyed by content
// hash. Duplicate writes carry identical content, so last-write-wins is
// safe.
func (r *Repository) UpsertTextFeatureCache(ctx context.Context, hash string, features textfeat.TextFeatures) error {
	payload, err := json.Marshal(features)
	if err != nil {
		return fmt.Errorf("failed to encode text features: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO text_feature_cache (content_hash, features, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET
			features = excluded.features
	`, hash, string(payload), time.Now())

	if err != nil {
		return fmt.Errorf("failed to upsert text feature cache: %w", err)
	}
	return nil
}

// LoadTextFeatureCache loads all persisted extraction results, used to warm
// the in-memory cache at startup.
func (r *Repository) LoadTextFeatureCache(ctx context.Context) (map[string]textfeat.TextFeatures, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT content_hash, features FROM text_feature_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query text feature cache: %w", err)
	}
	defer rows.Close()

	entries := make(map[string]textfeat.TextFeatures)
	for rows.Next() {
		var hash, payload string
		if err := rows.Scan(&hash, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		var features textfeat.TextFeatures
		if err := json.Unmarshal([]byte(payload), &features); err != nil {
			return nil, fmt.Errorf("failed to decode cache entry %s: %w", hash, err)
		}
		entries[hash] = features
	}

	return entries, rows.Err()
}
