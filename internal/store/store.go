package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection with pooling configuration.
type DB struct {
	*sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewDB opens (or creates) the marketplace database under dataDir and runs
// migrations.
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "idea_insight.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	return open(connStr)
}

// NewMemoryDB opens an in-memory database, used by tests. The shared cache
// keeps every pooled connection on the same database.
func NewMemoryDB() (*DB, error) {
	return open("file::memory:?cache=shared")
}

func open(connStr string) (*DB, error) {
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{
		DB:           db,
		maxOpenConns: 25,
		maxIdleConns: 5,
		maxLifetime:  5 * time.Minute,
	}

	db.SetMaxOpenConns(database.maxOpenConns)
	db.SetMaxIdleConns(database.maxIdleConns)
	db.SetConnMaxLifetime(database.maxLifetime)

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("Database initialized",
		"max_open_conns", database.maxOpenConns,
		"max_idle_conns", database.maxIdleConns,
		"max_lifetime", database.maxLifetime)

	return database, nil
}

// migrate creates the tables this core reads and appends to. Ideas,
// profiles, signals and purchases are populated by the surrounding
// application; predictions, click events and the text-feature cache are
// owned here.
func (db *DB) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ideas (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			category TEXT NOT NULL,
			tech_stack TEXT NOT NULL, -- JSON array
			implementation_difficulty INTEGER NOT NULL DEFAULT 3,
			target_audience TEXT,
			revenue_model TEXT,
			package_type TEXT,
			price REAL NOT NULL DEFAULT 0,
			view_count INTEGER NOT NULL DEFAULT 0,
			purchase_count INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS developer_profiles (
			user_id TEXT PRIMARY KEY,
			github_username TEXT,
			skill_scores TEXT NOT NULL DEFAULT '{}', -- JSON map technology -> score
			project_completion_rate REAL NOT NULL DEFAULT 0,
			average_project_duration_days REAL NOT NULL DEFAULT 0,
			success_rate REAL NOT NULL DEFAULT 0,
			specialization_areas TEXT NOT NULL DEFAULT '[]' -- JSON array
		)`,

		`CREATE TABLE IF NOT EXISTS market_signals (
			id TEXT PRIMARY KEY,
			keyword TEXT NOT NULL,
			search_volume INTEGER NOT NULL DEFAULT 0,
			trend_direction TEXT NOT NULL DEFAULT 'stable',
			market_size_estimate REAL NOT NULL DEFAULT 0,
			competition_level TEXT NOT NULL DEFAULT 'medium',
			revenue_potential TEXT NOT NULL DEFAULT 'medium',
			confidence_score REAL NOT NULL DEFAULT 0,
			collected_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS purchases (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			idea_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'completed',
			price REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (idea_id) REFERENCES ideas(id)
		)`,

		`CREATE TABLE IF NOT EXISTS predictions (
			id TEXT PRIMARY KEY,
			idea_id TEXT NOT NULL,
			developer_id TEXT NOT NULL,
			prediction_score REAL NOT NULL,
			market_timing REAL NOT NULL,
			technical_feasibility REAL NOT NULL,
			developer_match REAL NOT NULL,
			funding_probability REAL NOT NULL,
			confidence_interval REAL NOT NULL,
			factors TEXT NOT NULL, -- JSON SWOT payload
			recommendation TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS click_events (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			idea_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS text_feature_cache (
			content_hash TEXT PRIMARY KEY,
			features TEXT NOT NULL, -- JSON TextFeatures
			created_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ideas_status ON ideas(status)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_purchases ON ideas(purchase_count DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_market_signals_keyword ON market_signals(keyword)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_idea ON purchases(idea_id)`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_pair ON predictions(idea_id, developer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_click_events_user ON click_events(user_id)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// HealthCheck pings the database within the caller's deadline.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// PoolStats returns connection pool statistics for the health endpoint.
func (db *DB) PoolStats() map[string]interface{} {
	stats := db.DB.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": db.maxOpenConns,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
}
