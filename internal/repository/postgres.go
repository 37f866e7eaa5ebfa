package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"weatherlookup/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresRepository stores search history
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository connects to PostgreSQL and verifies the connection
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Migrate applies the embedded schema migrations
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, r.db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping checks the database is reachable
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// AddSearch records a looked-up city for a session
func (r *PostgresRepository) AddSearch(ctx context.Context, sessionID, city string) error {
	query := `INSERT INTO search_history (session_id, city) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, city); err != nil {
		return fmt.Errorf("failed to save search: %w", err)
	}
	return nil
}

// LastCity returns the most recent city searched in a session, or "" if none
func (r *PostgresRepository) LastCity(ctx context.Context, sessionID string) (string, error) {
	var city string
	query := `
		SELECT city
		FROM search_history
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &city, query, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get last city: %w", err)
	}
	return city, nil
}

// CityCounts returns how often each city was searched in a session, most searched first
func (r *PostgresRepository) CityCounts(ctx context.Context, sessionID string) ([]model.CityCount, error) {
	query := `
		SELECT city, COUNT(id) AS count
		FROM search_history
		WHERE session_id = $1
		GROUP BY city
		ORDER BY count DESC, city ASC
	`
	counts := []model.CityCount{}
	if err := r.db.SelectContext(ctx, &counts, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return counts, nil
}

// Stats returns search counts per city across all sessions
func (r *PostgresRepository) Stats(ctx context.Context) ([]model.CityCount, error) {
	query := `
		SELECT city, COUNT(id) AS count
		FROM search_history
		GROUP BY city
		ORDER BY count DESC, city ASC
	`
	counts := []model.CityCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	return counts, nil
}
