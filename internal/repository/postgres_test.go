package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// Runs against a real database when TEST_DATABASE_URL is set.
func newTestRepository(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	repo, err := NewPostgresRepository(dsn, 2, 1)
	if err != nil {
		t.Fatalf("NewPostgresRepository() error = %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return repo
}

func deleteSession(t *testing.T, repo *PostgresRepository, sessionID string) {
	t.Helper()
	if _, err := repo.db.Exec(`DELETE FROM search_history WHERE session_id = $1`, sessionID); err != nil {
		t.Errorf("cleanup failed: %v", err)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	session := uuid.NewString()
	t.Cleanup(func() { deleteSession(t, repo, session) })

	last, err := repo.LastCity(ctx, session)
	if err != nil {
		t.Fatalf("LastCity() error = %v", err)
	}
	if last != "" {
		t.Fatalf("expected no last city for a fresh session, got %q", last)
	}

	for _, city := range []string{"Vitebsk, Belarus", "Minsk, Belarus", "Vitebsk, Belarus"} {
		if err := repo.AddSearch(ctx, session, city); err != nil {
			t.Fatalf("AddSearch(%q) error = %v", city, err)
		}
	}

	last, err = repo.LastCity(ctx, session)
	if err != nil {
		t.Fatalf("LastCity() error = %v", err)
	}
	if last != "Vitebsk, Belarus" {
		t.Errorf("LastCity() = %q", last)
	}

	counts, err := repo.CityCounts(ctx, session)
	if err != nil {
		t.Fatalf("CityCounts() error = %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 cities, got %+v", counts)
	}
	if counts[0].City != "Vitebsk, Belarus" || counts[0].Count != 2 {
		t.Errorf("unexpected first row %+v", counts[0])
	}
	if counts[1].City != "Minsk, Belarus" || counts[1].Count != 1 {
		t.Errorf("unexpected second row %+v", counts[1])
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	found := false
	for _, row := range stats {
		if row.City == "Minsk, Belarus" && row.Count >= 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("Stats() missing Minsk: %+v", stats)
	}
}
