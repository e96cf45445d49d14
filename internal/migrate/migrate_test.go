package migrate

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "sql/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("no embedded migrations")
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range names {
		var pair string
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			pair = strings.TrimSuffix(n, ".up.sql") + ".down.sql"
		case strings.HasSuffix(n, ".down.sql"):
			pair = strings.TrimSuffix(n, ".down.sql") + ".up.sql"
		default:
			t.Fatalf("unexpected migration file %s", n)
		}
		if !seen[pair] {
			t.Fatalf("%s has no counterpart %s", n, pair)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	for i := 0; i < 2; i++ {
		if err := Apply(ctx, pool, nil); err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
	}
	var n int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM information_schema.tables WHERE table_name IN ('products', 'categories', 'cart_storage')`).Scan(&n); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 tables, got %d", n)
	}
}
