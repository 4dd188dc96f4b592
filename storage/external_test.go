package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"career-guide/errors"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// These run only against real servers.

func TestPostgresAdapter(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(CollectionsTable); err != nil {
		t.Fatalf("schema: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM collections WHERE name = 'test_records'`) })

	exerciseAdapter(t, NewPostgresAdapter(db))
}

func TestRedisAdapter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	t.Cleanup(func() { client.Del(context.Background(), "careerguide-test:test_records") })

	exerciseAdapter(t, NewRedisAdapter(client, "careerguide-test:"))
}

func exerciseAdapter(t *testing.T, a Adapter) {
	t.Helper()
	ctx := context.Background()

	if _, err := a.Load(ctx, "test_records"); !errors.IsKind(err, errors.NotFound) {
		t.Fatalf("expected NotFound before first write, got %v", err)
	}
	if err := Write(ctx, a, "test_records", []record{{ID: "1", Name: "x"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := Read[record](ctx, a, "test_records")
	if len(got) != 1 || got[0].Name != "x" {
		t.Fatalf("unexpected read: %#v", got)
	}
}
