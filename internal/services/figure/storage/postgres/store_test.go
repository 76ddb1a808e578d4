package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/storagetest"
)

// testDSNEnv names the database used by these tests. They are skipped when it
// is unset.
const testDSNEnv = "HABBOHUB_TEST_POSTGRES_DSN"

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open(context.Background(), " ", Options{}); err == nil {
		t.Fatal("expected empty dsn error")
	}
}

func TestSearchPathOption(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "postgres://u:p@localhost/db", want: "?search_path=looks"},
		{dsn: "postgres://u:p@localhost/db?sslmode=disable", want: "&search_path=looks"},
		{dsn: "host=localhost dbname=db", want: " search_path=looks"},
	}
	for _, tt := range tests {
		if got := searchPathOption(tt.dsn, "looks"); got != tt.want {
			t.Fatalf("searchPathOption(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	err := describe(&pq.Error{Code: "23514", Message: "check violation"})
	if !strings.Contains(err.Error(), "integrity_constraint_violation") {
		t.Fatalf("describe = %q", err)
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		t.Fatal("describe should keep the pq error in the chain")
	}
	plain := errors.New("boom")
	if describe(plain) != plain {
		t.Fatal("describe should pass through other errors")
	}
}

func TestFigureStore(t *testing.T) {
	dsn := os.Getenv(testDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDSNEnv)
	}

	storagetest.RunFigureStoreTests(t, func(t *testing.T) storage.FigureStore {
		schema := fmt.Sprintf("habbohub_test_%d", time.Now().UnixNano())
		store, err := Open(context.Background(), dsn, Options{Schema: schema, MaxOpenConns: 2})
		if err != nil {
			t.Fatalf("open store: %v", err)
		}
		t.Cleanup(func() {
			_, _ = store.sqlDB.Exec("DROP SCHEMA IF EXISTS " + pq.QuoteIdentifier(schema) + " CASCADE")
			_ = store.Close()
		})
		return store
	})
}
