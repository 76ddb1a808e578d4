// Package storagetest holds behavior tests shared by every FigureStore
// implementation.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/louisbranch/habbohub/internal/services/figure/storage"
)

// RunFigureStoreTests exercises store against the FigureStore contract.
// newStore must return an empty store.
func RunFigureStoreTests(t *testing.T, newStore func(t *testing.T) storage.FigureStore) {
	t.Run("put and get", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		created := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

		if err := store.PutFigure(ctx, storage.FigureRecord{
			OwnerID:   "owner-1",
			Hotel:     "com.br",
			Figure:    "hr-100-61.hd-180-1.ch-210-66.lg-270-82",
			Gender:    "M",
			CreatedAt: created,
			UpdatedAt: created,
		}); err != nil {
			t.Fatalf("put figure: %v", err)
		}

		got, err := store.GetFigure(ctx, "owner-1")
		if err != nil {
			t.Fatalf("get figure: %v", err)
		}
		if got.Figure != "hr-100-61.hd-180-1.ch-210-66.lg-270-82" || got.Hotel != "com.br" || got.Gender != "M" {
			t.Fatalf("get figure = %+v", got)
		}
		if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(created) {
			t.Fatalf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
		}
	})

	t.Run("put replaces and keeps created at", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		created := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
		updated := created.Add(time.Hour)

		first := storage.FigureRecord{OwnerID: "owner-1", Figure: "hr-100-1", Gender: "M", CreatedAt: created, UpdatedAt: created}
		if err := store.PutFigure(ctx, first); err != nil {
			t.Fatalf("put figure: %v", err)
		}
		second := storage.FigureRecord{OwnerID: "owner-1", Figure: "hr-500-45", Gender: "F", CreatedAt: updated, UpdatedAt: updated}
		if err := store.PutFigure(ctx, second); err != nil {
			t.Fatalf("replace figure: %v", err)
		}

		got, err := store.GetFigure(ctx, "owner-1")
		if err != nil {
			t.Fatalf("get figure: %v", err)
		}
		if got.Figure != "hr-500-45" || got.Gender != "F" {
			t.Fatalf("figure not replaced: %+v", got)
		}
		if !got.CreatedAt.Equal(created) || !got.UpdatedAt.Equal(updated) {
			t.Fatalf("timestamps = %v / %v, want %v / %v", got.CreatedAt, got.UpdatedAt, created, updated)
		}
	})

	t.Run("missing owner", func(t *testing.T) {
		store := newStore(t)
		if _, err := store.GetFigure(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get missing error = %v, want %v", err, storage.ErrNotFound)
		}
		if err := store.DeleteFigure(context.Background(), "nobody"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("delete missing error = %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("rejects invalid records", func(t *testing.T) {
		store := newStore(t)
		if err := store.PutFigure(context.Background(), storage.FigureRecord{OwnerID: "o", Figure: "hr-100", Gender: "U"}); err == nil {
			t.Fatal("expected invalid gender error")
		}
		if _, err := store.GetFigure(context.Background(), " "); err == nil {
			t.Fatal("expected owner id error")
		}
	})

	t.Run("delete", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		if err := store.PutFigure(ctx, storage.FigureRecord{OwnerID: "owner-1", Figure: "hr-100-1", Gender: "M"}); err != nil {
			t.Fatalf("put figure: %v", err)
		}
		if err := store.DeleteFigure(ctx, "owner-1"); err != nil {
			t.Fatalf("delete figure: %v", err)
		}
		if _, err := store.GetFigure(ctx, "owner-1"); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("get after delete error = %v", err)
		}
	})

	t.Run("list paginates", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		for i := 1; i <= 5; i++ {
			if err := store.PutFigure(ctx, storage.FigureRecord{
				OwnerID: fmt.Sprintf("owner-%d", i),
				Figure:  "hr-100-1",
				Gender:  "M",
			}); err != nil {
				t.Fatalf("put figure %d: %v", i, err)
			}
		}

		var owners []string
		token := ""
		for pages := 0; ; pages++ {
			if pages > 3 {
				t.Fatal("pagination did not terminate")
			}
			page, err := store.ListFigures(ctx, 2, token)
			if err != nil {
				t.Fatalf("list figures: %v", err)
			}
			for _, record := range page.Records {
				owners = append(owners, record.OwnerID)
			}
			if page.NextPageToken == "" {
				break
			}
			token = page.NextPageToken
		}

		want := []string{"owner-1", "owner-2", "owner-3", "owner-4", "owner-5"}
		if fmt.Sprint(owners) != fmt.Sprint(want) {
			t.Fatalf("owners = %v, want %v", owners, want)
		}
		if _, err := store.ListFigures(ctx, 0, ""); err == nil {
			t.Fatal("expected page size error")
		}
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		store := newStore(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := store.GetFigure(ctx, "owner-1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("get with cancelled context error = %v", err)
		}
	})
}
