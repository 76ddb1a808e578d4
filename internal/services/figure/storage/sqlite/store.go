// Package sqlite provides a SQLite-backed figure storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/habbohub/internal/platform/storage/migrate"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists saved figures in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite figure store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate.Apply(ctx, sqlDB, migrate.SQLite, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// PutFigure inserts or replaces one figure record.
func (s *Store) PutFigure(ctx context.Context, record storage.FigureRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	record, err := storage.Normalize(record, s.now())
	if err != nil {
		return err
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO figures (owner_id, hotel, figure, gender, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id) DO UPDATE SET
		   hotel = excluded.hotel,
		   figure = excluded.figure,
		   gender = excluded.gender,
		   updated_at = excluded.updated_at`,
		record.OwnerID,
		record.Hotel,
		record.Figure,
		record.Gender,
		storage.ToMillis(record.CreatedAt),
		storage.ToMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put figure: %w", err)
	}
	return nil
}

// GetFigure returns the figure saved for ownerID.
func (s *Store) GetFigure(ctx context.Context, ownerID string) (storage.FigureRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.FigureRecord{}, err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return storage.FigureRecord{}, fmt.Errorf("owner id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT owner_id, hotel, figure, gender, created_at, updated_at
		   FROM figures
		  WHERE owner_id = ?`,
		ownerID,
	)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.FigureRecord{}, storage.ErrNotFound
		}
		return storage.FigureRecord{}, fmt.Errorf("get figure: %w", err)
	}
	return record, nil
}

// DeleteFigure removes the figure saved for ownerID.
func (s *Store) DeleteFigure(ctx context.Context, ownerID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return fmt.Errorf("owner id is required")
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM figures WHERE owner_id = ?`, ownerID)
	if err != nil {
		return fmt.Errorf("delete figure: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete figure: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListFigures returns one page of figure records ordered by owner ID.
func (s *Store) ListFigures(ctx context.Context, pageSize int, pageToken string) (storage.FigureRecordPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.FigureRecordPage{}, err
	}
	pageToken, err := storage.ValidatePage(pageSize, pageToken)
	if err != nil {
		return storage.FigureRecordPage{}, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT owner_id, hotel, figure, gender, created_at, updated_at
		   FROM figures
		  WHERE owner_id > ?
		  ORDER BY owner_id ASC
		  LIMIT ?`,
		pageToken,
		pageSize+1,
	)
	if err != nil {
		return storage.FigureRecordPage{}, fmt.Errorf("list figures: %w", err)
	}
	defer rows.Close()

	page := storage.FigureRecordPage{Records: make([]storage.FigureRecord, 0, pageSize)}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return storage.FigureRecordPage{}, fmt.Errorf("list figures: %w", err)
		}
		page.Records = append(page.Records, record)
	}
	if err := rows.Err(); err != nil {
		return storage.FigureRecordPage{}, fmt.Errorf("list figures: %w", err)
	}
	if len(page.Records) > pageSize {
		page.NextPageToken = page.Records[pageSize-1].OwnerID
		page.Records = page.Records[:pageSize]
	}
	return page, nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (storage.FigureRecord, error) {
	var (
		record    storage.FigureRecord
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(
		&record.OwnerID,
		&record.Hotel,
		&record.Figure,
		&record.Gender,
		&createdAt,
		&updatedAt,
	); err != nil {
		return storage.FigureRecord{}, err
	}
	record.CreatedAt = storage.FromMillis(createdAt)
	record.UpdatedAt = storage.FromMillis(updatedAt)
	return record, nil
}

var _ storage.FigureStore = (*Store)(nil)
