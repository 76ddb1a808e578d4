// Package postgres provides a PostgreSQL-backed figure storage
// implementation.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/louisbranch/habbohub/internal/platform/storage/migrate"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/postgres/migrations"
)

// Store persists saved figures in PostgreSQL.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Options tunes Open.
type Options struct {
	// Schema, when set, is created if missing and used as the search path
	// for every connection.
	Schema       string
	MaxOpenConns int
}

// Open connects to dsn and applies embedded migrations.
func Open(ctx context.Context, dsn string, opts Options) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	schema := strings.TrimSpace(opts.Schema)
	if schema != "" {
		connector, err := pq.NewConnector(dsn + searchPathOption(dsn, schema))
		if err != nil {
			return nil, fmt.Errorf("open postgres db: %w", err)
		}
		return open(ctx, sql.OpenDB(connector), schema, opts)
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	return open(ctx, sqlDB, "", opts)
}

func open(ctx context.Context, sqlDB *sql.DB, schema string, opts Options) (*Store, error) {
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	if schema != "" {
		if _, err := sqlDB.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	if err := migrate.Apply(ctx, sqlDB, migrate.Postgres, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// searchPathOption appends a search_path runtime parameter to dsn, which may
// be a URL or a key=value connection string.
func searchPathOption(dsn, schema string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return sep + "search_path=" + schema
	}
	return " search_path=" + schema
}

// Close closes the database handle.
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
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (owner_id) DO UPDATE SET
		   hotel = EXCLUDED.hotel,
		   figure = EXCLUDED.figure,
		   gender = EXCLUDED.gender,
		   updated_at = EXCLUDED.updated_at`,
		record.OwnerID,
		record.Hotel,
		record.Figure,
		record.Gender,
		storage.ToMillis(record.CreatedAt),
		storage.ToMillis(record.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put figure: %w", describe(err))
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
		  WHERE owner_id = $1`,
		ownerID,
	)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.FigureRecord{}, storage.ErrNotFound
		}
		return storage.FigureRecord{}, fmt.Errorf("get figure: %w", describe(err))
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
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM figures WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("delete figure: %w", describe(err))
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
		  WHERE owner_id > $1
		  ORDER BY owner_id ASC
		  LIMIT $2`,
		pageToken,
		pageSize+1,
	)
	if err != nil {
		return storage.FigureRecordPage{}, fmt.Errorf("list figures: %w", describe(err))
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
		return storage.FigureRecordPage{}, fmt.Errorf("list figures: %w", describe(err))
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

// describe adds the SQLSTATE class name to server errors.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Class().Name(), pqErr.Code, err)
	}
	return err
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
