// Package storage defines persistence contracts for saved figures.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound indicates a requested figure record is missing.
var ErrNotFound = errors.New("record not found")

// MaxPageSize caps ListFigures pages.
const MaxPageSize = 200

// FigureRecord is the saved look of one owner.
type FigureRecord struct {
	OwnerID string
	// Hotel is the hotel domain the figure was composed for, e.g. "com.br".
	Hotel string
	// Figure is the canonical figure string.
	Figure    string
	Gender    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FigureRecordPage stores one page of figure records ordered by owner ID.
type FigureRecordPage struct {
	Records       []FigureRecord
	NextPageToken string
}

// FigureStore persists saved figures.
type FigureStore interface {
	// PutFigure inserts or replaces the owner's figure. CreatedAt is kept from
	// the first save.
	PutFigure(ctx context.Context, record FigureRecord) error
	GetFigure(ctx context.Context, ownerID string) (FigureRecord, error)
	DeleteFigure(ctx context.Context, ownerID string) error
	ListFigures(ctx context.Context, pageSize int, pageToken string) (FigureRecordPage, error)
}

// Normalize trims record fields, checks required values and fills missing
// timestamps from now.
func Normalize(record FigureRecord, now time.Time) (FigureRecord, error) {
	record.OwnerID = strings.TrimSpace(record.OwnerID)
	record.Hotel = strings.ToLower(strings.TrimSpace(record.Hotel))
	record.Figure = strings.TrimSpace(record.Figure)
	record.Gender = strings.ToUpper(strings.TrimSpace(record.Gender))
	if record.OwnerID == "" {
		return FigureRecord{}, fmt.Errorf("owner id is required")
	}
	if record.Figure == "" {
		return FigureRecord{}, fmt.Errorf("figure is required")
	}
	if record.Gender != "M" && record.Gender != "F" {
		return FigureRecord{}, fmt.Errorf("gender must be M or F")
	}

	createdAt := record.CreatedAt.UTC()
	updatedAt := record.UpdatedAt.UTC()
	if createdAt.IsZero() && updatedAt.IsZero() {
		createdAt = now.UTC()
		updatedAt = createdAt
	} else {
		if createdAt.IsZero() {
			createdAt = updatedAt
		}
		if updatedAt.IsZero() {
			updatedAt = createdAt
		}
	}
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt
	return record, nil
}

// ValidatePage checks ListFigures arguments and returns the trimmed token.
func ValidatePage(pageSize int, pageToken string) (string, error) {
	if pageSize <= 0 {
		return "", fmt.Errorf("page size must be greater than zero")
	}
	if pageSize > MaxPageSize {
		return "", fmt.Errorf("page size must be at most %d", MaxPageSize)
	}
	return strings.TrimSpace(pageToken), nil
}

// ToMillis converts t to the millisecond timestamps stored by the SQL stores.
func ToMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// FromMillis converts a stored millisecond timestamp back to UTC time.
func FromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
