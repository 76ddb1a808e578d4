package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/platform/pagination"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"go.opentelemetry.io/otel/attribute"
)

var looksPageSize = pagination.PageSizeConfig{Default: 50, Max: storage.MaxPageSize}

// SaveRequest stores the look of an owner.
type SaveRequest struct {
	OwnerID string
	Figure  string
	Gender  string
	Premium bool
}

// LooksPage is one page of saved looks.
type LooksPage struct {
	Records       []storage.FigureRecord
	NextPageToken string
}

// SaveFigure validates req.Figure and stores its canonical form. Figures
// with issues or without a mandatory family are rejected with
// INVALID_FIGURE.
func (s *Service) SaveFigure(ctx context.Context, req SaveRequest) (record storage.FigureRecord, err error) {
	ctx, span := s.start(ctx, "SaveFigure", attribute.String("habbohub.owner_id", req.OwnerID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return storage.FigureRecord{}, err
	}
	ownerID, err := requireOwner(req.OwnerID)
	if err != nil {
		return storage.FigureRecord{}, err
	}
	f, err := s.decode(req.Figure, req.Gender)
	if err != nil {
		return storage.FigureRecord{}, err
	}
	if issues := figure.Validate(f, s.catalog, req.Premium); len(issues) > 0 {
		first := issues[0]
		return storage.FigureRecord{}, invalidFigure(
			fmt.Sprintf("%s on %s-%d", first.Kind, first.Family, first.PartID),
			first.Err(),
		)
	}
	for _, family := range s.catalog.Families() {
		if figure.IsMandatory(family) && !f.Has(family) {
			return storage.FigureRecord{}, invalidFigure(fmt.Sprintf("missing %s", family), nil)
		}
	}

	record = storage.FigureRecord{
		OwnerID:   ownerID,
		Hotel:     s.hotel,
		Figure:    figure.Encode(f),
		Gender:    string(f.Gender()),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.PutFigure(ctx, record); err != nil {
		return storage.FigureRecord{}, fmt.Errorf("put figure: %w", err)
	}
	return s.store.GetFigure(ctx, ownerID)
}

// GetFigure returns the saved look of ownerID.
func (s *Service) GetFigure(ctx context.Context, ownerID string) (record storage.FigureRecord, err error) {
	ctx, span := s.start(ctx, "GetFigure", attribute.String("habbohub.owner_id", ownerID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return storage.FigureRecord{}, err
	}
	ownerID, err = requireOwner(ownerID)
	if err != nil {
		return storage.FigureRecord{}, err
	}
	record, err = s.store.GetFigure(ctx, ownerID)
	if err != nil {
		return storage.FigureRecord{}, lookError(err, ownerID)
	}
	return record, nil
}

// DeleteFigure removes the saved look of ownerID.
func (s *Service) DeleteFigure(ctx context.Context, ownerID string) (err error) {
	ctx, span := s.start(ctx, "DeleteFigure", attribute.String("habbohub.owner_id", ownerID))
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return err
	}
	ownerID, err = requireOwner(ownerID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteFigure(ctx, ownerID); err != nil {
		return lookError(err, ownerID)
	}
	return nil
}

// ListFigures pages through saved looks ordered by owner ID.
func (s *Service) ListFigures(ctx context.Context, pageSize int, pageToken string) (page LooksPage, err error) {
	ctx, span := s.start(ctx, "ListFigures")
	defer func() { finish(span, err) }()

	if err := s.ready(); err != nil {
		return LooksPage{}, err
	}
	cursor, err := pagination.DecodeToken(pageToken)
	if err != nil {
		return LooksPage{}, invalidArgument(err.Error())
	}
	size := pagination.ClampPageSize(pageSize, looksPageSize)
	result, err := s.store.ListFigures(ctx, size, cursor)
	if err != nil {
		return LooksPage{}, fmt.Errorf("list figures: %w", err)
	}
	span.SetAttributes(attribute.Int("habbohub.records", len(result.Records)))
	return LooksPage{
		Records:       result.Records,
		NextPageToken: pagination.EncodeToken(result.NextPageToken),
	}, nil
}

func (s *Service) ready() error {
	if s.store == nil {
		return errors.New("figure storage is not configured")
	}
	return nil
}

func requireOwner(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return "", invalidArgument("owner id is required")
	}
	return ownerID, nil
}

func invalidFigure(reason string, cause error) error {
	return &apperrors.Error{
		Code:     apperrors.CodeInvalidFigure,
		Message:  "invalid figure: " + reason,
		Metadata: map[string]string{apperrors.MetaReason: reason},
		Cause:    cause,
	}
}

func lookError(err error, ownerID string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.WithMetadata(
			apperrors.CodeNotFound,
			fmt.Sprintf("no figure saved for owner %q", ownerID),
			map[string]string{"OwnerID": ownerID},
		)
	}
	return err
}
