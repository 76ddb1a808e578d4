package service

import (
	"context"
	"fmt"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"go.opentelemetry.io/otel/attribute"
)

// MetaSuggestion carries the closest family code on NOT_FOUND family errors.
const MetaSuggestion = "Suggestion"

// FamilySummary describes one family of the catalog.
type FamilySummary struct {
	Code      catalog.FamilyCode
	PaletteID int
	Entries   int
	Mandatory bool
}

// Families lists the catalog families in canonical order.
func (s *Service) Families(ctx context.Context) []FamilySummary {
	_, span := s.start(ctx, "Families")
	defer finish(span, nil)

	var out []FamilySummary
	for _, code := range s.catalog.Families() {
		palette, _ := s.catalog.Palette(code)
		count := len(s.catalog.Entries(code, catalog.GenderMale))
		for _, entry := range s.catalog.Entries(code, catalog.GenderFemale) {
			if entry.Gender == catalog.GenderFemale {
				count++
			}
		}
		out = append(out, FamilySummary{
			Code:      code,
			PaletteID: palette.ID(),
			Entries:   count,
			Mandatory: figure.IsMandatory(code),
		})
	}
	span.SetAttributes(attribute.Int("habbohub.families", len(out)))
	return out
}

// Entries lists the entries of family a figure of gender may wear.
func (s *Service) Entries(ctx context.Context, family, gender string) (entries []catalog.Entry, err error) {
	_, span := s.start(ctx, "Entries", attribute.String("habbohub.family", family))
	defer func() { finish(span, err) }()

	code, err := s.family(family)
	if err != nil {
		return nil, err
	}
	g, err := parseFigureGender(gender, false)
	if err != nil {
		return nil, err
	}
	return s.catalog.Entries(code, g), nil
}

// Palette returns the palette of family.
func (s *Service) Palette(ctx context.Context, family string) (palette catalog.Palette, err error) {
	_, span := s.start(ctx, "Palette", attribute.String("habbohub.family", family))
	defer func() { finish(span, err) }()

	code, err := s.family(family)
	if err != nil {
		return catalog.Palette{}, err
	}
	palette, _ = s.catalog.Palette(code)
	return palette, nil
}

func (s *Service) family(raw string) (catalog.FamilyCode, error) {
	code := catalog.FamilyCode(raw)
	if s.catalog.HasFamily(code) {
		return code, nil
	}
	meta := map[string]string{apperrors.MetaFamily: raw}
	message := fmt.Sprintf("family %q is not in the catalog", raw)
	if suggestions := s.catalog.SuggestFamilies(raw); len(suggestions) > 0 {
		meta[MetaSuggestion] = string(suggestions[0])
		message += fmt.Sprintf(", did you mean %q?", suggestions[0])
	}
	return "", apperrors.WithMetadata(apperrors.CodeNotFound, message, meta)
}
