package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"go.opentelemetry.io/otel/attribute"
)

// ValidateRequest asks for the issues of a figure string.
type ValidateRequest struct {
	Figure string
	// Gender overrides the gender inferred from the figure.
	Gender  string
	Premium bool
	// Repair drops every part with an issue from the returned figure.
	Repair bool
}

// ValidateResult reports a validation.
type ValidateResult struct {
	// Figure is the decoded figure, or the repaired one when requested.
	Figure figure.Figure
	Issues []figure.Issue
}

// Valid reports whether the validated figure had no issue.
func (r ValidateResult) Valid() bool {
	return len(r.Issues) == 0
}

// OpKind names one edit operation.
type OpKind string

const (
	OpSetPart           OpKind = "set_part"
	OpSetColor          OpKind = "set_color"
	OpSetSecondaryColor OpKind = "set_secondary_color"
	OpRemovePart        OpKind = "remove_part"
	OpReset             OpKind = "reset"
)

// Op is one edit operation. Color is the color set by set_color and
// set_secondary_color; set_part reads both Color and SecondaryColor.
type Op struct {
	Kind           OpKind
	Family         string
	PartID         int
	Color          int
	SecondaryColor int
}

// EditRequest applies ops in order to a figure string.
type EditRequest struct {
	Figure  string
	Gender  string
	Premium bool
	Ops     []Op
}

// EditResult is the outcome of an edit. When an op fails, Figure is the
// figure before that op and Applied counts the ops that succeeded.
type EditResult struct {
	Figure  figure.Figure
	Applied int
}

// MetaOp carries the index of the failing op on edit errors.
const MetaOp = "Op"

// Decode parses raw into a canonical figure. Gender is optional and
// overrides the inferred gender.
func (s *Service) Decode(ctx context.Context, raw, gender string) (f figure.Figure, err error) {
	_, span := s.start(ctx, "Decode")
	defer func() { finish(span, err) }()

	f, err = s.decode(raw, gender)
	if err != nil {
		return figure.Figure{}, err
	}
	span.SetAttributes(attribute.Int("habbohub.parts", f.Len()))
	return f, nil
}

// Validate decodes req.Figure and reports its issues.
func (s *Service) Validate(ctx context.Context, req ValidateRequest) (result ValidateResult, err error) {
	_, span := s.start(ctx, "Validate", attribute.Bool("habbohub.premium", req.Premium))
	defer func() { finish(span, err) }()

	f, err := s.decode(req.Figure, req.Gender)
	if err != nil {
		return ValidateResult{}, err
	}
	issues := figure.Validate(f, s.catalog, req.Premium)
	if req.Repair {
		f = figure.Repair(f, issues)
	}
	span.SetAttributes(attribute.Int("habbohub.issues", len(issues)))
	return ValidateResult{Figure: f, Issues: issues}, nil
}

// Default returns the starter figure for gender.
func (s *Service) Default(ctx context.Context, gender string) (f figure.Figure, err error) {
	_, span := s.start(ctx, "Default", attribute.String("habbohub.gender", gender))
	defer func() { finish(span, err) }()

	g, err := parseFigureGender(gender, false)
	if err != nil {
		return figure.Figure{}, err
	}
	return figure.DefaultFigure(g, s.catalog)
}

// Random draws a figure for gender. A nil seed draws from the service seed
// source; a given seed always yields the same figure.
func (s *Service) Random(ctx context.Context, gender string, premium bool, seed *int64) (f figure.Figure, err error) {
	_, span := s.start(ctx, "Random",
		attribute.String("habbohub.gender", gender),
		attribute.Bool("habbohub.premium", premium),
	)
	defer func() { finish(span, err) }()

	g, err := parseFigureGender(gender, false)
	if err != nil {
		return figure.Figure{}, err
	}
	return figure.RandomFigure(g, s.catalog, s.rng(seed), premium)
}

// Edit applies req.Ops in order. The first failing op stops the edit.
func (s *Service) Edit(ctx context.Context, req EditRequest) (result EditResult, err error) {
	_, span := s.start(ctx, "Edit", attribute.Int("habbohub.ops", len(req.Ops)))
	defer func() { finish(span, err) }()

	f, err := s.decode(req.Figure, req.Gender)
	if err != nil {
		return EditResult{}, err
	}
	for i, op := range req.Ops {
		next, err := s.apply(f, op, req.Premium)
		if err != nil {
			return EditResult{Figure: f, Applied: i}, annotateOp(err, i)
		}
		f = next
	}
	return EditResult{Figure: f, Applied: len(req.Ops)}, nil
}

func (s *Service) apply(f figure.Figure, op Op, premium bool) (figure.Figure, error) {
	family := catalog.FamilyCode(strings.TrimSpace(op.Family))
	switch OpKind(strings.ToLower(string(op.Kind))) {
	case OpSetPart:
		return s.composer.SetPart(f, figure.PartSelection{
			Family:         family,
			PartID:         catalog.PartID(op.PartID),
			Color:          catalog.ColorID(op.Color),
			SecondaryColor: catalog.ColorID(op.SecondaryColor),
			Premium:        premium,
		})
	case OpSetColor:
		return s.composer.SetColor(f, family, catalog.ColorID(op.Color), premium)
	case OpSetSecondaryColor:
		return s.composer.SetSecondaryColor(f, family, catalog.ColorID(op.Color), premium)
	case OpRemovePart:
		return s.composer.RemovePart(f, family), nil
	case OpReset:
		return s.composer.ResetAll(f), nil
	default:
		return f, invalidArgument(fmt.Sprintf("unknown op %q", op.Kind))
	}
}

// annotateOp records the failing op index on domain errors.
func annotateOp(err error, index int) error {
	code := apperrors.GetCode(err)
	if code == apperrors.CodeUnknown {
		return err
	}
	meta := make(map[string]string)
	for k, v := range apperrors.GetMetadata(err) {
		meta[k] = v
	}
	meta[MetaOp] = fmt.Sprint(index)
	return &apperrors.Error{
		Code:     code,
		Message:  fmt.Sprintf("op %d: %s", index, err.Error()),
		Metadata: meta,
		Cause:    err,
	}
}

// ImageRequest asks for the image URL of a figure.
type ImageRequest struct {
	imaging.Request
	// Canonicalize decodes the figure first so equal looks share a URL.
	Canonicalize bool
}

// ImageURL returns the imaging URL for req.
func (s *Service) ImageURL(ctx context.Context, req ImageRequest) (link string, err error) {
	_, span := s.start(ctx, "ImageURL")
	defer func() { finish(span, err) }()

	r := req.Request
	if req.Canonicalize {
		f, err := s.decode(r.Figure, r.Gender)
		if err != nil {
			return "", err
		}
		r.Figure = figure.Encode(f)
		r.Gender = string(f.Gender())
	}
	link, err = s.imaging.URL(r)
	if err != nil {
		return "", invalidArgument(err.Error())
	}
	return link, nil
}
