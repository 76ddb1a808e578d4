// Package service implements the figure service use cases on top of the
// figure engine: catalog browsing, figure decoding, editing and validation,
// image links and saved looks.
//
// Every use case runs inside its own trace span and reports failures as
// internal/platform/errors values so transports can localize them.
package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"github.com/louisbranch/habbohub/internal/platform/otel"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/habbohub/internal/services/figure/service"

// Config wires a Service.
type Config struct {
	Catalog *catalog.Catalog
	// Store persists saved looks. Nil disables the look use cases.
	Store   storage.FigureStore
	Imaging imaging.Builder
	// Hotel is recorded on saved looks, e.g. "com.br".
	Hotel string
	// Seed seeds random figures when a request brings none. Nil uses the
	// current time.
	Seed func() int64
	Now  func() time.Time
}

// Service exposes the figure use cases.
type Service struct {
	catalog  *catalog.Catalog
	composer *figure.Composer
	store    storage.FigureStore
	imaging  imaging.Builder
	hotel    string
	seed     func() int64
	now      func() time.Time
	tracer   trace.Tracer

	seedMu sync.Mutex
}

// New validates cfg and returns a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	s := &Service{
		catalog:  cfg.Catalog,
		composer: figure.NewComposer(cfg.Catalog),
		store:    cfg.Store,
		imaging:  cfg.Imaging,
		hotel:    strings.TrimSpace(cfg.Hotel),
		seed:     cfg.Seed,
		now:      cfg.Now,
		tracer:   otel.Tracer(tracerName),
	}
	if s.imaging.Base() == "" {
		s.imaging = imaging.New("")
	}
	if s.seed == nil {
		s.seed = func() int64 { return time.Now().UnixNano() }
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Catalog returns the catalog the service validates against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "figure."+name, trace.WithAttributes(attrs...))
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		span.SetAttributes(attribute.String("habbohub.error_code", string(apperrors.GetCode(err))))
	}
	span.End()
}

func (s *Service) rng(seed *int64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewSource(*seed))
	}
	s.seedMu.Lock()
	defer s.seedMu.Unlock()
	return rand.New(rand.NewSource(s.seed()))
}

// parseFigureGender parses a figure gender. Empty input is allowed when
// optional is set and yields "".
func parseFigureGender(raw string, optional bool) (catalog.Gender, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" && optional {
		return "", nil
	}
	gender, ok := catalog.ParseGender(raw)
	if !ok || gender == catalog.GenderUnisex {
		return "", apperrors.WithMetadata(
			apperrors.CodeInvalidGender,
			"figure gender must be M or F, got "+raw,
			map[string]string{apperrors.MetaGender: raw},
		)
	}
	return gender, nil
}

func invalidArgument(reason string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidArgument,
		reason,
		map[string]string{apperrors.MetaReason: reason},
	)
}

func (s *Service) decode(raw, gender string) (figure.Figure, error) {
	g, err := parseFigureGender(gender, true)
	if err != nil {
		return figure.Figure{}, err
	}
	var opts []figure.DecodeOption
	if g != "" {
		opts = append(opts, figure.WithGender(g))
	}
	return figure.Decode(raw, s.catalog, opts...), nil
}
