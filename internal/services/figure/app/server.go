// Package server composes the figure HTTP process: it loads the hotel
// catalog, opens the look store and serves the figure API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	"github.com/louisbranch/habbohub/internal/figure/figuredata"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"github.com/louisbranch/habbohub/internal/platform/timeouts"
	httpapi "github.com/louisbranch/habbohub/internal/services/figure/api/http"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
	"github.com/louisbranch/habbohub/internal/services/figure/storage"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/postgres"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/sqlite"
)

// Store drivers accepted by Config.DBDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Config defines the inputs of the figure process.
type Config struct {
	HTTPAddr string
	// CatalogSources are tried in order; the first that loads wins.
	CatalogSources []string
	// Families restricts the catalog to wearable families. Empty keeps every
	// family of the document.
	Families []string
	Hotel    string

	DBDriver       string
	DBPath         string
	PostgresDSN    string
	PostgresSchema string

	ImagingBaseURL string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the figure HTTP process.
type Server struct {
	listener        net.Listener
	httpServer      *http.Server
	store           storeCloser
	catalog         *catalog.Catalog
	shutdownTimeout time.Duration
}

type storeCloser interface {
	storage.FigureStore
	Close() error
}

// NewServer loads the catalog, opens the store and binds the listener.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = timeouts.Shutdown
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	imagingBase := strings.TrimSpace(cfg.ImagingBaseURL)
	if imagingBase == "" && strings.TrimSpace(cfg.Hotel) != "" {
		imagingBase = imaging.HotelBaseURL(cfg.Hotel)
	}
	svcConfig := service.Config{
		Catalog: cat,
		Imaging: imaging.New(imagingBase),
		Hotel:   cfg.Hotel,
	}
	if store != nil {
		svcConfig.Store = store
	}
	svc, err := service.New(svcConfig)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("init figure service: %w", err)
	}

	listener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		closeStore(store)
		return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           httpapi.NewRouter(svc),
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		store:           store,
		catalog:         cat,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Run creates the server and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := NewServer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init figure server: %w", err)
	}
	defer server.Close()

	return server.Serve(ctx)
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Catalog returns the catalog the server validates against.
func (s *Server) Catalog() *catalog.Catalog {
	return s.catalog
}

// Serve handles requests until ctx ends, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("figure server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("figure server listening on %s", s.Addr())
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the store and the listener.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	closeStore(s.store)
}

func loadCatalog(ctx context.Context, cfg Config) (*catalog.Catalog, error) {
	var opts []figuredata.Option
	if len(cfg.Families) > 0 {
		opts = append(opts, figuredata.WithFamilies(cfg.Families...))
	}
	sources := cfg.CatalogSources
	if len(sources) == 0 && strings.TrimSpace(cfg.Hotel) != "" {
		sources = []string{figuredata.HotelURL(cfg.Hotel)}
	}
	cat, source, err := figuredata.Loader{Options: opts}.LoadFirst(ctx, sources...)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	log.Printf("catalog loaded from %s with %d families", source, len(cat.Families()))
	return cat, nil
}

func openStore(ctx context.Context, cfg Config) (storeCloser, error) {
	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()

	switch strings.ToLower(strings.TrimSpace(cfg.DBDriver)) {
	case DriverNone:
		log.Printf("figure store disabled")
		return nil, nil
	case "", DriverSQLite:
		store, err := sqlite.Open(openCtx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite figure store: %w", err)
		}
		return store, nil
	case DriverPostgres:
		store, err := postgres.Open(openCtx, cfg.PostgresDSN, postgres.Options{Schema: cfg.PostgresSchema})
		if err != nil {
			return nil, fmt.Errorf("open postgres figure store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DBDriver)
	}
}

func closeStore(store storeCloser) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		log.Printf("close figure store: %v", err)
	}
}
