package figuredata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	"github.com/louisbranch/habbohub/internal/platform/timeouts"
)

// maxDocumentSize bounds a downloaded figuredata document.
const maxDocumentSize = 32 << 20

// userAgent is sent with downloads; some hotels reject requests without one.
const userAgent = "habbohub-figuredata/1.0 (+https://github.com/louisbranch/habbohub)"

// HotelURL returns the figuredata URL of the hotel served at
// www.habbo.<domain>, e.g. "com.br".
func HotelURL(domain string) string {
	domain = strings.Trim(strings.TrimSpace(domain), ".")
	return "https://www.habbo." + domain + "/gamedata/figuredata/1"
}

// Loader reads figuredata from a local path or an http(s) URL.
type Loader struct {
	// Client performs downloads. Nil uses a client limited to
	// timeouts.FiguredataFetch.
	Client  *http.Client
	Options []Option
}

// Load reads a catalog from source with a default Loader.
func Load(ctx context.Context, source string, opts ...Option) (*catalog.Catalog, error) {
	return Loader{Options: opts}.Load(ctx, source)
}

// Load reads and builds the catalog at source.
func (l Loader) Load(ctx context.Context, source string) (*catalog.Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New("figuredata source is required")
	}
	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = l.fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load figuredata %s: %w", source, err)
	}
	return Parse(data, l.Options...)
}

// LoadFirst tries sources in order and returns the first catalog that loads.
// The error of every failed source is joined when none succeeds.
func (l Loader) LoadFirst(ctx context.Context, sources ...string) (*catalog.Catalog, string, error) {
	var errs []error
	for _, source := range sources {
		cat, err := l.Load(ctx, source)
		if err == nil {
			return cat, source, nil
		}
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, "", errors.New("no figuredata sources configured")
	}
	return nil, "", errors.Join(errs...)
}

func (l Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: timeouts.FiguredataFetch}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/xml, application/xml, application/json, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
