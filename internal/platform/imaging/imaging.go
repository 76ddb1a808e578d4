// Package imaging builds avatar image URLs for the hotel imaging service.
// The service renders a figure string server side; habbohub only links to it.
package imaging

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the imaging endpoint of the international hotel.
const DefaultBaseURL = "https://www.habbo.com/habbo-imaging/avatarimage"

// Rendering defaults used when a Request leaves a field empty.
const (
	DefaultDirection = 2
	DefaultAction    = "std"
	DefaultGesture   = "std"
	DefaultSize      = "m"
)

var (
	// ErrFigureRequired is returned when a request has no figure string.
	ErrFigureRequired = errors.New("figure is required")
	// ErrInvalidDirection is returned for directions outside 0..7.
	ErrInvalidDirection = errors.New("direction must be between 0 and 7")
	// ErrInvalidSize is returned for sizes other than s, m, l.
	ErrInvalidSize = errors.New("size must be s, m or l")
)

// Request describes one avatar rendering.
type Request struct {
	Figure string
	// Gender is "M" or "F"; empty omits the parameter.
	Gender string
	// Direction and HeadDirection range over the eight compass points, 0..7.
	// Nil selects DefaultDirection.
	Direction     *int
	HeadDirection *int
	Action        string
	Gesture       string
	Size          string
	HeadOnly      bool
}

// Builder resolves image URLs against one imaging endpoint.
type Builder struct {
	base string
}

// New returns a Builder for base. An empty base selects DefaultBaseURL.
func New(base string) Builder {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	return Builder{base: strings.TrimRight(base, "?")}
}

// HotelBaseURL returns the imaging endpoint of the hotel served at
// www.habbo.<domain>, e.g. "com.br".
func HotelBaseURL(domain string) string {
	domain = strings.Trim(strings.TrimSpace(domain), ".")
	if domain == "" {
		return DefaultBaseURL
	}
	return "https://www.habbo." + domain + "/habbo-imaging/avatarimage"
}

// Base returns the endpoint the builder links to.
func (b Builder) Base() string {
	return b.base
}

// URL returns the image URL for req. Query parameters are written in a fixed
// order so equal requests yield byte-identical URLs.
func (b Builder) URL(req Request) (string, error) {
	figure := strings.TrimSpace(req.Figure)
	if figure == "" {
		return "", ErrFigureRequired
	}
	direction, err := resolveDirection(req.Direction)
	if err != nil {
		return "", err
	}
	headDirection, err := resolveDirection(req.HeadDirection)
	if err != nil {
		return "", fmt.Errorf("head %w", err)
	}
	size := strings.ToLower(orDefault(req.Size, DefaultSize))
	if size != "s" && size != "m" && size != "l" {
		return "", ErrInvalidSize
	}

	var q strings.Builder
	param := func(key, value string) {
		if q.Len() > 0 {
			q.WriteByte('&')
		}
		q.WriteString(key)
		q.WriteByte('=')
		q.WriteString(url.QueryEscape(value))
	}
	param("figure", figure)
	if gender := strings.ToUpper(strings.TrimSpace(req.Gender)); gender != "" {
		param("gender", gender)
	}
	param("direction", strconv.Itoa(direction))
	param("head_direction", strconv.Itoa(headDirection))
	param("action", orDefault(req.Action, DefaultAction))
	param("gesture", orDefault(req.Gesture, DefaultGesture))
	param("size", size)
	if req.HeadOnly {
		param("headonly", "1")
	}

	sep := "?"
	if strings.Contains(b.base, "?") {
		sep = "&"
	}
	return b.base + sep + q.String(), nil
}

// Direction returns a pointer to d for use in Request.
func Direction(d int) *int {
	return &d
}

func resolveDirection(d *int) (int, error) {
	if d == nil {
		return DefaultDirection, nil
	}
	if *d < 0 || *d > 7 {
		return 0, ErrInvalidDirection
	}
	return *d, nil
}

func orDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
