package catalog

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// Swatch describes one color of a palette.
type Swatch struct {
	ID ColorID
	// Value is the display color as "#RRGGBB".
	Value string
	// Club swatches are reserved for premium accounts.
	Club       bool
	Selectable bool
}

// Palette is an ordered set of swatches shared by one or more families.
type Palette struct {
	id       int
	swatches []Swatch
	index    map[ColorID]int
}

func newPalette(in PaletteInput) (Palette, error) {
	p := Palette{
		id:       in.ID,
		swatches: make([]Swatch, 0, len(in.Swatches)),
		index:    make(map[ColorID]int, len(in.Swatches)),
	}
	for _, s := range in.Swatches {
		id := ColorID(s.ID)
		meta := map[string]string{apperrors.MetaColorID: strconv.Itoa(s.ID)}
		if id <= NoColor {
			return Palette{}, malformed(fmt.Sprintf("palette %d declares color id %d", in.ID, s.ID), meta)
		}
		if _, dup := p.index[id]; dup {
			return Palette{}, malformed(fmt.Sprintf("palette %d declares color %d twice", in.ID, s.ID), meta)
		}
		p.index[id] = len(p.swatches)
		p.swatches = append(p.swatches, Swatch{
			ID:         id,
			Value:      normalizeHex(s.Value),
			Club:       s.Club,
			Selectable: s.Selectable,
		})
	}
	return p, nil
}

// ID returns the palette identifier from the catalog document.
func (p Palette) ID() int {
	return p.id
}

// Swatches returns the palette colors in catalog order.
func (p Palette) Swatches() []Swatch {
	out := make([]Swatch, len(p.swatches))
	copy(out, p.swatches)
	return out
}

// Swatch returns the swatch for color.
func (p Palette) Swatch(color ColorID) (Swatch, bool) {
	idx, ok := p.index[color]
	if !ok {
		return Swatch{}, false
	}
	return p.swatches[idx], true
}

// Contains reports whether the palette declares color.
func (p Palette) Contains(color ColorID) bool {
	_, ok := p.index[color]
	return ok
}

func normalizeHex(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return "#" + strings.ToUpper(strings.TrimPrefix(value, "#"))
}
