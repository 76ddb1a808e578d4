// Package catalog models one hotel's clothing catalog ("figuredata").
//
// A Catalog is built once from an already-parsed Input and is read-only
// afterwards, so a single instance can be shared by every edit session of a
// hotel. Construction validates the whole document: a Catalog that exists is
// internally consistent.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// FamilyCode identifies a part family such as "hr" (hair) or "ch" (shirt).
type FamilyCode string

// PartID identifies one entry within a family.
type PartID int

// ColorID identifies one swatch within a palette.
type ColorID int

// NoColor is the color of a part whose entry is not colorable. Palettes may
// never declare it.
const NoColor ColorID = 0

// Gender is the gender an entry is offered to.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderUnisex Gender = "U"
)

// ParseGender accepts the figuredata spellings of a gender.
func ParseGender(raw string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "M", "MALE":
		return GenderMale, true
	case "F", "FEMALE":
		return GenderFemale, true
	case "U", "UNISEX":
		return GenderUnisex, true
	}
	return "", false
}

// Valid reports whether g is one of the catalog genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderUnisex
}

// Allows reports whether an entry offered to g may be worn by a figure of
// the given gender. Unisex entries are compatible with every figure.
func (g Gender) Allows(figure Gender) bool {
	return g == GenderUnisex || g == figure
}

// Entry is one legal choice within a family.
type Entry struct {
	Family    FamilyCode
	PartID    PartID
	Gender    Gender
	Club      bool
	Colorable bool
	// Duotone entries accept a second color from the same legal set.
	Duotone bool
	// Colors lists the legal colors in catalog order. Empty iff !Colorable.
	Colors []ColorID
}

// DefaultColor returns the first legal color, or NoColor for entries that
// cannot be colored.
func (e Entry) DefaultColor() ColorID {
	if !e.Colorable || len(e.Colors) == 0 {
		return NoColor
	}
	return e.Colors[0]
}

// AllowsColor reports whether color is one of the entry's legal colors.
func (e Entry) AllowsColor(color ColorID) bool {
	for _, candidate := range e.Colors {
		if candidate == color {
			return true
		}
	}
	return false
}

// Catalog is the immutable, queryable view of one hotel's clothing catalog.
type Catalog struct {
	families []FamilyCode
	ranks    map[FamilyCode]int
	palettes map[FamilyCode]Palette
	entries  map[FamilyCode][]Entry
	index    map[FamilyCode]map[PartID]int
}

// New validates in and builds a Catalog from it. Every violation is reported
// as a MALFORMED_CATALOG error naming the offending family, part or color.
func New(in Input) (*Catalog, error) {
	palettes := make(map[int]Palette, len(in.Palettes))
	for _, p := range in.Palettes {
		if _, dup := palettes[p.ID]; dup {
			return nil, malformed(fmt.Sprintf("palette %d is declared twice", p.ID), nil)
		}
		palette, err := newPalette(p)
		if err != nil {
			return nil, err
		}
		palettes[p.ID] = palette
	}

	c := &Catalog{
		families: make([]FamilyCode, 0, len(in.Families)),
		ranks:    make(map[FamilyCode]int, len(in.Families)),
		palettes: make(map[FamilyCode]Palette, len(in.Families)),
		entries:  make(map[FamilyCode][]Entry, len(in.Families)),
		index:    make(map[FamilyCode]map[PartID]int, len(in.Families)),
	}
	for _, f := range in.Families {
		code := FamilyCode(strings.TrimSpace(f.Code))
		if code == "" {
			return nil, malformed("family code is blank", nil)
		}
		if strings.ContainsAny(string(code), "-.") {
			return nil, malformed(fmt.Sprintf("family code %q contains a separator", code), map[string]string{apperrors.MetaFamily: string(code)})
		}
		if _, dup := c.ranks[code]; dup {
			return nil, malformed(fmt.Sprintf("family %s is declared twice", code), map[string]string{apperrors.MetaFamily: string(code)})
		}
		palette, ok := palettes[f.PaletteID]
		if !ok {
			return nil, malformed(fmt.Sprintf("family %s references unknown palette %d", code, f.PaletteID), map[string]string{apperrors.MetaFamily: string(code)})
		}
		c.ranks[code] = len(c.families)
		c.families = append(c.families, code)
		c.palettes[code] = palette
		c.index[code] = map[PartID]int{}
	}

	for _, e := range in.Entries {
		entry, err := c.newEntry(e)
		if err != nil {
			return nil, err
		}
		c.index[entry.Family][entry.PartID] = len(c.entries[entry.Family])
		c.entries[entry.Family] = append(c.entries[entry.Family], entry)
	}
	return c, nil
}

func (c *Catalog) newEntry(in EntryInput) (Entry, error) {
	family := FamilyCode(strings.TrimSpace(in.Family))
	meta := apperrors.Part(string(family), in.PartID)
	if _, ok := c.ranks[family]; !ok {
		return Entry{}, malformed(fmt.Sprintf("part %s-%d references an unknown family", family, in.PartID), meta)
	}
	if in.PartID < 0 {
		return Entry{}, malformed(fmt.Sprintf("part %s-%d has a negative id", family, in.PartID), meta)
	}
	if _, dup := c.index[family][PartID(in.PartID)]; dup {
		return Entry{}, malformed(fmt.Sprintf("part %s-%d is declared twice", family, in.PartID), meta)
	}
	gender, ok := ParseGender(in.Gender)
	if !ok {
		return Entry{}, malformed(fmt.Sprintf("part %s-%d has invalid gender %q", family, in.PartID, in.Gender), meta)
	}
	switch {
	case in.Colorable && len(in.Colors) == 0:
		return Entry{}, malformed(fmt.Sprintf("colorable part %s-%d lists no colors", family, in.PartID), meta)
	case !in.Colorable && len(in.Colors) > 0:
		return Entry{}, malformed(fmt.Sprintf("part %s-%d lists colors but is not colorable", family, in.PartID), meta)
	case in.Duotone && !in.Colorable:
		return Entry{}, malformed(fmt.Sprintf("duotone part %s-%d is not colorable", family, in.PartID), meta)
	}

	palette := c.palettes[family]
	colors := make([]ColorID, 0, len(in.Colors))
	seen := make(map[ColorID]bool, len(in.Colors))
	for _, raw := range in.Colors {
		color := ColorID(raw)
		if !palette.Contains(color) {
			colorMeta := apperrors.Part(string(family), in.PartID)
			colorMeta[apperrors.MetaColorID] = strconv.Itoa(raw)
			return Entry{}, malformed(fmt.Sprintf("part %s-%d references color %d outside palette %d", family, in.PartID, raw, palette.ID()), colorMeta)
		}
		if seen[color] {
			continue
		}
		seen[color] = true
		colors = append(colors, color)
	}

	return Entry{
		Family:    family,
		PartID:    PartID(in.PartID),
		Gender:    gender,
		Club:      in.Club,
		Colorable: in.Colorable,
		Duotone:   in.Duotone,
		Colors:    colors,
	}, nil
}

// Entry returns the entry for partID within family.
func (c *Catalog) Entry(family FamilyCode, partID PartID) (Entry, bool) {
	idx, ok := c.index[family][partID]
	if !ok {
		return Entry{}, false
	}
	return c.entries[family][idx].clone(), true
}

// Entries lists, in catalog order, the entries of family offered to gender
// or to both genders.
func (c *Catalog) Entries(family FamilyCode, gender Gender) []Entry {
	all := c.entries[family]
	out := make([]Entry, 0, len(all))
	for _, entry := range all {
		if entry.Gender.Allows(gender) {
			out = append(out, entry.clone())
		}
	}
	return out
}

// Palette returns the palette used by family.
func (c *Catalog) Palette(family FamilyCode) (Palette, bool) {
	p, ok := c.palettes[family]
	return p, ok
}

// Families returns the family codes in canonical serialization order.
func (c *Catalog) Families() []FamilyCode {
	out := make([]FamilyCode, len(c.families))
	copy(out, c.families)
	return out
}

// HasFamily reports whether the catalog declares family.
func (c *Catalog) HasFamily(family FamilyCode) bool {
	_, ok := c.ranks[family]
	return ok
}

// Rank returns the position of family in the canonical order.
func (c *Catalog) Rank(family FamilyCode) (int, bool) {
	rank, ok := c.ranks[family]
	return rank, ok
}

func (e Entry) clone() Entry {
	colors := make([]ColorID, len(e.Colors))
	copy(colors, e.Colors)
	e.Colors = colors
	return e
}

func malformed(reason string, metadata map[string]string) error {
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata[apperrors.MetaReason] = reason
	return apperrors.WithMetadata(apperrors.CodeMalformedCatalog, "malformed catalog: "+reason, metadata)
}
