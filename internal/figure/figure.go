// Package figure implements the avatar figure composition engine: the parsed
// Figure value, its wire codec, validated mutations, batch validation and
// baseline figures.
//
// # Ownership
//
// A Figure is an immutable value. Every mutation returns a new Figure and
// leaves its input untouched, so a failed mutation can never corrupt the
// figure an edit session currently holds.
//
// # Ordering
//
// Parts are kept in the canonical family order of the catalog the figure was
// built against (see catalog.Catalog.Families). Serialization never depends on
// the order in which parts were set.
package figure

import (
	"strconv"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// Part is one selected element of a figure.
type Part struct {
	Family catalog.FamilyCode
	PartID catalog.PartID
	// Color is catalog.NoColor when the entry is not colorable.
	Color catalog.ColorID
	// SecondaryColor is only set on duotone parts.
	SecondaryColor catalog.ColorID

	rank int
}

// Figure is a full avatar composition: a gender plus at most one part per
// family.
type Figure struct {
	gender catalog.Gender
	parts  []Part
}

// New returns an empty figure. A figure always commits to male or female;
// unisex is only meaningful on catalog entries.
func New(gender catalog.Gender) (Figure, error) {
	if err := checkGender(gender); err != nil {
		return Figure{}, err
	}
	return Figure{gender: gender}, nil
}

func checkGender(gender catalog.Gender) error {
	if gender != catalog.GenderMale && gender != catalog.GenderFemale {
		return apperrors.WithMetadata(
			apperrors.CodeInvalidGender,
			"figure gender must be M or F, got "+strconv.Quote(string(gender)),
			map[string]string{apperrors.MetaGender: string(gender)},
		)
	}
	return nil
}

// Gender returns the figure gender.
func (f Figure) Gender() catalog.Gender {
	return f.gender
}

// Len returns the number of parts.
func (f Figure) Len() int {
	return len(f.parts)
}

// Parts returns the parts in canonical family order.
func (f Figure) Parts() []Part {
	out := make([]Part, len(f.parts))
	copy(out, f.parts)
	return out
}

// Part returns the part selected for family.
func (f Figure) Part(family catalog.FamilyCode) (Part, bool) {
	for _, p := range f.parts {
		if p.Family == family {
			return p, true
		}
	}
	return Part{}, false
}

// Has reports whether a part is selected for family.
func (f Figure) Has(family catalog.FamilyCode) bool {
	_, ok := f.Part(family)
	return ok
}

// Equal reports whether f and other have the same gender and parts.
func (f Figure) Equal(other Figure) bool {
	if f.gender != other.gender || len(f.parts) != len(other.parts) {
		return false
	}
	for i := range f.parts {
		a, b := f.parts[i], other.parts[i]
		if a.Family != b.Family || a.PartID != b.PartID || a.Color != b.Color || a.SecondaryColor != b.SecondaryColor {
			return false
		}
	}
	return true
}

// String returns the canonical figure string.
func (f Figure) String() string {
	return Encode(f)
}

// with returns a copy of f where p replaces any part of the same family.
// p.rank must already hold the family's canonical rank.
func (f Figure) with(p Part) Figure {
	parts := make([]Part, 0, len(f.parts)+1)
	inserted := false
	for _, existing := range f.parts {
		if existing.Family == p.Family {
			continue
		}
		if !inserted && p.rank < existing.rank {
			parts = append(parts, p)
			inserted = true
		}
		parts = append(parts, existing)
	}
	if !inserted {
		parts = append(parts, p)
	}
	return Figure{gender: f.gender, parts: parts}
}

// without returns a copy of f with family removed.
func (f Figure) without(family catalog.FamilyCode) Figure {
	if !f.Has(family) {
		return f
	}
	parts := make([]Part, 0, len(f.parts)-1)
	for _, existing := range f.parts {
		if existing.Family != family {
			parts = append(parts, existing)
		}
	}
	return Figure{gender: f.gender, parts: parts}
}
