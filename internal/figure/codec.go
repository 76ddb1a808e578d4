package figure

import (
	"strconv"
	"strings"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
)

const (
	partSeparator  = "."
	fieldSeparator = "-"
)

// DecodeOption customizes Decode.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	gender catalog.Gender
}

// WithGender sets the gender of the decoded figure. Values other than male
// or female are ignored.
func WithGender(gender catalog.Gender) DecodeOption {
	return func(o *decodeOptions) {
		if gender == catalog.GenderMale || gender == catalog.GenderFemale {
			o.gender = gender
		}
	}
}

// Encode serializes f into the canonical figure string
// "family-part[-color[-secondary]](.family-part...)".
//
// A part without color is written as "family-part"; an empty figure encodes
// to the empty string.
func Encode(f Figure) string {
	if len(f.parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range f.parts {
		if i > 0 {
			b.WriteString(partSeparator)
		}
		b.WriteString(string(p.Family))
		b.WriteString(fieldSeparator)
		b.WriteString(strconv.Itoa(int(p.PartID)))
		if p.Color == catalog.NoColor && p.SecondaryColor == catalog.NoColor {
			continue
		}
		b.WriteString(fieldSeparator)
		b.WriteString(strconv.Itoa(int(p.Color)))
		if p.SecondaryColor != catalog.NoColor {
			b.WriteString(fieldSeparator)
			b.WriteString(strconv.Itoa(int(p.SecondaryColor)))
		}
	}
	return b.String()
}

// Decode parses a figure string against cat.
//
// Decoding is tolerant: a segment with the wrong number of fields, a family
// the catalog does not declare, or a non-numeric id is dropped on its own and
// the rest of the string still decodes. Part ids and colors are not checked
// against the catalog entries; use Validate for that. When a family appears
// twice the last segment wins.
//
// The gender comes from WithGender. Without it, the gender of the first
// gender-specific entry in canonical order is used, falling back to male.
func Decode(raw string, cat *catalog.Catalog, opts ...DecodeOption) Figure {
	var options decodeOptions
	for _, opt := range opts {
		opt(&options)
	}

	f := Figure{gender: catalog.GenderMale}
	for _, segment := range strings.Split(strings.TrimSpace(raw), partSeparator) {
		part, ok := decodePart(segment, cat)
		if !ok {
			continue
		}
		f = f.with(part)
	}

	if options.gender != "" {
		f.gender = options.gender
	} else {
		f.gender = inferGender(f, cat)
	}
	return f
}

func decodePart(segment string, cat *catalog.Catalog) (Part, bool) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return Part{}, false
	}
	fields := strings.Split(segment, fieldSeparator)
	// Figure strings in the wild often end each part with a dash.
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < 2 || len(fields) > 4 {
		return Part{}, false
	}

	family := catalog.FamilyCode(fields[0])
	rank, ok := cat.Rank(family)
	if !ok {
		return Part{}, false
	}
	ids := make([]int, len(fields)-1)
	for i, field := range fields[1:] {
		if !isDigits(field) {
			return Part{}, false
		}
		id, err := strconv.Atoi(field)
		if err != nil {
			return Part{}, false
		}
		ids[i] = id
	}

	p := Part{Family: family, PartID: catalog.PartID(ids[0]), rank: rank}
	if len(ids) > 1 {
		p.Color = catalog.ColorID(ids[1])
	}
	if len(ids) > 2 {
		p.SecondaryColor = catalog.ColorID(ids[2])
	}
	return p, true
}

func inferGender(f Figure, cat *catalog.Catalog) catalog.Gender {
	for _, p := range f.parts {
		entry, ok := cat.Entry(p.Family, p.PartID)
		if !ok || entry.Gender == catalog.GenderUnisex {
			continue
		}
		return entry.Gender
	}
	return catalog.GenderMale
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
