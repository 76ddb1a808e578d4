package figure

import (
	"math/rand"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
)

// RandomFigure draws a figure for gender. Mandatory families are always
// filled; every other family is filled with even odds. Entries and colors are
// drawn uniformly among those the caller may wear: club content requires
// premium and only selectable swatches are considered. A colorable entry with
// no such swatch is never drawn.
//
// The same rng state and catalog always produce the same figure.
func RandomFigure(gender catalog.Gender, cat *catalog.Catalog, rng *rand.Rand, premium bool) (Figure, error) {
	f, err := New(gender)
	if err != nil {
		return Figure{}, err
	}
	for rank, family := range cat.Families() {
		mandatory := IsMandatory(family)
		if !mandatory && rng.Intn(2) == 0 {
			continue
		}
		candidates := eligibleEntries(cat, family, gender, premium)
		if len(candidates) == 0 {
			if mandatory {
				return Figure{}, incomplete(family, gender)
			}
			continue
		}
		candidate := candidates[rng.Intn(len(candidates))]
		color := catalog.NoColor
		if len(candidate.colors) > 0 {
			color = candidate.colors[rng.Intn(len(candidate.colors))]
		}
		entry := candidate.entry
		f = f.with(Part{Family: family, PartID: entry.PartID, Color: color, rank: rank})
	}
	return f, nil
}

type candidate struct {
	entry  catalog.Entry
	colors []catalog.ColorID
}

func eligibleEntries(cat *catalog.Catalog, family catalog.FamilyCode, gender catalog.Gender, premium bool) []candidate {
	var out []candidate
	for _, entry := range cat.Entries(family, gender) {
		if entry.Club && !premium {
			continue
		}
		c := candidate{entry: entry}
		if entry.Colorable {
			c.colors = eligibleColors(cat, entry, premium)
			if len(c.colors) == 0 {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func eligibleColors(cat *catalog.Catalog, entry catalog.Entry, premium bool) []catalog.ColorID {
	palette, ok := cat.Palette(entry.Family)
	if !ok {
		return nil
	}
	var out []catalog.ColorID
	for _, color := range entry.Colors {
		swatch, ok := palette.Swatch(color)
		if !ok || !swatch.Selectable || (swatch.Club && !premium) {
			continue
		}
		out = append(out, color)
	}
	return out
}
