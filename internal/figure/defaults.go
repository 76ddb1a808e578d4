package figure

import (
	"fmt"
	"slices"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// MandatoryFamilies are the families every baseline figure carries when the
// catalog declares them: head, hair, top and bottom.
var MandatoryFamilies = []catalog.FamilyCode{"hd", "hr", "ch", "lg"}

// IsMandatory reports whether family belongs to MandatoryFamilies.
func IsMandatory(family catalog.FamilyCode) bool {
	return slices.Contains(MandatoryFamilies, family)
}

// DefaultFigure builds the baseline figure for gender: the first
// gender-compatible, non-club entry of every mandatory family the catalog
// declares, each in its default color. Optional families stay unset.
func DefaultFigure(gender catalog.Gender, cat *catalog.Catalog) (Figure, error) {
	f, err := New(gender)
	if err != nil {
		return Figure{}, err
	}
	for _, family := range cat.Families() {
		if !IsMandatory(family) {
			continue
		}
		entry, ok := firstEligible(cat, family, gender)
		if !ok {
			return Figure{}, incomplete(family, gender)
		}
		rank, _ := cat.Rank(family)
		f = f.with(Part{Family: family, PartID: entry.PartID, Color: entry.DefaultColor(), rank: rank})
	}
	return f, nil
}

func firstEligible(cat *catalog.Catalog, family catalog.FamilyCode, gender catalog.Gender) (catalog.Entry, bool) {
	for _, entry := range cat.Entries(family, gender) {
		if !entry.Club {
			return entry, true
		}
	}
	return catalog.Entry{}, false
}

func incomplete(family catalog.FamilyCode, gender catalog.Gender) error {
	return apperrors.WithMetadata(
		apperrors.CodeIncompleteCatalog,
		fmt.Sprintf("catalog has no free %s entry for gender %s", family, gender),
		map[string]string{
			apperrors.MetaFamily: string(family),
			apperrors.MetaGender: string(gender),
		},
	)
}
