package figure

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

// PartSelection describes a SetPart request.
type PartSelection struct {
	Family catalog.FamilyCode
	PartID catalog.PartID
	// Color selects the primary color. NoColor picks the entry default.
	Color catalog.ColorID
	// SecondaryColor selects the second color of a duotone entry. NoColor
	// leaves it unset.
	SecondaryColor catalog.ColorID
	// Premium asserts that the caller may wear club content.
	Premium bool
}

// Composer applies validated mutations to figures built against one catalog.
//
// Every method returns the figure it was given, unchanged, together with the
// error when a mutation is rejected.
type Composer struct {
	catalog *catalog.Catalog
}

// NewComposer returns a Composer backed by cat.
func NewComposer(cat *catalog.Catalog) *Composer {
	return &Composer{catalog: cat}
}

// Catalog returns the catalog the composer validates against.
func (c *Composer) Catalog() *catalog.Catalog {
	return c.catalog
}

// SetPart selects an entry for a family, superseding any part already set
// for that family. The new part never inherits the previous part's colors.
//
// Checks run in order: the figure must carry a gender (INVALID_GENDER, as
// with the zero Figure), the entry must exist (UNKNOWN_PART), suit the figure
// gender (GENDER_MISMATCH), be allowed without club (PREMIUM_REQUIRED), and
// any requested color must be acceptable (NOT_COLORABLE, COLOR_NOT_LEGAL,
// PREMIUM_REQUIRED for club swatches).
func (c *Composer) SetPart(f Figure, sel PartSelection) (Figure, error) {
	if err := checkGender(f.gender); err != nil {
		return f, err
	}
	entry, ok := c.catalog.Entry(sel.Family, sel.PartID)
	if !ok {
		return f, unknownPart(sel.Family, sel.PartID)
	}
	if !entry.Gender.Allows(f.gender) {
		meta := partMeta(entry.Family, entry.PartID)
		meta[apperrors.MetaGender] = string(f.gender)
		return f, apperrors.WithMetadata(
			apperrors.CodeGenderMismatch,
			fmt.Sprintf("part %s-%d is %s only, figure is %s", entry.Family, entry.PartID, entry.Gender, f.gender),
			meta,
		)
	}
	if entry.Club && !sel.Premium {
		return f, apperrors.WithMetadata(
			apperrors.CodePremiumRequired,
			fmt.Sprintf("part %s-%d requires club", entry.Family, entry.PartID),
			partMeta(entry.Family, entry.PartID),
		)
	}

	color := entry.DefaultColor()
	if sel.Color != catalog.NoColor {
		if err := c.checkColor(entry, sel.Color, sel.Premium, false); err != nil {
			return f, err
		}
		color = sel.Color
	}
	secondary := catalog.NoColor
	if sel.SecondaryColor != catalog.NoColor {
		if err := c.checkColor(entry, sel.SecondaryColor, sel.Premium, true); err != nil {
			return f, err
		}
		secondary = sel.SecondaryColor
	}

	rank, _ := c.catalog.Rank(entry.Family)
	return f.with(Part{
		Family:         entry.Family,
		PartID:         entry.PartID,
		Color:          color,
		SecondaryColor: secondary,
		rank:           rank,
	}), nil
}

// SetColor recolors the part currently selected for family.
func (c *Composer) SetColor(f Figure, family catalog.FamilyCode, color catalog.ColorID, premium bool) (Figure, error) {
	return c.recolor(f, family, color, premium, false)
}

// SetSecondaryColor sets the second color of the duotone part currently
// selected for family.
func (c *Composer) SetSecondaryColor(f Figure, family catalog.FamilyCode, color catalog.ColorID, premium bool) (Figure, error) {
	return c.recolor(f, family, color, premium, true)
}

func (c *Composer) recolor(f Figure, family catalog.FamilyCode, color catalog.ColorID, premium, secondary bool) (Figure, error) {
	current, ok := f.Part(family)
	if !ok {
		return f, apperrors.WithMetadata(
			apperrors.CodeFamilyNotSet,
			fmt.Sprintf("no part selected for %s", family),
			map[string]string{apperrors.MetaFamily: string(family)},
		)
	}
	entry, ok := c.catalog.Entry(current.Family, current.PartID)
	if !ok {
		return f, unknownPart(current.Family, current.PartID)
	}
	if err := c.checkColor(entry, color, premium, secondary); err != nil {
		return f, err
	}

	if secondary {
		current.SecondaryColor = color
	} else {
		current.Color = color
	}
	return f.with(current), nil
}

// RemovePart clears family. Removing an unset family returns f as is.
func (c *Composer) RemovePart(f Figure, family catalog.FamilyCode) Figure {
	return f.without(family)
}

// ResetAll returns an empty figure with the same gender.
func (c *Composer) ResetAll(f Figure) Figure {
	return Figure{gender: f.gender}
}

func (c *Composer) checkColor(entry catalog.Entry, color catalog.ColorID, premium, secondary bool) error {
	meta := partMeta(entry.Family, entry.PartID)
	meta[apperrors.MetaColorID] = strconv.Itoa(int(color))

	if !entry.Colorable || (secondary && !entry.Duotone) {
		return apperrors.WithMetadata(
			apperrors.CodeNotColorable,
			fmt.Sprintf("part %s-%d does not take this color slot", entry.Family, entry.PartID),
			meta,
		)
	}
	if !entry.AllowsColor(color) {
		return apperrors.WithMetadata(
			apperrors.CodeColorNotLegal,
			fmt.Sprintf("color %d is not legal for part %s-%d", color, entry.Family, entry.PartID),
			meta,
		)
	}
	if !premium && clubSwatch(c.catalog, entry.Family, color) {
		return apperrors.WithMetadata(
			apperrors.CodePremiumRequired,
			fmt.Sprintf("color %d on %s requires club", color, entry.Family),
			meta,
		)
	}
	return nil
}

func clubSwatch(cat *catalog.Catalog, family catalog.FamilyCode, color catalog.ColorID) bool {
	palette, ok := cat.Palette(family)
	if !ok {
		return false
	}
	swatch, ok := palette.Swatch(color)
	return ok && swatch.Club
}

func unknownPart(family catalog.FamilyCode, partID catalog.PartID) error {
	return apperrors.WithMetadata(
		apperrors.CodeUnknownPart,
		fmt.Sprintf("part %s-%d is not in the catalog", family, partID),
		partMeta(family, partID),
	)
}

func partMeta(family catalog.FamilyCode, partID catalog.PartID) map[string]string {
	return apperrors.Part(string(family), int(partID))
}
