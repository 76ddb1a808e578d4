package catalog

// Input is the already-parsed catalog document handed to New. Loading and
// parsing the raw document is the job of package figuredata.
type Input struct {
	// Families in canonical serialization order.
	Families []FamilyInput
	Entries  []EntryInput
	Palettes []PaletteInput
}

// FamilyInput declares a family and the palette its entries draw colors from.
type FamilyInput struct {
	Code      string
	PaletteID int
}

// EntryInput declares one legal part of a family.
type EntryInput struct {
	Family    string
	PartID    int
	Gender    string
	Club      bool
	Colorable bool
	Duotone   bool
	Colors    []int
}

// PaletteInput declares a palette and its swatches in display order.
type PaletteInput struct {
	ID       int
	Swatches []SwatchInput
}

// SwatchInput declares one palette color.
type SwatchInput struct {
	ID         int
	Value      string
	Club       bool
	Selectable bool
}
