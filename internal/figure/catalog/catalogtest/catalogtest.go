// Package catalogtest provides a small, fully valid clothing catalog for
// tests across the figure packages.
package catalogtest

import (
	"testing"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
)

// Palette identifiers used by Input.
const (
	SkinPalette    = 1
	HairPalette    = 2
	ClothesPalette = 3
)

// Input returns the catalog document behind New. Families are declared in
// the order hr, hd, ch, lg, sh, ha, ea, cc.
//
// Notable entries:
//   - hr-100 is unisex with colors [1, 61]
//   - hr-828 and ha-1002 are club parts
//   - ch-3030 is a duotone club part; ch-215 is free but offers club color 110
//   - sh-305 and ea-1401 are not colorable
func Input() catalog.Input {
	return catalog.Input{
		Families: []catalog.FamilyInput{
			{Code: "hr", PaletteID: HairPalette},
			{Code: "hd", PaletteID: SkinPalette},
			{Code: "ch", PaletteID: ClothesPalette},
			{Code: "lg", PaletteID: ClothesPalette},
			{Code: "sh", PaletteID: ClothesPalette},
			{Code: "ha", PaletteID: ClothesPalette},
			{Code: "ea", PaletteID: ClothesPalette},
			{Code: "cc", PaletteID: ClothesPalette},
		},
		Palettes: []catalog.PaletteInput{
			{ID: SkinPalette, Swatches: []catalog.SwatchInput{
				{ID: 1, Value: "FFCB98", Selectable: true},
				{ID: 2, Value: "F4AC54", Selectable: true},
				{ID: 3, Value: "FFDBC1", Selectable: true},
				{ID: 7, Value: "C68642", Selectable: true},
			}},
			{ID: HairPalette, Swatches: []catalog.SwatchInput{
				{ID: 1, Value: "FFFFFF", Selectable: true},
				{ID: 45, Value: "D2B48C", Selectable: true},
				{ID: 61, Value: "2D2D2D", Selectable: true},
				{ID: 92, Value: "ECECEC", Club: true, Selectable: true},
			}},
			{ID: ClothesPalette, Swatches: []catalog.SwatchInput{
				{ID: 1, Value: "FFFFFF", Selectable: true},
				{ID: 62, Value: "84A95F", Selectable: true},
				{ID: 66, Value: "96743D", Selectable: true},
				{ID: 80, Value: "E4E4E4", Selectable: true},
				{ID: 82, Value: "3A3A3A", Selectable: true},
				{ID: 92, Value: "ECECEC", Selectable: true},
				{ID: 100, Value: "E3AE7D", Selectable: true},
				{ID: 110, Value: "1F1F1F", Club: true, Selectable: true},
			}},
		},
		Entries: []catalog.EntryInput{
			{Family: "hr", PartID: 100, Gender: "U", Colorable: true, Colors: []int{1, 61}},
			{Family: "hr", PartID: 500, Gender: "F", Colorable: true, Colors: []int{1, 45, 61}},
			{Family: "hr", PartID: 828, Gender: "M", Club: true, Colorable: true, Colors: []int{45, 61, 92}},

			{Family: "hd", PartID: 180, Gender: "M", Colorable: true, Colors: []int{1, 2, 3}},
			{Family: "hd", PartID: 600, Gender: "F", Colorable: true, Colors: []int{1, 2, 3}},
			{Family: "hd", PartID: 190, Gender: "U", Colorable: true, Colors: []int{1, 2, 3, 7}},

			{Family: "ch", PartID: 210, Gender: "M", Colorable: true, Colors: []int{66, 92}},
			{Family: "ch", PartID: 710, Gender: "F", Colorable: true, Colors: []int{66, 92}},
			{Family: "ch", PartID: 3030, Gender: "U", Club: true, Colorable: true, Duotone: true, Colors: []int{66, 110}},
			{Family: "ch", PartID: 215, Gender: "U", Colorable: true, Colors: []int{62, 66, 110}},

			{Family: "lg", PartID: 270, Gender: "M", Colorable: true, Colors: []int{82, 1}},
			{Family: "lg", PartID: 870, Gender: "F", Colorable: true, Colors: []int{82}},
			{Family: "lg", PartID: 275, Gender: "U", Colorable: true, Colors: []int{82, 100}},

			{Family: "sh", PartID: 290, Gender: "U", Colorable: true, Colors: []int{80, 62}},
			{Family: "sh", PartID: 305, Gender: "U"},

			{Family: "ha", PartID: 1002, Gender: "U", Club: true, Colorable: true, Colors: []int{62}},
			{Family: "ea", PartID: 1401, Gender: "U"},
			{Family: "cc", PartID: 260, Gender: "M", Colorable: true, Colors: []int{1}},
		},
	}
}

// New builds the catalog from Input, failing the test on error.
func New(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(Input())
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return cat
}
