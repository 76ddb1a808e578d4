package catalog_test

import (
	"reflect"
	"testing"

	"github.com/louisbranch/habbohub/internal/figure/catalog"
	"github.com/louisbranch/habbohub/internal/figure/catalog/catalogtest"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

func TestFamiliesKeepDeclaredOrder(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	want := []catalog.FamilyCode{"hr", "hd", "ch", "lg", "sh", "ha", "ea", "cc"}
	if got := cat.Families(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Families() = %v, want %v", got, want)
	}

	got := cat.Families()
	got[0] = "zz"
	if cat.Families()[0] != "hr" {
		t.Fatal("Families() must return a copy")
	}
}

func TestEntryLookup(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	entry, ok := cat.Entry("hr", 100)
	if !ok {
		t.Fatal("expected hr-100")
	}
	if entry.Gender != catalog.GenderUnisex || entry.Club || !entry.Colorable {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !reflect.DeepEqual(entry.Colors, []catalog.ColorID{1, 61}) {
		t.Fatalf("colors = %v", entry.Colors)
	}
	if entry.DefaultColor() != 1 {
		t.Fatalf("DefaultColor() = %d, want 1", entry.DefaultColor())
	}

	if _, ok := cat.Entry("hr", 999); ok {
		t.Fatal("expected hr-999 to be absent")
	}
	if _, ok := cat.Entry("zz", 100); ok {
		t.Fatal("expected unknown family lookup to fail")
	}

	plain, _ := cat.Entry("sh", 305)
	if plain.DefaultColor() != catalog.NoColor {
		t.Fatalf("non-colorable DefaultColor() = %d, want NoColor", plain.DefaultColor())
	}
}

func TestEntriesFilterByGender(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	tests := []struct {
		name   string
		family catalog.FamilyCode
		gender catalog.Gender
		want   []catalog.PartID
	}{
		{"male hair", "hr", catalog.GenderMale, []catalog.PartID{100, 828}},
		{"female hair", "hr", catalog.GenderFemale, []catalog.PartID{100, 500}},
		{"unisex only", "hd", catalog.GenderUnisex, []catalog.PartID{190}},
		{"female heads keep catalog order", "hd", catalog.GenderFemale, []catalog.PartID{600, 190}},
		{"unknown family", "zz", catalog.GenderMale, []catalog.PartID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []catalog.PartID{}
			for _, entry := range cat.Entries(tt.family, tt.gender) {
				got = append(got, entry.PartID)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Entries(%s, %s) = %v, want %v", tt.family, tt.gender, got, tt.want)
			}
		})
	}
}

func TestPaletteLookup(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	palette, ok := cat.Palette("hr")
	if !ok {
		t.Fatal("expected hair palette")
	}
	if palette.ID() != catalogtest.HairPalette {
		t.Fatalf("palette id = %d, want %d", palette.ID(), catalogtest.HairPalette)
	}
	swatch, ok := palette.Swatch(92)
	if !ok || !swatch.Club || swatch.Value != "#ECECEC" {
		t.Fatalf("unexpected swatch: %+v", swatch)
	}
	if len(palette.Swatches()) != 4 {
		t.Fatalf("swatches = %d, want 4", len(palette.Swatches()))
	}
	if _, ok := cat.Palette("zz"); ok {
		t.Fatal("expected unknown family palette lookup to fail")
	}
}

func TestNewRejectsMalformedCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(in *catalog.Input)
	}{
		{"blank family", func(in *catalog.Input) { in.Families[0].Code = " " }},
		{"family with separator", func(in *catalog.Input) { in.Families[0].Code = "h-r" }},
		{"duplicate family", func(in *catalog.Input) { in.Families[1].Code = "hr" }},
		{"unknown palette", func(in *catalog.Input) { in.Families[0].PaletteID = 42 }},
		{"duplicate palette", func(in *catalog.Input) { in.Palettes[1].ID = catalogtest.SkinPalette }},
		{"reserved color id", func(in *catalog.Input) { in.Palettes[0].Swatches[0].ID = 0 }},
		{"duplicate color", func(in *catalog.Input) { in.Palettes[0].Swatches[1].ID = 1 }},
		{"entry in unknown family", func(in *catalog.Input) { in.Entries[0].Family = "zz" }},
		{"duplicate part", func(in *catalog.Input) { in.Entries[1].PartID = 100 }},
		{"negative part", func(in *catalog.Input) { in.Entries[0].PartID = -1 }},
		{"invalid gender", func(in *catalog.Input) { in.Entries[0].Gender = "X" }},
		{"color outside palette", func(in *catalog.Input) { in.Entries[0].Colors = []int{1, 999} }},
		{"colorable without colors", func(in *catalog.Input) { in.Entries[0].Colors = nil }},
		{"colors on plain entry", func(in *catalog.Input) {
			for i := range in.Entries {
				if in.Entries[i].Family == "sh" && in.Entries[i].PartID == 305 {
					in.Entries[i].Colors = []int{80}
				}
			}
		}},
		{"duotone without color", func(in *catalog.Input) {
			for i := range in.Entries {
				if in.Entries[i].Family == "ea" {
					in.Entries[i].Duotone = true
				}
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := catalogtest.Input()
			tt.mutate(&in)
			_, err := catalog.New(in)
			if !apperrors.IsCode(err, apperrors.CodeMalformedCatalog) {
				t.Fatalf("New() error = %v, want %s", err, apperrors.CodeMalformedCatalog)
			}
			if apperrors.GetMetadata(err)[apperrors.MetaReason] == "" {
				t.Fatal("expected reason metadata")
			}
		})
	}
}

func TestEntryReturnsDefensiveCopy(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	entry, _ := cat.Entry("hr", 100)
	entry.Colors[0] = 999
	again, _ := cat.Entry("hr", 100)
	if again.Colors[0] != 1 {
		t.Fatal("mutating a returned entry must not change the catalog")
	}
}

func TestGenderAllows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry  catalog.Gender
		figure catalog.Gender
		want   bool
	}{
		{catalog.GenderUnisex, catalog.GenderMale, true},
		{catalog.GenderUnisex, catalog.GenderFemale, true},
		{catalog.GenderMale, catalog.GenderMale, true},
		{catalog.GenderMale, catalog.GenderFemale, false},
		{catalog.GenderFemale, catalog.GenderMale, false},
	}
	for _, tt := range tests {
		if got := tt.entry.Allows(tt.figure); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.entry, tt.figure, got, tt.want)
		}
	}
}

func TestParseGender(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]catalog.Gender{"m": catalog.GenderMale, " F ": catalog.GenderFemale, "unisex": catalog.GenderUnisex} {
		got, ok := catalog.ParseGender(raw)
		if !ok || got != want {
			t.Errorf("ParseGender(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := catalog.ParseGender("x"); ok {
		t.Error("expected invalid gender")
	}
}

func TestSuggestFamilies(t *testing.T) {
	t.Parallel()

	cat := catalogtest.New(t)
	tests := []struct {
		raw  string
		want []catalog.FamilyCode
	}{
		{"hrr", []catalog.FamilyCode{"hr"}},
		{"HD", nil},
		{"hr", nil},
		{"xyzzy", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := cat.SuggestFamilies(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SuggestFamilies(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
