package figure_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	"github.com/louisbranch/habbohub/internal/figure/catalog/catalogtest"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
)

func TestDefaultFigure(t *testing.T) {
	cat := catalogtest.New(t)

	tests := []struct {
		gender catalog.Gender
		want   string
	}{
		{gender: catalog.GenderMale, want: "hr-100-1.hd-180-1.ch-210-66.lg-270-82"},
		{gender: catalog.GenderFemale, want: "hr-100-1.hd-600-1.ch-710-66.lg-870-82"},
	}

	for _, tt := range tests {
		t.Run(string(tt.gender), func(t *testing.T) {
			f, err := figure.DefaultFigure(tt.gender, cat)
			if err != nil {
				t.Fatalf("default figure: %v", err)
			}
			if got := figure.Encode(f); got != tt.want {
				t.Fatalf("Encode = %q, want %q", got, tt.want)
			}
			if f.Gender() != tt.gender {
				t.Fatalf("gender = %s", f.Gender())
			}
			if issues := figure.Validate(f, cat, false); len(issues) != 0 {
				t.Fatalf("default figure has issues: %+v", issues)
			}
		})
	}
}

func TestDefaultFigureInvalidGender(t *testing.T) {
	cat := catalogtest.New(t)

	_, err := figure.DefaultFigure(catalog.GenderUnisex, cat)
	if !apperrors.IsCode(err, apperrors.CodeInvalidGender) {
		t.Fatalf("expected INVALID_GENDER, got %v", err)
	}
}

func TestDefaultFigureIncompleteCatalog(t *testing.T) {
	in := catalogtest.Input()
	in.Entries = slices.DeleteFunc(in.Entries, func(e catalog.EntryInput) bool {
		return e.Family == "lg" && e.Gender != "M"
	})
	cat, err := catalog.New(in)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	if _, err := figure.DefaultFigure(catalog.GenderMale, cat); err != nil {
		t.Fatalf("male default should still resolve: %v", err)
	}
	_, err = figure.DefaultFigure(catalog.GenderFemale, cat)
	if !apperrors.IsCode(err, apperrors.CodeIncompleteCatalog) {
		t.Fatalf("expected INCOMPLETE_CATALOG, got %v", err)
	}
	if !apperrors.CodeIncompleteCatalog.Fatal() {
		t.Fatal("incomplete catalog should be fatal")
	}
	if apperrors.GetMetadata(err)[apperrors.MetaFamily] != "lg" {
		t.Fatalf("metadata = %v", apperrors.GetMetadata(err))
	}
}

func TestRandomFigure(t *testing.T) {
	cat := catalogtest.New(t)

	for _, gender := range []catalog.Gender{catalog.GenderMale, catalog.GenderFemale} {
		for _, premium := range []bool{false, true} {
			for seed := int64(0); seed < 50; seed++ {
				f, err := figure.RandomFigure(gender, cat, rand.New(rand.NewSource(seed)), premium)
				if err != nil {
					t.Fatalf("random figure: %v", err)
				}
				for _, family := range figure.MandatoryFamilies {
					if !f.Has(family) {
						t.Fatalf("seed %d: missing mandatory family %s in %q", seed, family, f)
					}
				}
				if issues := figure.Validate(f, cat, premium); len(issues) != 0 {
					t.Fatalf("seed %d: random figure %q has issues %+v", seed, f, issues)
				}
			}
		}
	}
}

func TestRandomFigureDeterministic(t *testing.T) {
	cat := catalogtest.New(t)

	a, err := figure.RandomFigure(catalog.GenderFemale, cat, rand.New(rand.NewSource(7)), true)
	if err != nil {
		t.Fatalf("random figure: %v", err)
	}
	b, err := figure.RandomFigure(catalog.GenderFemale, cat, rand.New(rand.NewSource(7)), true)
	if err != nil {
		t.Fatalf("random figure: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("same seed produced %q and %q", a, b)
	}
}

func TestDefaultFigureUsesDeclaredFamilies(t *testing.T) {
	cat, err := catalog.New(catalog.Input{
		Families: []catalog.FamilyInput{{Code: "hr", PaletteID: 1}},
		Palettes: []catalog.PaletteInput{{ID: 1, Swatches: []catalog.SwatchInput{
			{ID: 1, Value: "FFFFFF", Selectable: true},
			{ID: 61, Value: "2D2D2D", Selectable: true},
		}}},
		Entries: []catalog.EntryInput{
			{Family: "hr", PartID: 100, Gender: "U", Colorable: true, Colors: []int{1, 61}},
		},
	})
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	f, err := figure.DefaultFigure(catalog.GenderMale, cat)
	if err != nil {
		t.Fatalf("default figure: %v", err)
	}
	if got := figure.Encode(f); got != "hr-100-1" {
		t.Fatalf("Encode = %q, want %q", got, "hr-100-1")
	}

	recolored, err := figure.NewComposer(cat).SetColor(f, "hr", 61, false)
	if err != nil {
		t.Fatalf("set color: %v", err)
	}
	if got := figure.Encode(recolored); got != "hr-100-61" {
		t.Fatalf("Encode = %q, want %q", got, "hr-100-61")
	}

	r, err := figure.RandomFigure(catalog.GenderFemale, cat, rand.New(rand.NewSource(1)), false)
	if err != nil {
		t.Fatalf("random figure: %v", err)
	}
	if !r.Has("hr") || r.Len() != 1 {
		t.Fatalf("random figure = %q", r)
	}
}

func TestRandomFigureSkipsClubOnlyColors(t *testing.T) {
	in := catalogtest.Input()
	// Free part whose only color is the club swatch 92 of the hair palette.
	in.Entries = append(in.Entries, catalog.EntryInput{Family: "hr", PartID: 101, Gender: "U", Colorable: true, Colors: []int{92}})
	cat, err := catalog.New(in)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	sawClubColorPart := false
	for seed := int64(0); seed < 100; seed++ {
		free, err := figure.RandomFigure(catalog.GenderMale, cat, rand.New(rand.NewSource(seed)), false)
		if err != nil {
			t.Fatalf("random figure: %v", err)
		}
		if part, _ := free.Part("hr"); part.PartID == 101 {
			t.Fatalf("seed %d: non-premium figure %q drew hr-101", seed, free)
		}
		if issues := figure.Validate(free, cat, false); len(issues) != 0 {
			t.Fatalf("seed %d: random figure %q has issues %+v", seed, free, issues)
		}

		club, err := figure.RandomFigure(catalog.GenderMale, cat, rand.New(rand.NewSource(seed)), true)
		if err != nil {
			t.Fatalf("random figure: %v", err)
		}
		if part, _ := club.Part("hr"); part.PartID == 101 {
			sawClubColorPart = true
		}
	}
	if !sawClubColorPart {
		t.Fatal("premium figures never drew hr-101")
	}
}

func TestRandomFigureIncompleteWithoutFreeColors(t *testing.T) {
	in := catalogtest.Input()
	in.Entries = slices.DeleteFunc(in.Entries, func(e catalog.EntryInput) bool { return e.Family == "hr" })
	in.Entries = append(in.Entries, catalog.EntryInput{Family: "hr", PartID: 101, Gender: "U", Colorable: true, Colors: []int{92}})
	cat, err := catalog.New(in)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}

	_, err = figure.RandomFigure(catalog.GenderMale, cat, rand.New(rand.NewSource(1)), false)
	if !apperrors.IsCode(err, apperrors.CodeIncompleteCatalog) {
		t.Fatalf("expected INCOMPLETE_CATALOG, got %v", err)
	}
	if _, err := figure.RandomFigure(catalog.GenderMale, cat, rand.New(rand.NewSource(1)), true); err != nil {
		t.Fatalf("premium random figure: %v", err)
	}
}
