package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/catalog"
	"github.com/louisbranch/habbohub/internal/figure/catalog/catalogtest"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
	"github.com/louisbranch/habbohub/internal/services/figure/storage/sqlite"
)

const maleDefault = "hr-100-1.hd-180-1.ch-210-66.lg-270-82"

func newService(t *testing.T) *service.Service {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "figures.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})

	svc, err := service.New(service.Config{
		Catalog: catalogtest.New(t),
		Store:   store,
		Imaging: imaging.New("https://img.test/avatarimage"),
		Hotel:   "com.br",
		Seed:    func() int64 { return 42 },
		Now:     func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewRequiresCatalog(t *testing.T) {
	if _, err := service.New(service.Config{}); err == nil {
		t.Fatal("expected catalog error")
	}
}

func TestFamilies(t *testing.T) {
	svc := newService(t)

	families := svc.Families(context.Background())
	if len(families) != 8 {
		t.Fatalf("families = %d, want 8", len(families))
	}
	hair := families[0]
	if hair.Code != "hr" || hair.PaletteID != catalogtest.HairPalette || hair.Entries != 3 || !hair.Mandatory {
		t.Fatalf("hr summary = %+v", hair)
	}
	shoes := families[4]
	if shoes.Code != "sh" || shoes.Entries != 2 || shoes.Mandatory {
		t.Fatalf("sh summary = %+v", shoes)
	}
}

func TestEntries(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	entries, err := svc.Entries(ctx, "hr", "F")
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	var ids []catalog.PartID
	for _, entry := range entries {
		ids = append(ids, entry.PartID)
	}
	if len(ids) != 2 || ids[0] != 100 || ids[1] != 500 {
		t.Fatalf("female hair = %v, want [100 500]", ids)
	}

	_, err = svc.Entries(ctx, "hx", "M")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if got := apperrors.GetMetadata(err)[service.MetaSuggestion]; got != "hr" {
		t.Fatalf("suggestion = %q, want hr", got)
	}

	_, err = svc.Entries(ctx, "hr", "U")
	if !apperrors.IsCode(err, apperrors.CodeInvalidGender) {
		t.Fatalf("expected INVALID_GENDER, got %v", err)
	}
}

func TestPalette(t *testing.T) {
	svc := newService(t)

	palette, err := svc.Palette(context.Background(), "hd")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if palette.ID() != catalogtest.SkinPalette || len(palette.Swatches()) != 4 {
		t.Fatalf("palette = %d with %d swatches", palette.ID(), len(palette.Swatches()))
	}
	if _, err := svc.Palette(context.Background(), "zz"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	f, err := svc.Decode(ctx, "zz-999-1.lg-270-82.hr-100-61", "")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := figure.Encode(f); got != "hr-100-61.lg-270-82" {
		t.Fatalf("decode = %q", got)
	}

	f, err = svc.Decode(ctx, "hd-190-1", "f")
	if err != nil {
		t.Fatalf("decode with gender: %v", err)
	}
	if f.Gender() != catalog.GenderFemale {
		t.Fatalf("gender = %s, want F", f.Gender())
	}

	if _, err := svc.Decode(ctx, "hd-190-1", "X"); !apperrors.IsCode(err, apperrors.CodeInvalidGender) {
		t.Fatalf("expected INVALID_GENDER, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	svc := newService(t)
	const raw = "hr-999-1.hd-180-1.ch-215-110.lg-270-82"

	tests := []struct {
		name   string
		req    service.ValidateRequest
		issues int
		want   string
	}{
		{name: "valid", req: service.ValidateRequest{Figure: maleDefault}, want: maleDefault},
		{name: "report only", req: service.ValidateRequest{Figure: raw}, issues: 2, want: raw},
		{name: "premium", req: service.ValidateRequest{Figure: raw, Premium: true}, issues: 1, want: raw},
		{name: "repair", req: service.ValidateRequest{Figure: raw, Repair: true}, issues: 2, want: "hd-180-1.lg-270-82"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Validate(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if len(result.Issues) != tt.issues {
				t.Fatalf("issues = %+v, want %d", result.Issues, tt.issues)
			}
			if result.Valid() != (tt.issues == 0) {
				t.Fatalf("valid = %v", result.Valid())
			}
			if got := figure.Encode(result.Figure); got != tt.want {
				t.Fatalf("figure = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	svc := newService(t)

	f, err := svc.Default(context.Background(), "M")
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if got := figure.Encode(f); got != maleDefault {
		t.Fatalf("default = %q, want %q", got, maleDefault)
	}
	if _, err := svc.Default(context.Background(), ""); !apperrors.IsCode(err, apperrors.CodeInvalidGender) {
		t.Fatalf("expected INVALID_GENDER, got %v", err)
	}
}

func TestRandom(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	seed := int64(9)

	a, err := svc.Random(ctx, "F", true, &seed)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	b, err := svc.Random(ctx, "F", true, &seed)
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("same seed produced %q and %q", a, b)
	}

	c, err := svc.Random(ctx, "M", false, nil)
	if err != nil {
		t.Fatalf("random without seed: %v", err)
	}
	if issues := figure.Validate(c, svc.Catalog(), false); len(issues) != 0 {
		t.Fatalf("random figure %q has issues %+v", c, issues)
	}
}

func TestEdit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	result, err := svc.Edit(ctx, service.EditRequest{
		Figure: maleDefault,
		Gender: "M",
		Ops: []service.Op{
			{Kind: service.OpSetColor, Family: "hr", Color: 61},
			{Kind: service.OpSetPart, Family: "sh", PartID: 290},
			{Kind: service.OpRemovePart, Family: "ch"},
		},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got, want := figure.Encode(result.Figure), "hr-100-61.hd-180-1.lg-270-82.sh-290-80"; got != want {
		t.Fatalf("edit = %q, want %q", got, want)
	}
	if result.Applied != 3 {
		t.Fatalf("applied = %d, want 3", result.Applied)
	}

	result, err = svc.Edit(ctx, service.EditRequest{Figure: maleDefault, Ops: []service.Op{{Kind: service.OpReset}}})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if result.Figure.Len() != 0 || result.Figure.Gender() != catalog.GenderMale {
		t.Fatalf("reset = %q (%s)", result.Figure, result.Figure.Gender())
	}
}

func TestEditStopsAtFailingOp(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name    string
		ops     []service.Op
		code    apperrors.Code
		applied int
		want    string
	}{
		{
			name: "unknown part",
			ops: []service.Op{
				{Kind: service.OpSetColor, Family: "hr", Color: 61},
				{Kind: service.OpSetPart, Family: "hr", PartID: 999},
				{Kind: service.OpRemovePart, Family: "ch"},
			},
			code:    apperrors.CodeUnknownPart,
			applied: 1,
			want:    "hr-100-61.hd-180-1.ch-210-66.lg-270-82",
		},
		{
			name:    "club part without premium",
			ops:     []service.Op{{Kind: service.OpSetPart, Family: "hr", PartID: 828}},
			code:    apperrors.CodePremiumRequired,
			applied: 0,
			want:    maleDefault,
		},
		{
			name:    "unknown op",
			ops:     []service.Op{{Kind: "shuffle"}},
			code:    apperrors.CodeInvalidArgument,
			applied: 0,
			want:    maleDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Edit(context.Background(), service.EditRequest{Figure: maleDefault, Gender: "M", Ops: tt.ops})
			if !apperrors.IsCode(err, tt.code) {
				t.Fatalf("code = %s, want %s (%v)", apperrors.GetCode(err), tt.code, err)
			}
			if result.Applied != tt.applied {
				t.Fatalf("applied = %d, want %d", result.Applied, tt.applied)
			}
			if got := figure.Encode(result.Figure); got != tt.want {
				t.Fatalf("figure = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEditErrorMetadata(t *testing.T) {
	svc := newService(t)

	_, err := svc.Edit(context.Background(), service.EditRequest{
		Figure: maleDefault,
		Ops: []service.Op{
			{Kind: service.OpRemovePart, Family: "sh"},
			{Kind: service.OpSetPart, Family: "hr", PartID: 999},
		},
	})
	meta := apperrors.GetMetadata(err)
	if meta[service.MetaOp] != "1" || meta[apperrors.MetaFamily] != "hr" || meta[apperrors.MetaPartID] != "999" {
		t.Fatalf("metadata = %v", meta)
	}
}

func TestImageURL(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	link, err := svc.ImageURL(ctx, service.ImageRequest{
		Request:      imaging.Request{Figure: "lg-270-82.hr-100-1", HeadOnly: true},
		Canonicalize: true,
	})
	if err != nil {
		t.Fatalf("image url: %v", err)
	}
	const want = "https://img.test/avatarimage?figure=hr-100-1.lg-270-82&gender=M&direction=2&head_direction=2&action=std&gesture=std&size=m&headonly=1"
	if link != want {
		t.Fatalf("link = %q, want %q", link, want)
	}

	_, err = svc.ImageURL(ctx, service.ImageRequest{Request: imaging.Request{Figure: maleDefault, Direction: imaging.Direction(9)}})
	if !apperrors.IsCode(err, apperrors.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}
