package figure

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

const testCatalog = "../../figure/figuredata/testdata/figuredata.xml"

func testConfig(args ...string) Config {
	return Config{
		Hotel:          "com",
		Catalog:        []string{testCatalog},
		ImagingBaseURL: "https://img.test/avatarimage",
		Locale:         "en-US",
		Args:           args,
	}
}

func run(t *testing.T, cfg Config) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := Run(context.Background(), cfg, &out, io.Discard)
	return out.String(), err
}

func TestParseConfig(t *testing.T) {
	t.Setenv("HABBOHUB_FIGURE_CATALOG", "env.xml")
	t.Setenv("HABBOHUB_HOTEL", "com.br")

	fs := flag.NewFlagSet("figure", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := ParseConfig(fs, []string{"-gender", "F", "-premium", "random", "-seed", "3"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Hotel != "com.br" || len(cfg.Catalog) != 1 || cfg.Catalog[0] != "env.xml" {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.Gender != "F" || !cfg.Premium || cfg.Locale != "en-US" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if strings.Join(cfg.Args, " ") != "random -seed 3" {
		t.Fatalf("args = %v", cfg.Args)
	}
}

func TestParseConfigUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no command", args: nil, want: "a command is required"},
		{name: "typo", args: []string{"radnom"}, want: `did you mean "random"`},
		{name: "unrelated", args: []string{"launch-rockets"}, want: `unknown command "launch-rockets"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("figure", flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			_, err := ParseConfig(fs, tt.args)
			var usage *UsageError
			if !errors.As(err, &usage) {
				t.Fatalf("expected usage error, got %v", err)
			}
			if !strings.Contains(usage.Message, tt.want) {
				t.Fatalf("message = %q, want %q", usage.Message, tt.want)
			}
		})
	}
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{name: "default", cfg: testConfig("default"), want: "hd-180-1.hr-100-45.ch-210-66.lg-270-66\n"},
		{name: "decode", cfg: testConfig("decode", "lg-270-66.zz-1-1.hd-180-1"), want: "hd-180-1.lg-270-66 (M)\n  hd\t180\t1\n  lg\t270\t66\n"},
		{name: "repair", cfg: testConfig("validate", "-repair", "hr-828-45.hd-180-1"), want: "PREMIUM_REQUIRED\tPart 828 in hr requires Habbo Club\nhd-180-1\n"},
		{name: "set", cfg: testConfig("set", "hd-180-1.hr-100-45.ch-210-66.lg-270-66", "ea-1401", "hr-100-61"), want: "hd-180-1.hr-100-61.ch-210-66.lg-270-66.ea-1401\n"},
		{
			name: "url",
			cfg:  testConfig("url", "-size", "l", "lg-270-66.hd-180-1"),
			want: "https://img.test/avatarimage?figure=hd-180-1.lg-270-66&gender=M&direction=2&head_direction=2&action=std&gesture=std&size=l\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.cfg)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunFamilies(t *testing.T) {
	got, err := run(t, testConfig("families"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 6 || !strings.HasPrefix(lines[0], "FAMILY") || !strings.HasPrefix(lines[1], "hd") {
		t.Fatalf("families output = %q", got)
	}
}

func TestRunRandomIsSeeded(t *testing.T) {
	cfg := testConfig("random", "-seed", "5")
	cfg.Gender = "F"

	first, err := run(t, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := run(t, cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("seeded random produced %q and %q", first, second)
	}
}

func TestRunFailures(t *testing.T) {
	ptBR := testConfig("set", "hd-180-1", "hr-999")
	ptBR.Locale = "pt-BR"
	missing := testConfig("default")
	missing.Catalog = []string{"does-not-exist.xml"}

	tests := []struct {
		name  string
		cfg   Config
		want  string
		usage bool
	}{
		{name: "invalid figure", cfg: testConfig("validate", "hr-828-45.hd-180-1"), want: "figure has 1 issue(s)"},
		{name: "localized domain error", cfg: ptBR, want: "A peça 999 não existe em hr (UNKNOWN_PART)"},
		{name: "bad part token", cfg: testConfig("set", "hd-180-1", "hr-x"), want: "non numeric", usage: true},
		{name: "missing figure", cfg: testConfig("decode"), want: "exactly one figure", usage: true},
		{name: "missing catalog", cfg: missing, want: "load catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
			var usage *UsageError
			if errors.As(err, &usage) != tt.usage {
				t.Fatalf("usage error = %v, want %v", errors.As(err, &usage), tt.usage)
			}
		})
	}
}

func TestParsePartToken(t *testing.T) {
	op, err := parsePartToken("ch-3030-66-110")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if op.Family != "ch" || op.PartID != 3030 || op.Color != 66 || op.SecondaryColor != 110 {
		t.Fatalf("op = %+v", op)
	}
	for _, bad := range []string{"ch", "-1", "ch-1-2-3-4", "ch--1"} {
		if _, err := parsePartToken(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
