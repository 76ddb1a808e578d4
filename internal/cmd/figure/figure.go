// Package figure implements the figure command line: catalog browsing and
// figure decoding, validation, generation and editing against one hotel
// catalog.
package figure

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/agnivade/levenshtein"
	"github.com/louisbranch/habbohub/internal/figure"
	"github.com/louisbranch/habbohub/internal/figure/figuredata"
	entrypoint "github.com/louisbranch/habbohub/internal/platform/cmd"
	apperrors "github.com/louisbranch/habbohub/internal/platform/errors"
	"github.com/louisbranch/habbohub/internal/platform/imaging"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
)

// Config holds figure command configuration. Environment variables carry
// the HABBOHUB_ prefix, e.g. HABBOHUB_FIGURE_CATALOG.
type Config struct {
	Hotel          string   `env:"HOTEL"          envDefault:"com"`
	Catalog        []string `env:"FIGURE_CATALOG" envSeparator:","`
	ImagingBaseURL string   `env:"IMAGING_BASE_URL"`
	Locale         string   `env:"LOCALE"         envDefault:"en-US"`
	Gender         string
	Premium        bool
	// Args holds the command name and its arguments.
	Args []string
}

// UsageError reports a command-line mistake.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

type command struct {
	name    string
	usage   string
	summary string
	run     func(ctx context.Context, env *runEnv, args []string) error
}

var commands = []command{
	{name: "families", usage: "families", summary: "list catalog families", run: runFamilies},
	{name: "decode", usage: "decode <figure>", summary: "print the canonical figure and its parts", run: runDecode},
	{name: "validate", usage: "validate [-repair] <figure>", summary: "report catalog issues", run: runValidate},
	{name: "default", usage: "default", summary: "print the starter figure", run: runDefault},
	{name: "random", usage: "random [-seed n]", summary: "draw a random figure", run: runRandom},
	{name: "set", usage: "set <figure> <family-part[-color[-color]]>...", summary: "select parts on a figure", run: runSet},
	{name: "url", usage: "url [-direction n] [-head-direction n] [-size s|m|l] [-action a] [-gesture g] [-headonly] <figure>", summary: "print the avatar image URL", run: runURL},
}

type runEnv struct {
	svc    *service.Service
	cfg    Config
	out    io.Writer
	errOut io.Writer
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Hotel, "hotel", cfg.Hotel, "hotel domain, e.g. com or com.br")
	fs.Func("catalog", "comma separated figuredata paths or URLs", func(value string) error {
		cfg.Catalog = nil
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				cfg.Catalog = append(cfg.Catalog, item)
			}
		}
		return nil
	})
	fs.StringVar(&cfg.ImagingBaseURL, "imaging-base-url", cfg.ImagingBaseURL, "avatar imaging endpoint")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for error messages")
	fs.StringVar(&cfg.Gender, "gender", "", "figure gender, M or F")
	fs.BoolVar(&cfg.Premium, "premium", false, "allow Habbo Club content")
	fs.Usage = func() { writeUsage(fs.Output()) }
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	if len(cfg.Args) == 0 {
		return Config{}, &UsageError{Message: "a command is required, see -h"}
	}
	if _, ok := lookupCommand(cfg.Args[0]); !ok {
		return Config{}, unknownCommand(cfg.Args[0])
	}
	return cfg, nil
}

// Run loads the catalog and executes the configured command.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if len(cfg.Args) == 0 {
		return &UsageError{Message: "a command is required"}
	}
	cmd, ok := lookupCommand(cfg.Args[0])
	if !ok {
		return unknownCommand(cfg.Args[0])
	}

	sources := cfg.Catalog
	if len(sources) == 0 {
		sources = []string{figuredata.HotelURL(cfg.Hotel)}
	}
	loader := figuredata.Loader{Options: []figuredata.Option{figuredata.WithFamilies(figuredata.WearableFamilies...)}}
	cat, _, err := loader.LoadFirst(ctx, sources...)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	imagingBase := cfg.ImagingBaseURL
	if strings.TrimSpace(imagingBase) == "" {
		imagingBase = imaging.HotelBaseURL(cfg.Hotel)
	}
	svc, err := service.New(service.Config{Catalog: cat, Imaging: imaging.New(imagingBase), Hotel: cfg.Hotel})
	if err != nil {
		return err
	}

	env := &runEnv{svc: svc, cfg: cfg, out: out, errOut: errOut}
	if err := cmd.run(ctx, env, cfg.Args[1:]); err != nil {
		return localize(err, cfg.Locale)
	}
	return nil
}

// localize replaces domain errors with their user-facing message.
func localize(err error, locale string) error {
	var usage *UsageError
	if errors.As(err, &usage) || apperrors.GetCode(err) == apperrors.CodeUnknown {
		return err
	}
	message, _ := apperrors.Localize(err, locale)
	return fmt.Errorf("%s (%s)", message, apperrors.GetCode(err))
}

func lookupCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// unknownCommand suggests the closest command name.
func unknownCommand(name string) error {
	best, bestDist := "", -1
	for _, cmd := range commands {
		dist := levenshtein.ComputeDistance(strings.ToLower(name), cmd.name)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cmd.name, dist
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		return &UsageError{Message: fmt.Sprintf("unknown command %q, did you mean %q?", name, best)}
	}
	return &UsageError{Message: fmt.Sprintf("unknown command %q", name)}
}

func writeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: figure [flags] <command> [args]")
	fmt.Fprintln(w, "\nCommands:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.summary)
	}
	_ = tw.Flush()
}

func (e *runEnv) gender(fallback string) string {
	if g := strings.TrimSpace(e.cfg.Gender); g != "" {
		return g
	}
	return fallback
}

func oneFigure(name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", &UsageError{Message: fmt.Sprintf("%s takes exactly one figure", name)}
	}
	return args[0], nil
}

func runFamilies(ctx context.Context, env *runEnv, args []string) error {
	if len(args) != 0 {
		return &UsageError{Message: "families takes no arguments"}
	}
	tw := tabwriter.NewWriter(env.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FAMILY\tPALETTE\tENTRIES\tMANDATORY")
	for _, f := range env.svc.Families(ctx) {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", f.Code, f.PaletteID, f.Entries, f.Mandatory)
	}
	return tw.Flush()
}

func runDecode(ctx context.Context, env *runEnv, args []string) error {
	raw, err := oneFigure("decode", args)
	if err != nil {
		return err
	}
	f, err := env.svc.Decode(ctx, raw, env.cfg.Gender)
	if err != nil {
		return err
	}
	printFigure(env.out, f)
	return nil
}

func runValidate(ctx context.Context, env *runEnv, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(env.errOut)
	repair := fs.Bool("repair", false, "drop parts with issues")
	if err := fs.Parse(args); err != nil {
		return &UsageError{Message: err.Error()}
	}
	raw, err := oneFigure("validate", fs.Args())
	if err != nil {
		return err
	}
	result, err := env.svc.Validate(ctx, service.ValidateRequest{
		Figure:  raw,
		Gender:  env.cfg.Gender,
		Premium: env.cfg.Premium,
		Repair:  *repair,
	})
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		message, _ := apperrors.Localize(issue.Err(), env.cfg.Locale)
		fmt.Fprintf(env.out, "%s\t%s\n", issue.Kind, message)
	}
	if *repair {
		fmt.Fprintln(env.out, figure.Encode(result.Figure))
		return nil
	}
	if result.Valid() {
		fmt.Fprintln(env.out, "valid")
		return nil
	}
	return fmt.Errorf("figure has %d issue(s)", len(result.Issues))
}

func runDefault(ctx context.Context, env *runEnv, args []string) error {
	if len(args) != 0 {
		return &UsageError{Message: "default takes no arguments"}
	}
	f, err := env.svc.Default(ctx, env.gender("M"))
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, figure.Encode(f))
	return nil
}

func runRandom(ctx context.Context, env *runEnv, args []string) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	fs.SetOutput(env.errOut)
	seed := fs.Int64("seed", 0, "random seed (0 = random)")
	if err := fs.Parse(args); err != nil {
		return &UsageError{Message: err.Error()}
	}
	if fs.NArg() != 0 {
		return &UsageError{Message: "random takes no arguments"}
	}
	var seedPtr *int64
	if *seed != 0 {
		seedPtr = seed
	}
	f, err := env.svc.Random(ctx, env.gender("M"), env.cfg.Premium, seedPtr)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, figure.Encode(f))
	return nil
}

func runSet(ctx context.Context, env *runEnv, args []string) error {
	if len(args) < 2 {
		return &UsageError{Message: "set takes a figure and at least one part"}
	}
	ops := make([]service.Op, 0, len(args)-1)
	for _, token := range args[1:] {
		op, err := parsePartToken(token)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	result, err := env.svc.Edit(ctx, service.EditRequest{
		Figure:  args[0],
		Gender:  env.cfg.Gender,
		Premium: env.cfg.Premium,
		Ops:     ops,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, figure.Encode(result.Figure))
	return nil
}

// parsePartToken reads "family-part[-color[-color]]" into a set_part op.
func parsePartToken(token string) (service.Op, error) {
	fields := strings.Split(strings.TrimSpace(token), "-")
	if len(fields) < 2 || len(fields) > 4 || fields[0] == "" {
		return service.Op{}, &UsageError{Message: fmt.Sprintf("part %q must look like family-part[-color[-color]]", token)}
	}
	values := make([]int, len(fields)-1)
	for i, field := range fields[1:] {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return service.Op{}, &UsageError{Message: fmt.Sprintf("part %q has a non numeric field %q", token, field)}
		}
		values[i] = n
	}
	op := service.Op{Kind: service.OpSetPart, Family: fields[0], PartID: values[0]}
	if len(values) > 1 {
		op.Color = values[1]
	}
	if len(values) > 2 {
		op.SecondaryColor = values[2]
	}
	return op, nil
}

func runURL(ctx context.Context, env *runEnv, args []string) error {
	fs := flag.NewFlagSet("url", flag.ContinueOnError)
	fs.SetOutput(env.errOut)
	direction := fs.Int("direction", imaging.DefaultDirection, "body direction 0..7")
	headDirection := fs.Int("head-direction", imaging.DefaultDirection, "head direction 0..7")
	size := fs.String("size", imaging.DefaultSize, "image size s, m or l")
	action := fs.String("action", imaging.DefaultAction, "avatar action")
	gesture := fs.String("gesture", imaging.DefaultGesture, "avatar gesture")
	headOnly := fs.Bool("headonly", false, "render the head only")
	if err := fs.Parse(args); err != nil {
		return &UsageError{Message: err.Error()}
	}
	raw, err := oneFigure("url", fs.Args())
	if err != nil {
		return err
	}
	link, err := env.svc.ImageURL(ctx, service.ImageRequest{
		Request: imaging.Request{
			Figure:        raw,
			Gender:        env.cfg.Gender,
			Direction:     direction,
			HeadDirection: headDirection,
			Action:        *action,
			Gesture:       *gesture,
			Size:          *size,
			HeadOnly:      *headOnly,
		},
		Canonicalize: true,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(env.out, link)
	return nil
}

func printFigure(w io.Writer, f figure.Figure) {
	fmt.Fprintf(w, "%s (%s)\n", figure.Encode(f), f.Gender())
	for _, p := range f.Parts() {
		fmt.Fprintf(w, "  %s\t%d\t%d", p.Family, p.PartID, p.Color)
		if p.SecondaryColor != 0 {
			fmt.Fprintf(w, "\t%d", p.SecondaryColor)
		}
		fmt.Fprintln(w)
	}
}
