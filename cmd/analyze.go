package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ChainSafe/pysniff/analyzer"
	"github.com/ChainSafe/pysniff/analyzer/linelength"
	"github.com/ChainSafe/pysniff/analyzer/runner"
	"github.com/ChainSafe/pysniff/analyzer/syntax"
	"github.com/ChainSafe/pysniff/profile"
	"github.com/ChainSafe/pysniff/pyparser/treesitter"
	"github.com/ChainSafe/pysniff/renderer"
	"github.com/ChainSafe/pysniff/source"
	"github.com/urfave/cli/v2"
)

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the lint profile. Default: nearest .pysniff.yaml above the first path",
		Required: false,
	}
	MaxLineLengthFlag = &cli.IntFlag{
		Name:     "max-line-length",
		Usage:    "Maximum number of characters per line, overrides the profile",
		EnvVars:  []string{"PYSNIFF_MAX_LINE_LENGTH"},
		Required: false,
	}
	StrictFlag = &cli.BoolFlag{
		Name:     "strict",
		Usage:    "look for uses of imports and variables in the whole enclosing function or module",
		EnvVars:  []string{"PYSNIFF_STRICT"},
		Required: false,
	}
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: json, text",
		Value:    "text",
		Required: false,
	}
	ReportOutputPathFlag = &cli.PathFlag{
		Name:     "report-output-path",
		Usage:    "output file path for report. Default: stdout",
		Required: false,
	}
	NoColorFlag = &cli.BoolFlag{
		Name:     "no-color",
		Usage:    "disable styled output",
		EnvVars:  []string{"PYSNIFF_NO_COLOR"},
		Required: false,
	}
	VerboseFlag = &cli.BoolFlag{
		Name:     "verbose",
		Usage:    "enable debug logging",
		EnvVars:  []string{"PYSNIFF_VERBOSE"},
		Required: false,
	}
)

func CreateAnalyzeCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Lints Python files and directories",
		ArgsUsage:   "<path>...",
		Description: "Reports missing docstrings, unused or wildcard imports, unused variables and long lines",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			MaxLineLengthFlag,
			StrictFlag,
			FormatFlag,
			ReportOutputPathFlag,
			NoColorFlag,
			VerboseFlag,
		},
	}
}

var AnalyzeCommand = CreateAnalyzeCommand(AnalyzeSources)

func AnalyzeSources(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("no path given")
	}
	paths := ctx.Args().Slice()
	logger := newLogger(ctx.App.ErrWriter, ctx.Bool(VerboseFlag.Name))

	prof, err := loadProfile(ctx, paths[0], logger)
	if err != nil {
		return fmt.Errorf("error loading profile: %w", err)
	}

	render, ok := renderer.New(ctx.String(FormatFlag.Name), !ctx.Bool(NoColorFlag.Name))
	if !ok {
		return fmt.Errorf("invalid format: %s", ctx.String(FormatFlag.Name))
	}

	discovery := &source.Discovery{Extensions: prof.Extensions, Exclude: prof.Exclude}
	files, err := discovery.DiscoverAll(paths)
	if err != nil {
		return fmt.Errorf("unable to list sources: %w", err)
	}
	logger.Debug("discovered files", slog.Int("count", len(files)))

	run := runner.New(logger,
		syntax.NewAnalyser(prof, treesitter.NewParser()),
		linelength.NewAnalyser(prof),
	)
	reports, err := run.AnalyzeFiles(ctx.Context, files)
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	if err := writeReport(reports, render, ctx.Path(ReportOutputPathFlag.Name), ctx.App.Writer); err != nil {
		return fmt.Errorf("unable to write report: %w", err)
	}
	return failures(reports)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadProfile reads the profile named by the flag or found next to target,
// then applies the flag overrides.
func loadProfile(ctx *cli.Context, target string, logger *slog.Logger) (*profile.LintProfile, error) {
	path := ctx.Path(ProfileFlag.Name)
	if path == "" {
		found, err := profile.Discover(target)
		if err != nil {
			return nil, err
		}
		path = found
	}

	prof := profile.Default()
	if path != "" {
		logger.Debug("using profile", slog.String("path", path))
		loaded, err := profile.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		prof = loaded
	}

	if ctx.IsSet(MaxLineLengthFlag.Name) {
		prof.MaxLineLength = ctx.Int(MaxLineLengthFlag.Name)
	}
	if ctx.IsSet(StrictFlag.Name) {
		prof.StrictUsage = ctx.Bool(StrictFlag.Name)
	}
	return prof, prof.Validate()
}

// writeReport outputs the reports to outputPath, or to stdout when empty.
func writeReport(reports []*analyzer.Report, render renderer.Renderer, outputPath string, stdout io.Writer) error {
	output := stdout
	if output == nil {
		output = os.Stdout
	}
	if outputPath != "" {
		absPath, err := filepath.Abs(outputPath)
		if err != nil {
			return fmt.Errorf("unable to determine absolute path: %w", err)
		}
		file, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("unable to open output file: %w", err)
		}
		defer func() {
			_ = file.Close()
		}()
		output = file
	}

	return render.Render(reports, output)
}

func failures(reports []*analyzer.Report) error {
	failed := 0
	for _, report := range reports {
		if report.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be analyzed", failed, len(reports))
	}
	return nil
}
