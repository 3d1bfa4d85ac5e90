package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/build"
	"github.com/fwojciec/docset/etree"
	"github.com/fwojciec/docset/fs"
	"github.com/fwojciec/docset/goquery"
	"github.com/fwojciec/docset/lipgloss"
	"github.com/fwojciec/docset/png"
	dsslog "github.com/fwojciec/docset/slog"
	"github.com/fwojciec/docset/sqlite"
	"github.com/fwojciec/docset/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		lipgloss.NewPrinter(os.Stderr).Error(errorText(err))
		os.Exit(2)
	}
}

// errorText returns the message of application errors and the full text of
// anything else, such as flag parsing errors.
func errorText(err error) string {
	var e *docset.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docset"),
		kong.Description("Generate a Dash/Zeal docset from a static HTML documentation tree"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no source directory specified. Run 'docset --help' for usage")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.resolveConfig()
	if err != nil {
		return err
	}

	printer := lipgloss.NewPrinter(stdout)

	version, ok := docset.ParseVersion(cfg.Version)
	if !ok {
		printer.Warning("docset version must be a non-negative number (default version " + docset.DefaultVersion + " will be used)")
	}
	d := cfg.Docset()
	d.Version = version

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire dependencies
	copier := dsslog.NewLoggingCopier(fs.NewCopier(fs.WithJobs(cfg.Jobs), fs.WithVerify(cfg.Verify)), logger)
	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Printer: printer,
		Builder: &build.Builder{
			Indexer: &build.Indexer{
				Opener:    dsslog.NewLoggingIndexOpener(sqlite.NewOpener(), logger),
				Extractor: goquery.NewEntryExtractor(docset.IndexFile),
				Logger:    logger,
			},
			Copier:    copier,
			InfoPlist: etree.NewInfoPlistWriter(),
			Meta:      fs.NewMetaWriter(),
			Icons:     png.NewIconValidator(),
			Workspace: fs.NewWorkspace(),
			Reporter:  printer,
			Logger:    logger,
		},
	}

	cmd := &BuildCmd{
		Docset: d,
		Request: build.Request{
			Source:      cli.Source,
			Destination: cfg.Destination,
			Icon:        cfg.Icon,
		},
	}

	return cmd.Run(deps)
}

// resolveConfig merges the optional config file and the flags over the
// defaults. Flags take precedence over the file.
func (c *CLI) resolveConfig() (*docset.Config, error) {
	cfg := docset.DefaultConfig()

	if c.Config != "" {
		fileCfg, err := yaml.LoadConfig(c.Config)
		if err != nil {
			return nil, err
		}
		cfg.Merge(fileCfg)
	}

	cfg.Merge(&docset.Config{
		Name:        c.Name,
		Destination: c.Destination,
		Icon:        c.Icon,
		IndexPage:   c.IndexPage,
		Version:     c.Version,
		Keywords:    c.Keywords,
		Jobs:        c.Jobs,
		Verify:      c.Verify,
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		name, err := sourceName(c.Source)
		if err != nil {
			return nil, err
		}
		cfg.Name = name
	}
	return cfg, nil
}

// sourceName returns the base name of the source directory, ignoring any
// trailing separator.
func sourceName(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", docset.Errorf(docset.EINVALID, "invalid source path %q: %v", source, err)
	}
	name := filepath.Base(abs)
	if name == string(filepath.Separator) || name == "." {
		return "", docset.Errorf(docset.EINVALID, "cannot derive a docset name from %q, use --name", source)
	}
	return name, nil
}
