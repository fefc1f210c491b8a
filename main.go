package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/multierr"

	"isoedit/config"
	"isoedit/diagram"
	"isoedit/editor"
	"isoedit/export"
	"isoedit/importer"
	"isoedit/logging"
	"isoedit/markdown"
	"isoedit/terminal"
	"isoedit/validation"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	fixStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Edit the diagram in the terminal")
		validate    = flag.Bool("validate", false, "Report load-time fixes and validation issues")
		readonly    = flag.Bool("readonly", false, "Open the terminal editor in explorable read-only mode")
		debug       = flag.Bool("debug", false, "Log debug output to stderr")
		configFile  = flag.String("config", "", "YAML configuration file")
		format      = flag.String("format", "json", "Export format: json, png")
		outputFile  = flag.String("o", "", "Output file (default: stdout)")
		viewID      = flag.String("view", "", "View to export or edit (default: first view)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [diagram.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An isometric diagram editor and exporter.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                             # Edit a new diagram\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i network.json             # Edit a diagram, Ctrl+S saves\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -validate network.json      # Check a diagram\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o out.png network.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTerminal keys:\n")
		fmt.Fprintf(os.Stderr, "  1-8 select tools, Esc cancels, Delete removes, arrows nudge\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+Z/Ctrl+Y undo and redo, Ctrl+C/Ctrl+V copy and paste\n")
		fmt.Fprintf(os.Stderr, "  Ctrl+S saves, Ctrl+Q quits\n")
	}

	flag.Parse()

	var filename string
	if args := flag.Args(); len(args) > 0 {
		filename = args[0]
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	edit := *interactive || (filename == "" && !*validate)
	setupLogging(*debug, edit)

	if *validate {
		if filename == "" {
			fmt.Fprintf(os.Stderr, "Error: -validate needs a diagram file\n")
			os.Exit(1)
		}
		if !runValidation(os.Stdout, filename) {
			os.Exit(1)
		}
		return
	}

	if edit {
		opts := cfg.EditorOptions()
		opts.ViewID = *viewID
		if *readonly {
			opts.EditorMode = editor.ExplorableReadonly
		}
		if err := runInteractive(filename, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m, err := loadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading diagram: %v\n", err)
		os.Exit(1)
	}
	if err := runExport(m, cfg, *format, *viewID, *outputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging logs warnings to stderr, or everything with -debug. The
// terminal editor owns stderr, so it only logs when asked to.
func setupLogging(debug, interactive bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	} else if interactive {
		return
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// runValidation prints a report for filename and reports whether it loaded.
func runValidation(w io.Writer, filename string) bool {
	fmt.Fprintln(w, headingStyle.Render("Validating "+filename))

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(w, errStyle.Render("✗ "+err.Error()))
		return false
	}

	if isMarkdown(filename) {
		blocks := markdown.NewScanner(string(data)).FindBlocks()
		if len(blocks) == 0 {
			fmt.Fprintln(w, errStyle.Render("✗ no "+markdown.Language+" block found"))
			return false
		}
		data = []byte(blocks[0].Content)
	}

	m, fixes, err := importer.LoadWithFixes(data)
	if err != nil {
		var loadErr *importer.LoadError
		if errors.As(err, &loadErr) {
			fmt.Fprintln(w, errStyle.Render(fmt.Sprintf("✗ %d issue(s) prevent loading:", len(loadErr.Issues))))
		} else {
			fmt.Fprintln(w, errStyle.Render("✗ could not load:"))
		}
		for _, e := range multierr.Errors(err) {
			fmt.Fprintln(w, "  "+e.Error())
		}
		return false
	}

	for _, fix := range fixes {
		fmt.Fprintln(w, fixStyle.Render("! fixed: ")+fix.String())
	}
	if remaining := validation.ValidateModel(m); len(remaining) > 0 {
		for _, issue := range remaining {
			fmt.Fprintln(w, errStyle.Render("✗ ")+issue.String())
		}
		return false
	}

	summary := fmt.Sprintf("✓ %q is valid", m.Title)
	fmt.Fprintln(w, okStyle.Render(summary)+" "+faintStyle.Render(
		fmt.Sprintf("(%d item(s), %d view(s), %d fix(es))", len(m.Items), len(m.Views), len(fixes))))
	return true
}

func runExport(m *diagram.Model, cfg *config.Config, format, viewID, outputFile string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	var exporter export.Exporter
	if f == export.FormatPNG {
		exporter = export.NewPNGExporter(cfg.PNGOptions(viewID))
	} else if exporter, err = export.NewExporter(f); err != nil {
		return err
	}

	data, err := exporter.Export(m)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", exporter.GetFormatName(), err)
	}
	if outputFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

func runInteractive(filename string, opts editor.Options) error {
	m, doc, err := openDocument(filename)
	if err != nil {
		return err
	}
	ed, err := editor.New(m, opts)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	var onSave func(*diagram.Model) error
	if filename != "" {
		onSave = doc.save
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = terminal.Run(ctx, screen, ed, terminal.Options{OnSave: onSave})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
