package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library-catalog/library"
)

// options collects the command-line configuration.
type options struct {
	books     string
	noSeed    bool
	noJournal bool
	noColor   bool
	trace     string
}

func (o options) libraryConfig() library.Config {
	cfg := library.DefaultConfig()
	cfg.SeedUsers = !o.noSeed
	if o.noJournal {
		cfg.JournalDSN = ""
	}
	return cfg
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "library",
		Short:        "In-memory library catalog with borrow and return",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLibrary(cmd, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.books, "books", "", "JSON book list to load on start")
	flags.BoolVar(&opts.noSeed, "no-seed", false, "start without the seed users 101, 102 and 103")
	flags.BoolVar(&opts.noJournal, "no-journal", false, "do not journal loans")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	flags.StringVar(&opts.trace, "trace", "error", "trace level: error, info or debug")
	return cmd
}

func setupTracing(level string) error {
	gtrace.CoreTracer = gologadapter.New()
	switch strings.ToLower(level) {
	case "error":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	case "info":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	case "debug":
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	return nil
}

func runLibrary(cmd *cobra.Command, opts options) error {
	if err := setupTracing(opts.trace); err != nil {
		return err
	}
	if opts.noColor {
		color.NoColor = true
	}

	mgr, err := library.NewLibraryManager(opts.libraryConfig())
	if err != nil {
		return fmt.Errorf("start library: %w", err)
	}
	defer mgr.Close()

	if opts.books != "" {
		f, err := os.Open(filepath.Clean(opts.books))
		if err != nil {
			return err
		}
		_, err = mgr.LoadBooks(f)
		f.Close()
		if err != nil {
			return err
		}
	}

	sh := newShell(cmd.InOrStdin(), cmd.OutOrStdout(), mgr)
	sh.prompts = isTerminal(cmd.InOrStdin())
	sh.run()
	return nil
}

// isTerminal reports whether the shell's input is an interactive terminal.
func isTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
