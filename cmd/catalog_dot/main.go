// Command catalog_dot loads a JSON book list into a catalog and prints the
// resulting search tree, either as Graphviz DOT or as the sorted JSON listing.
//
//	catalog_dot --books books.json | dot -Tsvg > catalog.svg
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/spf13/cobra"

	"library-catalog/library"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var books, format string
	cmd := &cobra.Command{
		Use:          "catalog_dot",
		Short:        "Print the catalog tree built from a book list",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gtrace.CoreTracer = gologadapter.New()
			gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
			return run(books, format, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&books, "books", "", "JSON book list (required)")
	cmd.Flags().StringVar(&format, "format", "dot", "output format: dot or json")
	_ = cmd.MarkFlagRequired("books")
	return cmd
}

func run(path, format string, out, errOut io.Writer) error {
	if format != "dot" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := library.ReadBookList(f)
	if err != nil {
		return err
	}
	catalog := library.NewCatalog()
	for _, e := range entries {
		catalog.Insert(e.ID, e.Title, e.Author)
	}
	if err := catalog.Check(); err != nil {
		return err
	}
	fmt.Fprintf(errOut, "Loaded %d books, tree height %d\n", catalog.Len(), catalog.Height())

	if format == "json" {
		return library.WriteJSON(out, catalog.DisplayAll())
	}
	return library.Catalog2Dot(catalog, out)
}
