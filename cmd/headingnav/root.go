package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/headingnav/internal/doctree"
	"github.com/dgallion1/headingnav/internal/outline"
	"github.com/dgallion1/headingnav/internal/parser"
	"github.com/dgallion1/headingnav/internal/site"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "headingnav",
		Short:         "Extract navigable heading outlines from notes and posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newOutlineCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "headingnav", version)
		},
	}
}

func newOutlineCmd() *cobra.Command {
	var (
		selector string
		format   string
	)
	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Print the heading outline of a Markdown, MDX, HTML or text file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := outline.ParseSelector(selector)
			if err != nil {
				return err
			}
			if format != "json" && format != "markdown" {
				return fmt.Errorf("invalid format %q: must be json or markdown", format)
			}
			doc, o, err := outlineFile(args[0], sel)
			if err != nil {
				return err
			}
			return writeOutline(cmd.OutOrStdout(), format, doc.Title, o)
		},
	}
	cmd.Flags().StringVar(&selector, "selector", parser.ContainerTag, "content container selector")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or markdown")
	return cmd
}

func outlineFile(path string, sel outline.Selector) (*doctree.Document, doctree.Outline, error) {
	p, err := parser.ForFile(path, sel)
	if err != nil {
		return nil, doctree.Outline{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, doctree.Outline{}, err
	}
	defer f.Close()

	doc, err := p.Parse(f, filepath.Base(path))
	if err != nil {
		return nil, doctree.Outline{}, fmt.Errorf("parse %s: %w", path, err)
	}
	o, _, err := outline.ExtractDocument(doc, sel)
	if err != nil {
		return nil, doctree.Outline{}, err
	}
	return doc, o, nil
}

func writeOutline(w io.Writer, format, title string, o doctree.Outline) error {
	if format == "markdown" {
		return site.WriteMarkdown(w, title, o.Entries)
	}
	entries := o.Entries
	if entries == nil {
		entries = []doctree.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"title":   title,
		"entries": entries,
	})
}
