package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/spf13/cobra"
)

// Render output formats
const (
	formatText = "text"
	formatHTML = "html"
	formatJSON = "json"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume preview",
	Long:  `Render the current document with its template and print it as a text preview, a standalone HTML page or the JSON render tree.`,
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringP("format", "f", formatText, "Output format (text, html, json)")
	renderCmd.Flags().StringP("template", "t", "", "Template override (modern, classic)")
	renderCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	a, err := newApplication(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	format, _ := cmd.Flags().GetString("format")
	tmpl, _ := cmd.Flags().GetString("template")
	out, _ := cmd.Flags().GetString("out")

	if tmpl != "" && !types.Template(tmpl).Selectable() {
		return fmt.Errorf("unknown template %q (use modern or classic)", tmpl)
	}
	tree, _ := a.session.Tree(types.Template(tmpl))

	w := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return writeTree(w, tree, format)
}

func writeTree(w io.Writer, tree rendering.Tree, format string) error {
	switch format {
	case formatText:
		observability.NewPrinter(w).PrintTree(tree)
		return nil
	case formatHTML:
		return rendering.RenderHTML(w, tree)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	default:
		return fmt.Errorf("unknown format %q (use text, html or json)", format)
	}
}
