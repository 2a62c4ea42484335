package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume as an A4 PDF",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "resume.pdf", "Output PDF path")
	exportCmd.Flags().String("engine", "", fmt.Sprintf("Export engine %v (default from config)", export.Engines))
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	a, err := newApplication(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	out, _ := cmd.Flags().GetString("out")
	engine, _ := cmd.Flags().GetString("engine")

	printer, err := a.printer(engine)
	if err != nil {
		return err
	}

	tree, rev := a.session.Tree("")
	pdf, err := printer.Print(cmd.Context(), tree)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	a.logger.Info("exported resume",
		zap.String("path", out),
		zap.Int("bytes", len(pdf)),
		zap.Uint64("revision", rev))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
	return nil
}
