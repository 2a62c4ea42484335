package main

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <name> <path>",
	Short: "Write a starting document to a file",
	Long: fmt.Sprintf(`Write one of the bundled starting documents (%s) to path. The format follows the
file extension (.json, .yaml, .yml). Edit the file and pass it back with --document.`,
		strings.Join(seed.Names(), ", ")),
	Args: cobra.ExactArgs(2),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Bool("force", false, "Overwrite an existing file")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	doc, err := seed.ByName(name)
	if err != nil {
		return err
	}

	if force, _ := cmd.Flags().GetBool("force"); !force && fileExists(path) {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := resumefile.Save(path, doc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s seed to %s\n", name, path)
	return nil
}
