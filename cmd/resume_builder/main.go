// Package main provides the resume_builder CLI: the HTTP editing server, preview
// rendering, PDF export, and an interactive assistant chat.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume_builder"

var (
	// Used for flags.
	cfgFile string

	v = viper.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "Interactive resume builder with an AI assistant",
		Long: "resume_builder edits a structured resume, previews it in a modern or classic template, " +
			"exports paginated A4 PDFs, and lets an assistant update the resume through conversation.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is resume-builder.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("document", "", "resume file to load (.json, .yaml, .yml)")
	rootCmd.PersistentFlags().String("seed", "", "starting document when no file is given (empty, example)")
	rootCmd.PersistentFlags().String("provider", "", "assistant model provider (gemini, anthropic)")
	rootCmd.PersistentFlags().String("model", "", "assistant model override")
	rootCmd.PersistentFlags().String("api-key", "", "model API key (overrides GEMINI_API_KEY / ANTHROPIC_API_KEY)")

	bindFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	bindFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
	bindFlag("document.path", rootCmd.PersistentFlags().Lookup("document"))
	bindFlag("document.seed", rootCmd.PersistentFlags().Lookup("seed"))
	bindFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	bindFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))
	bindFlag("llm.api_key", rootCmd.PersistentFlags().Lookup("api-key"))
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
