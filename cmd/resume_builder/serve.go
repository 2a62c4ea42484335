package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the resume editing API server",
	Long: `Start an HTTP server that exposes the document editing operations, live preview,
PDF export and the assistant chat over REST and server-sent events.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().Bool("no-export", false, "Disable the PDF export endpoint")
	bindFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApplication(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	var printer export.Printer
	if noExport, _ := cmd.Flags().GetBool("no-export"); !noExport {
		printer, err = a.printer("")
		if err != nil {
			return fmt.Errorf("failed to create printer: %w", err)
		}
	}

	cfg := server.Config{
		Port: a.cfg.Server.Port,
		RateLimit: ratelimit.NewConfig(a.cfg.RateLimit.Enabled,
			a.cfg.RateLimit.ChatPerMinute, a.cfg.RateLimit.Burst),
	}
	srv := server.New(cfg, a.session, printer, a.logger.Named("server"))

	a.logger.Info("resume builder ready",
		zap.Int("port", cfg.Port),
		zap.String("template", string(a.session.Document().Template)),
		zap.Bool("assistant", a.model != nil))

	return srv.Run(ctx)
}
