package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-studio/internal/editor"
	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/observability"
	"github.com/jonathan/resume-studio/internal/rendering"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	serveResume      string
	serveHost        string
	servePort        int
	serveAllowOrigin string
	serveNoRateLimit bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor server",
	Long: `Load the résumé document and serve the editor page and its API.
The document is loaded before the server accepts requests; a document that fails
to load stops the command.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveResume, "resume", "r", "", "Path or URL of resume.json (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveAllowOrigin, "allow-origin", "", "Send CORS headers for this origin")
	serveCmd.Flags().BoolVar(&serveNoRateLimit, "no-rate-limit", false, "Disable per-client rate limiting")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := resumeSource(serveResume)
	doc, err := loadDocument(ctx, source)
	if err != nil {
		log.Printf("[serve] failed to load %s: %v", source, err)
		return err
	}
	if cfg.Verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintDocument(doc)
		p.PrintLayout(doc)
	}

	renderer, err := rendering.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	var limits *ratelimit.Config
	if !serveNoRateLimit {
		limits = ratelimit.LoadConfig()
	}

	srv := server.New(server.Config{
		Addr: cfg.Addr(),
		PDF: export.PDFOptions{
			Timeout:  cfg.Timeout(),
			ExecPath: cfg.ChromePath,
			Verbose:  cfg.Verbose,
		},
		PDFConcurrency: int64(cfg.PDFConcurrency),
		RateLimit:      limits,
		AllowOrigin:    serveAllowOrigin,
	}, editor.New(doc, renderer))

	return srv.Start(ctx)
}
