// Package cli provides trasladoctl, an operator tool that drives a running
// email service over HTTP.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/traslado/internal/notify"
)

// Version information set at build time.
var Version = "dev"

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer

	serviceURL string
	adminEmail string
	timeout    time.Duration
	verbose    bool
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "trasladoctl",
		Short: "Send and verify reservation emails",
		Long: `trasladoctl calls a running email service to send templated
reservation emails, fire notification batches and check the mail transport.

The service URL defaults to EMAIL_SERVICE_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := app.root.PersistentFlags()
	flags.StringVar(&app.serviceURL, "url", envOr("EMAIL_SERVICE_URL", "http://localhost:8080"), "Email service base URL")
	flags.StringVar(&app.adminEmail, "admin-email", envOr("ADMIN_EMAIL", notify.DefaultAdminEmail), "Recipient of admin alerts")
	flags.DurationVar(&app.timeout, "timeout", notify.DefaultClientTimeout, "Per-request timeout")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Log requests to stderr")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newSendCmd(),
		app.newNotifyCmd(),
		app.newVerifyCmd(),
		app.newTemplatesCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "trasladoctl version %s\n", Version)
		},
	}
}

func (a *App) logger() *slog.Logger {
	level := slog.LevelError
	if a.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
}

func (a *App) client() *notify.Client {
	return notify.NewClient(a.serviceURL, &http.Client{Timeout: a.timeout}, a.logger())
}

// printJSON writes v indented to stdout.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
