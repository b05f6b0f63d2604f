package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/server"
	"github.com/osa911/contactform/internal/service"
	"github.com/osa911/contactform/internal/tasks"
	"github.com/osa911/contactform/internal/telemetry"
	"github.com/osa911/contactform/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "contactform",
		Short: "Contact form API",
		Long: `Contact form API accepts contact submissions over HTTP, rate-limits each client
and forwards every accepted submission as an email through Brevo.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newVersionCmd(),
		newCheckConfigCmd(),
		newSendTestCmd(),
	)
	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Configure(cfg.Logging())
	logger := logging.GetLogger()
	defer logger.Close()

	logger.Info("Starting contact form API %s in %s mode", version.Info(), cfg.Environment)

	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("Tracer shutdown: %v", err)
		}
	}()

	limiter, err := ratelimit.New(cfg.RateLimitPolicy())
	if err != nil {
		return &config.ConfigError{Err: err}
	}
	if cfg.RateLimitRequests <= 0 {
		logger.Warn("RATE_LIMIT_REQUESTS=%d rejects every contact submission", cfg.RateLimitRequests)
	}
	logger.Info("Rate limit: %s per client (in-memory, per process)", limiter.Policy())

	dispatcher, err := newDispatcher(cfg)
	if err != nil {
		return err
	}

	tasks.NewLimiterCleanup(limiter, cfg.RateLimitCleanupInterval, logger).Start(ctx)

	srv, err := server.NewServer(cfg, logger, server.Dependencies{
		Limiter:    limiter,
		Dispatcher: dispatcher,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

func newDispatcher(cfg *config.Config) (*service.BrevoService, error) {
	dispatcher, err := service.NewBrevoService(service.BrevoConfig{
		APIKey:         cfg.BrevoAPIKey,
		BaseURL:        cfg.BrevoAPIURL,
		SenderEmail:    cfg.SenderEmail,
		SenderName:     cfg.SenderName,
		RecipientEmail: cfg.RecipientEmail,
		SendRate:       cfg.BrevoSendRate,
		SendBurst:      cfg.BrevoSendBurst,
	})
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}
	return dispatcher, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetBuildInfo()
			fmt.Fprintf(cmd.OutOrStdout(), "contactform %s\n", version.Info())
			fmt.Fprintf(cmd.OutOrStdout(), "go %s %s\n", info.GoVersion, info.Platform)
		},
	}
}

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate configuration and print it with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printConfig(w io.Writer, cfg *config.Config) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kv := range cfg.Redacted() {
		fmt.Fprintf(tw, "%s\t%s\n", kv[0], kv[1])
	}
	tw.Flush()
}

func newSendTestCmd() *cobra.Command {
	msg := &service.ContactMessage{}

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Send one test submission through Brevo",
		Long: `Send one contact message straight through the configured Brevo account,
bypassing the HTTP layer and the rate limiter. Useful to verify the sender address.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dispatcher, err := newDispatcher(cfg)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.DispatchTimeout)
			defer cancel()

			s := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Suffix = " Sending test email via Brevo..."
			s.Start()
			messageID, err := dispatcher.SendContactEmail(ctx, msg)
			s.Stop()

			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent to %s (message id %s)\n", cfg.RecipientEmail, messageID)
			return nil
		},
	}

	cmd.Flags().StringVar(&msg.Name, "name", "Contact Form Test", "Sender name")
	cmd.Flags().StringVar(&msg.Email, "email", "test@example.com", "Reply-to address")
	cmd.Flags().StringVar(&msg.Subject, "subject", "Test message", "Subject")
	cmd.Flags().StringVar(&msg.Message, "message", "This is a test message from the contact form API.", "Message body")
	return cmd
}
