package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/adamwoolhether/modhttp"
	"github.com/adamwoolhether/modhttp/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg     *config.Config
	logger  *slog.Logger
	session *modhttp.Session
)

var rootCmd = &cobra.Command{
	Use:   "modfetch",
	Short: "Download mod files and archives",
	Long: `modfetch fetches mod files and zip archives over HTTP using the same
size caps and timeout as the mod loader, and checks GitHub for newer releases.

Settings come from a config file, MODHTTP_* environment variables and a
.env file in the working directory.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./modhttp.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "override log format (text, json)")

	rootCmd.AddCommand(fileCmd, zipCmd, checkCmd)
}

func initializeApp(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
	if err := config.Validate(cfg.Logging); err != nil {
		return fmt.Errorf("validating logging flags: %w", err)
	}

	logger = setupLogger(cmd.ErrOrStderr(), cfg.Logging)

	opts := []modhttp.Option{
		modhttp.WithLogger(logger),
		modhttp.WithTracer(otel.Tracer("modfetch")),
		modhttp.WithUserAgent(cfg.Client.UserAgent),
		modhttp.WithAccept(cfg.Client.Accept),
	}
	if cfg.Client.ThrottleRPS > 0 {
		opts = append(opts, modhttp.WithThrottle(cfg.Client.ThrottleRPS, cfg.Client.Burst))
	}

	session, err = modhttp.New(cfg.Download, opts...)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	return nil
}

func setupLogger(w io.Writer, lc config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// exitOnFailure turns a failed Result into a command error.
func exitOnFailure(res modhttp.Result) error {
	if res.OK() {
		return nil
	}

	return fmt.Errorf("%s: %w", res.Reason, res.Err)
}
