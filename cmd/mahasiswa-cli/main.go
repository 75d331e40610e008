// Command mahasiswa-cli is the interactive console client for student
// records kept behind the mahasiswa HTTP API.
//
// Usage:
//
//	mahasiswa-cli [--config PATH] [--api-url URL]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aanand-mishra/mahasiswa/internal/client"
	"github.com/aanand-mishra/mahasiswa/internal/config"
	"github.com/aanand-mishra/mahasiswa/internal/console"
	"github.com/aanand-mishra/mahasiswa/internal/logger"
	"github.com/aanand-mishra/mahasiswa/internal/menu"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
)

// version is set with ldflags at build time.
var version = "dev"

func main() {
	var (
		configPath string
		apiURL     string
	)

	rootCmd := &cobra.Command{
		Use:           "mahasiswa-cli",
		Short:         "Manage student records from the terminal",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, apiURL, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config file (default $CONFIG_PATH)")
	rootCmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL, overrides api.base_url")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run builds the App and drives it. Every error it returns happens before
// the menu starts, except an unreadable input stream.
func run(ctx context.Context, configPath, apiURL string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	logOut := io.Writer(os.Stderr)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := logger.Setup(cfg.Env, logOut)

	msg, err := messages.New(cfg.Locale)
	if err != nil {
		return err
	}

	c, err := client.New(cfg.API, log)
	if err != nil {
		log.Error("failed to initialise api client", slog.String("error", err.Error()))
		return err
	}

	log.Info("starting mahasiswa-cli",
		slog.String("env", cfg.Env),
		slog.String("version", version),
		slog.String("api", c.BaseURL()),
		slog.String("locale", msg.Locale()),
	)

	app := menu.New(c, console.New(in, out), msg, log)
	return app.Run(ctx)
}
