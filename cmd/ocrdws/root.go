package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fbkclanna/ocrdws/internal/config"
	"github.com/fbkclanna/ocrdws/internal/resolver"
	"github.com/fbkclanna/ocrdws/internal/workspace"
	"github.com/fbkclanna/ocrdws/internal/xmllint"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ocrdws",
		Short:         "Manage METS-backed OCR processing workspaces",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("directory", "d", ".", "Workspace directory")
	cmd.PersistentFlags().String("config", "", "Config file (default <directory>/"+config.FileName+")")
	cmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newListCmd(),
		newGroupsCmd(),
		newDownloadCmd(),
		newPersistCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// session bundles what every workspace command needs.
type session struct {
	ws     *workspace.Workspace
	logger *slog.Logger
	lint   *xmllint.Formatter
}

// openSession loads the config, builds the logger and resolver, and opens
// the workspace named by --directory. extra options are applied last.
func openSession(cmd *cobra.Command, extra ...workspace.Option) (*session, error) {
	dir, _ := cmd.Flags().GetString("directory")
	cfgPath := configPath(cmd)

	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("config loaded", "path", cfgPath, "jobs", cfg.Jobs, "pretty", cfg.Pretty)

	r := resolver.New(resolver.Config{
		Timeout:        cfg.HTTP.Timeout,
		RetryMax:       cfg.HTTP.EffectiveRetryMax(),
		S3Region:       cfg.S3.Region,
		S3Endpoint:     cfg.S3.Endpoint,
		S3UsePathStyle: cfg.S3.UsePathStyle,
		Logger:         logger,
	})

	lint := xmllint.New(cfg.Xmllint.Path)
	opts := []workspace.Option{
		workspace.WithLogger(logger),
		workspace.WithFormatter(lint),
		workspace.WithPretty(cfg.Pretty),
		workspace.WithJobs(cfg.Jobs),
	}
	ws, err := workspace.Open(dir, r, append(opts, extra...)...)
	if err != nil {
		return nil, err
	}
	return &session{ws: ws, logger: logger, lint: lint}, nil
}

// configPath returns --config, or the config file inside --directory.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	dir, _ := cmd.Flags().GetString("directory")
	return filepath.Join(dir, config.FileName)
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", levelName, err)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
