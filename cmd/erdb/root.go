package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/EldenRingDatabase/erdb-sub000/internal/config"
)

const DefaultConfigPath = "config/erdb.yaml"

// app carries state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Generator
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "erdb",
		Short:         "Effect synthesis and armament attack power",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	defaultPath := DefaultConfigPath
	if p := os.Getenv("ERDB_CONFIG"); p != "" {
		defaultPath = p
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultPath, "Config file (or set ERDB_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	root.AddCommand(
		newEffectsCmd(a),
		newAttackCmd(a),
		newBatchCmd(a),
		newMigrateCmd(a),
	)
	return root
}

// setup loads the config and configures slog.
func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.LoadGenerator(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", a.configPath, "tables", cfg.TablesPath, "effects", cfg.EffectsPath)
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
