package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/classview/internal/cli/config"
	"github.com/conduit-lang/classview/internal/cli/ui"
	"github.com/conduit-lang/classview/internal/logging"
	"github.com/conduit-lang/classview/internal/snapshot"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// loadConfig loads the file named by --config, or ./classview.yaml.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), noColor))
		return nil, errReported
	}
	return cfg, nil
}

// newLogger builds the server logger from the log section. --verbose forces
// debug.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	lc := cfg.Log.Logging()
	if verbose {
		lc.Level = "debug"
	}
	return logging.New(lc)
}

// newCLILogger is the logger for one-shot commands, which report problems
// themselves. --verbose turns on debug output to stderr.
func newCLILogger(cfg *config.Config) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	lc := cfg.Log.Logging()
	lc.Format = "console"
	lc.Level = "debug"
	return logging.New(lc)
}

func newStore(cfg *config.Config, logger *zap.Logger) *snapshot.Store {
	return snapshot.NewStore(snapshot.Options{
		Paths:  cfg.Data.Paths(),
		TTL:    cfg.Snapshot.TTL,
		Strict: cfg.Snapshot.Strict,
		Query:  cfg.Query.Options(),
		Logger: logger,
	})
}

// loadSnapshot loads the config and builds a single snapshot for a one-shot
// command.
func loadSnapshot(cmd *cobra.Command) (*config.Config, *snapshot.Snapshot, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	snap, err := buildSnapshot(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, snap, nil
}

func buildSnapshot(cmd *cobra.Command, cfg *config.Config) (*snapshot.Snapshot, error) {
	logger, err := newCLILogger(cfg)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return newStore(cfg, logger).Get(cmd.Context())
}

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, table)", format)
	}
}
