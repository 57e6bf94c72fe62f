package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/alekLukanen/dsutils/config"
	"github.com/alekLukanen/errs"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "dsutils",
		Short: "Data preparation utilities",
		Long: `dsutils loads a tabular dataset from a delimited or parquet file,
locally or from s3://bucket/key, and either splits it into training and
testing sets or reports the missing values of every column.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a yaml config file (default ./"+config.DefaultConfigFileName+" when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newSplitCmd(opts),
		newNullsCmd(opts),
	)
	return cmd
}

/*
* Loads the config file named by --config, or the default file when it
* exists, then applies .env and environment overrides.
 */
func (obj *rootOptions) loadConfig() (*config.Config, error) {
	configPath := obj.configPath
	explicit := configPath != ""
	if !explicit {
		configPath = config.DefaultConfigFileName
	}

	cfg, err := config.Load(configPath)
	if errors.Is(err, config.ErrConfigNotFound) && !explicit {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	cfg.LoadEnv()
	if obj.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(
		slog.NewJSONHandler(
			w, &slog.HandlerOptions{Level: level},
		),
	)
}

func logError(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, slog.String("error", errs.ErrorWithStack(err)))
	return err
}

// setup returns the config and a logger writing to the command's stderr.
func (obj *rootOptions) setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := obj.loadConfig()
	if err != nil {
		logger := newLogger(cmd.ErrOrStderr(), config.Default())
		return nil, nil, logError(logger, "unable to load config", err)
	}
	return cfg, newLogger(cmd.ErrOrStderr(), cfg), nil
}
