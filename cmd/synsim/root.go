package main

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cognicore/synsim/internal/logging"
	"github.com/cognicore/synsim/pkg/synsim/config"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "synsim",
		Short: "Distributional word similarity and synonym tests",
		Long: `synsim builds a PPMI word-similarity model from a text corpus and uses it
to answer multiple-choice synonym questions.

Examples:
  synsim run --config synsim.yaml
  synsim run --config synsim.yaml --window 2 --report out/report.json
  synsim similar --config synsim.yaml cat dog mat
  synsim runs --ledger runs.db`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format: text or json (overrides config)")

	cmd.AddCommand(newRunCmd(g), newSimilarCmd(g), newRunsCmd())
	return cmd
}

// loadConfig reads the config file and applies the global overrides.
func (g *globalOptions) loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	return cfg, nil
}

func (g *globalOptions) logger(cfg *config.Config, out io.Writer) *logrus.Logger {
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: out,
	})
}
