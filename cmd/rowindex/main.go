package main

import (
	"os"

	"rowindex/pkg/config"
	"rowindex/pkg/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	dataPath    string
	showMetrics bool

	cfg    *config.Config
	logger zerolog.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rowindex",
		Short:         "Build in-memory indexes over records and query them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger = logging.New(logging.Options{
				Level:  cfg.Log.Level,
				Pretty: cfg.Log.Pretty,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: configs/rowindex.yaml or rowindex.yaml)")
	root.PersistentFlags().StringVar(&dataPath, "data", "", "YAML list of persons (default: built-in sample)")
	root.PersistentFlags().BoolVar(&showMetrics, "metrics", false, "print index metrics after the command")

	root.AddCommand(newExampleCmd(), newLookupCmd(), newDumpCmd(), newDowngradeCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		l := logging.New(logging.Options{Out: os.Stderr})
		l.Error().Err(err).Msg("rowindex failed")
		os.Exit(1)
	}
}
