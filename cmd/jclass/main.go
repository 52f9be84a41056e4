package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jclass/config"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var cfg = config.Default()

func main() {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:     "jclass",
		Short:   "Inspect compiled Java classes",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = config.LoadFrom(configPath)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("verbose") && cfg.Verbosity > 0 {
				verbosity = cfg.Verbosity
			}
			commonlog.Configure(verbosity, nil)
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file")

	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newCodeCmd())
	rootCmd.AddCommand(newLsCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newUICmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
