// Command claimsctl is the operator CLI for the claim escrow engine.
package main

import (
	"fmt"
	"io"
	"os"

	"claim-escrow-engine/config"
	"claim-escrow-engine/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const programName = "claimsctl"

type globalFlags struct {
	configFile string
	debug      bool
}

func loadConfig(flags *globalFlags) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.Log.Level
	if flags.debug {
		level = "debug"
	}
	return cfg, logger.NewWithWriter(level, os.Stderr), nil
}

func newRootCommand(out io.Writer) *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operate the claim escrow engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(
		reconcileCommand(flags),
		inspectCommand(flags),
		tokenCommand(flags),
	)
	return rootCmd
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", programName, err)
		os.Exit(1)
	}
}
