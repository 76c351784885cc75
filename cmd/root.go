package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gthulhu/cpupower/config"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "cpupower",
		Short: "Monitor cpu usage and tune cpufreq governors",
		Long: `cpupower samples per-core cpu usage from /proc/stat and edits the
tunables of the active cpufreq governor through validated sessions.

Quick start:
  cpupower serve                         # Start the REST API
  cpupower usage --cycles 5              # Print five usage samples
  cpupower governor specs conservative   # Show parameter bounds
  cpupower governor set ondemand up_threshold=90`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "cpupower_config", "Config file name without extension")
	cmd.PersistentFlags().String("config-dir", "", "Directory searched for the config file")

	cmd.AddCommand(serveCommand())
	cmd.AddCommand(usageCommand())
	cmd.AddCommand(governorCommand())
	cmd.AddCommand(piCommand())

	return cmd
}

// loadConfig reads the config selected by the persistent flags and initialises the logger.
// A missing config file falls back to defaults.
func loadConfig(cmd *cobra.Command) (config.CPUPowerConfig, error) {
	name, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.CPUPowerConfig{}, err
	}
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return config.CPUPowerConfig{}, err
	}
	cfg, err := config.InitCPUPowerConfig(name, dir, true)
	if err != nil {
		return cfg, err
	}
	logger.InitLoggerWithLevel(cfg.Logging.Level, cfg.Logging.Console)
	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = rootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
