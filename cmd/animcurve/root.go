package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"honnef.co/go/animcurve/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "animcurve",
	Short: "Work with animation curve documents",
	Long: "animcurve samples, renders and inspects keyframe curves stored as YAML, TOML or CBOR documents.\n" +
		"The document format is chosen by file extension: .yaml/.yml, .toml or .cbor.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .animcurve.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(sampleCmd, renderCmd, watchCmd, inspectCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	home, _ := os.UserHomeDir()
	config.SetupEnv()
	if err := config.ReadFile(cfgFile, home); err != nil {
		fmt.Fprintf(os.Stderr, "reading config: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and installs the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}
