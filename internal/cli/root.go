// Package cli wires the cobra command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/nexus-tracker/internal/config"
	"github.com/litescript/nexus-tracker/internal/ephem"
	"github.com/litescript/nexus-tracker/internal/logging"
	"github.com/litescript/nexus-tracker/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "nexus-tracker",
	Short:   "Solar system body tracker",
	Long:    "Nexus Tracker computes planetary positions, orbital elements and alignment events from a JPL DE ephemeris kernel.",
	Version: version.Version,
	RunE:    runTUI,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .nexus-tracker.yaml)")
	rootCmd.PersistentFlags().String("ephemeris", "", "path to a binary JPL DE kernel")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("ephemeris_path", rootCmd.PersistentFlags().Lookup("ephemeris"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".nexus-tracker")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("NEXUS")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// setup loads configuration, builds the logger and opens the ephemeris
// store. With no kernel configured it falls back to the built-in
// analytic model; a configured kernel that fails to open is fatal.
func setup() (config.Config, *ephem.Store, *logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	var src ephem.Source
	if cfg.EphemerisPath != "" {
		jpl, err := ephem.OpenJPL(cfg.EphemerisPath)
		if err != nil {
			return config.Config{}, nil, nil, err
		}
		logger.Info("loaded %s kernel from %s", jpl.Name(), cfg.EphemerisPath)
		src = jpl
	} else {
		logger.Warn("no ephemeris kernel configured, using the low-accuracy analytic model")
		src = ephem.AnalyticSource{}
	}

	store, err := ephem.NewStore(src, logger)
	if err != nil {
		_ = src.Close()
		return config.Config{}, nil, nil, err
	}
	return cfg, store, logger, nil
}

// bodiesOrDefault returns the configured body list, or every tracked body.
func bodiesOrDefault(cfg config.Config) []string {
	if len(cfg.Bodies) > 0 {
		return cfg.Bodies
	}
	return ephem.Names()
}
