// Package cli implements the comfortscan command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/headsetlab/comfortscan/internal/config"
	"github.com/headsetlab/comfortscan/internal/model"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "comfortscan",
	Short: "Comfortscan - VR headset comfort analysis from user reviews",
	Long: `Comfortscan analyzes scraped VR headset reviews for accessory
mentions, sentiment, and comfort complaints, and aggregates them into
rankings and issue statistics.

Import scraped review files, run the analysis, and serve the results
over a JSON API:

  comfortscan import reviews.json
  comfortscan analyze
  comfortscan serve`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("comfortscan v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.comfortscan/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "review database path (default comfortscan.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.comfortscan")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match COMFORTSCAN_*
	viper.SetEnvPrefix("COMFORTSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, config file,
// then environment overrides for the keys flags do not cover.
func loadConfig() (*model.Config, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return nil, err
	}

	if v := viper.GetString("database.path"); v != "" {
		cfg.Database.Path = v
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if v := viper.GetInt("concurrency.workers"); v > 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetString("server.addr"); v != "" {
		cfg.Server.Addr = v
	}
	if v := viper.GetString("sentiment.provider"); v != "" {
		cfg.Sentiment.Provider = v
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}
