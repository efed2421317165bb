// Package cli implements the ggshot command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/ggshot"
	"github.com/gogpu/ggshot/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ggshot",
	Short: "Capture rendered frames to image files",
	Long: `ggshot renders frames with a small camera engine and captures the
next frame of selected cameras into an image file, leaving the displayed
output untouched.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands use to stop
// rendering early.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $XDG_CONFIG_HOME/ggshot/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log at debug level")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// configErr holds a failure from initConfig; cobra.OnInitialize cannot
// return one, so commands that need the configuration report it.
var configErr error

func initConfig() {
	configErr = config.Init(viper.GetString("config"))
}

// setupLogging installs the ggshot logger. It reads only the logging
// settings, so commands that do not render keep working with an invalid
// configuration. An unparsable level falls back to info; shoot reports it.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(viper.GetString("logging.level"))); err != nil {
		level = slog.LevelInfo
	}
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	ggshot.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the ggshot version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "ggshot %s\n", ggshot.Version)
		return err
	},
}
