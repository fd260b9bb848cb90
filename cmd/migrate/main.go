package main

import (
	"fmt"
	"os"
	"strconv"

	"sportsassist/config"
	"sportsassist/helper"
	"sportsassist/shared/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the sportsassist database schema",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.InitLogger()
		logger.Configure(config.Get())
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Up(config.Get())
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Down(config.Get())
	},
}

var stepCmd = &cobra.Command{
	Use:   "step [n]",
	Short: "Apply n migrations, or roll back when n is negative",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[0], err)
		}

		return helper.Steps(config.Get(), n)
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Roll back every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		return helper.Drop(config.Get())
	},
}

var forceCmd = &cobra.Command{
	Use:   "force [version]",
	Short: "Mark a version as applied and clear the dirty flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}

		return helper.Force(config.Get(), version)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		version, dirty, err := helper.Version(config.Get())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "version: %d dirty: %t\n", version, dirty)

		return nil
	},
}

func main() {
	rootCmd.AddCommand(upCmd, downCmd, stepCmd, dropCmd, forceCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
