// =============================================================================
// Cart Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cartparser)
//   ├── parseCmd    (cartparser parse FILE)
//   ├── validateCmd (cartparser validate FILE)
//   ├── processCmd  (cartparser process)
//   ├── watchCmd    (cartparser watch)
//   └── versionCmd  (cartparser version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration (defaults when the file is absent)
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/cart-parser/internal/config"
	"github.com/ginjaninja78/cart-parser/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// appConfig and logger are initialized before any subcommand runs.
var (
	appConfig *config.MainConfig
	logger    *slog.Logger
	logCloser io.Closer
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cartparser",
	Short: "Cart Parser - Validate shopping cart CSV files and compute totals",
	Long: `Cart Parser reads shopping cart CSV files, validates them against the
fixed cart schema and computes the cart total.

Cart files look like:
  Product name,Price,Quantity
  Apple,2.5,4
  Green tea,3.75,0.5

Every violation is reported at once; a cart with any violation is rejected as
a whole.

Example Usage:
  cartparser parse cart.csv              # Print items and total
  cartparser parse cart.csv --format xml # Print an XML report
  cartparser validate cart.csv           # List every violation
  cartparser process                     # Process all carts in input_dir
  cartparser watch                       # Process carts as they arrive`,

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file; defaults apply when it does not exist",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initApp loads the configuration and builds the logger.
func initApp() error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", cfgFile, err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	l, closer, err := logging.New(level, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	appConfig = cfg
	logger = l
	logCloser = closer

	logger.Debug("configuration loaded", "config", cfgFile, "input_dir", cfg.InputDir, "output_format", cfg.OutputFormat)
	return nil
}
