// Package commands implements the CLI commands for aetosup.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aetos-lang/aetosup/cmd"
	"github.com/aetos-lang/aetosup/internal/config"
	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/logging"
)

// rootFlag holds the value of the --root flag.
var rootFlag string

// configFlag holds the path of an explicit config file.
var configFlag string

// assumeYes holds the value of the -y/--yes flag.
var assumeYes bool

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// loadedConfig is the installer configuration for this invocation.
var loadedConfig *config.Config

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"installation root (default: OS-specific, or $AETOSUP_ROOT)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to an aetosup config file")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"assume yes for all prompts")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("aetosup version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load(configFlag)
}

var rootCmd = &cobra.Command{
	Use:   "aetosup",
	Short: "Installer and lifecycle manager for the Aetos toolchain",
	Long: `aetosup installs, updates and uninstalls the Aetos programming
language toolchain: the aetosc compiler and the aetos-editor visual
editor.

It builds both binaries from source with cargo, places them under the
installation root, registers desktop and file-type integration for
.aetos files, and adds the bin directory to your PATH. Every operation
is idempotent: re-running install repairs an interrupted or partial
installation.`,
	Example: `  # Install the toolchain
  aetosup install

  # Update an existing installation
  aetosup update

  # Check the environment before installing
  aetosup doctor

  # Remove everything aetosup set up
  aetosup uninstall`,
	PersistentPreRunE: func(cobraCmd *cobra.Command, args []string) error {
		if err := setupLogging(cobraCmd); err != nil {
			return err
		}
		return resolveConfig(cobraCmd)
	},
	Run: func(cobraCmd *cobra.Command, args []string) {
		_ = cobraCmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cobraCmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("AETOSUP_DEBUG"); ok && (val == "1" || val == "true") {
				v = 1
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cobraCmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cobraCmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cobraCmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cobraCmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// resolveConfig finalizes the installer configuration: flag overrides
// beat config file values, which beat defaults.
func resolveConfig(cobraCmd *cobra.Command) error {
	if cobraCmd.Name() == "help" || cobraCmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewUserError(configLoadErr, "fix or remove the config file and retry")
	}
	if loadedConfig == nil {
		loadedConfig = &config.Config{}
	}

	// AETOSUP_ROOT is already handled by viper's env binding; the flag
	// beats both.
	if rootFlag != "" {
		loadedConfig.Root = rootFlag
	}

	if errs := config.Validate(loadedConfig); len(errs) > 0 {
		return errors.NewUserError(errors.Join(errs...), "check the configuration values")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
