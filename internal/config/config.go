package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/aetos-lang/aetosup/internal/paths"
)

// ToolchainVersion is the Aetos release this installer provisions.
const ToolchainVersion = "0.3.0"

// Config represents the top-level installer configuration.
type Config struct {
	// Root is the installation root directory.
	Root string `mapstructure:"root" yaml:"root"`

	// SourceDir is the Aetos source tree the build provider runs in.
	SourceDir string `mapstructure:"source_dir" yaml:"source_dir"`

	// BuildCommand is the build provider invocation; the target name
	// is appended as the final argument.
	BuildCommand []string `mapstructure:"build_command" yaml:"build_command"`

	// Version is the toolchain version being installed.
	Version string `mapstructure:"version" yaml:"version"`

	// FetchCommand updates the source tree before an update build.
	// Empty disables fetching; update then rebuilds from the local
	// tree.
	FetchCommand []string `mapstructure:"fetch_command" yaml:"fetch_command"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("AETOSUP")
	viper.AutomaticEnv()
	// An empty env value is a deliberate override (AETOSUP_FETCH_COMMAND=
	// disables the source fetch), not an unset variable.
	viper.AllowEmptyEnv(true)

	viper.SetDefault("root", paths.DefaultRoot())
	viper.SetDefault("source_dir", ".")
	viper.SetDefault("build_command", []string{"cargo", "build", "--release", "--bin"})
	viper.SetDefault("version", ToolchainVersion)
	viper.SetDefault("fetch_command", []string{"git", "pull", "--ff-only"})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls
// back to defaults when no file exists.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
