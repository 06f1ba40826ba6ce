// Package config provides configuration management for aetosup using
// Viper. This is the installer's own configuration (install root,
// source tree, build command), distinct from the config.toml the
// installer writes into the install root for the installed tools.
package config
