package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrEmptyRoot indicates no installation root is configured.
	ErrEmptyRoot = errors.New("root must not be empty")

	// ErrEmptyBuildCommand indicates the build provider invocation is empty.
	ErrEmptyBuildCommand = errors.New("build_command must not be empty")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// PathError wraps a validation failure for one path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Root == "" {
		errs = append(errs, ErrEmptyRoot)
	} else if err := validatePath(cfg.Root); err != nil {
		errs = append(errs, &PathError{Field: "root", Path: cfg.Root, Err: err})
	}

	if cfg.SourceDir != "" {
		if err := validatePath(cfg.SourceDir); err != nil {
			errs = append(errs, &PathError{Field: "source_dir", Path: cfg.SourceDir, Err: err})
		}
	}

	if len(cfg.BuildCommand) == 0 {
		errs = append(errs, ErrEmptyBuildCommand)
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}
