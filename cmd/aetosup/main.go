// Package main is the entry point for the aetosup CLI.
package main

import (
	"fmt"
	"os"

	"github.com/aetos-lang/aetosup/cmd/aetosup/commands"
	"github.com/aetos-lang/aetosup/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", exitErr.Suggestion)
			}
			os.Exit(exitErr.Code)
		}
		os.Exit(errors.ExitSystem)
	}
}
