package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/state"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is currently installed",
	Long: `Show the recorded installation state: version, root, the targets and
whether each is present, and the registered OS integrations.

Exit codes:
  0 - An installation exists
  3 - Nothing is installed`,
	Example: `  # Human-readable status
  aetosup status

  # JSON output for scripting
  aetosup status --json`,
	RunE: runStatus,
}

func runStatus(cobraCmd *cobra.Command, _ []string) error {
	layout := paths.NewLayout(loadedConfig.Root)
	st, err := state.NewStore(layout).Load()
	if err != nil {
		return err
	}
	if st == nil {
		if !statusJSON {
			fmt.Fprintf(cobraCmd.OutOrStdout(), "Aetos is not installed (checked %s)\n", layout.Root)
		}
		return errors.NewNotInstalledError()
	}

	if statusJSON {
		return printStatusJSON(cobraCmd.OutOrStdout(), st)
	}
	printStatus(cobraCmd.OutOrStdout(), st)
	return nil
}

func printStatus(w io.Writer, st *state.InstallationState) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	fmt.Fprintf(w, "%s %s\n", bold("Aetos"), st.Version)
	fmt.Fprintf(w, "  root:      %s\n", st.Root)
	fmt.Fprintf(w, "  installed: %s\n", st.InstalledAt.Format("2006-01-02 15:04:05 MST"))
	if st.ProfileFile != "" {
		fmt.Fprintf(w, "  profile:   %s\n", st.ProfileFile)
	}

	fmt.Fprintf(w, "\n%s\n", bold("Targets"))
	for _, t := range st.Targets {
		mark := green("present")
		if !t.Present {
			mark = yellow("absent")
			if t.Required {
				mark = color.New(color.FgRed).Sprint("missing")
			}
		}
		fmt.Fprintf(w, "  %-14s %s\n", t.Name, mark)
	}

	fmt.Fprintf(w, "\n%s\n", bold("Integrations"))
	if len(st.Integrations) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	for _, e := range st.Integrations {
		fmt.Fprintf(w, "  %s\n", e.String())
	}
}

func printStatusJSON(w io.Writer, st *state.InstallationState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}
