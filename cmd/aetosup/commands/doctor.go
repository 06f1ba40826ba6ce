package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aetos-lang/aetosup/internal/errors"
	"github.com/aetos-lang/aetosup/internal/paths"
	"github.com/aetos-lang/aetosup/internal/probe"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the environment before installing",
	Long: `Run read-only diagnostic checks against this machine: build
toolchain presence, package manager detection, privilege level, and
the consistency of any recorded installation.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}
	return nil
}

func runDoctor(cobraCmd *cobra.Command, _ []string) error {
	layout := paths.NewLayout(loadedConfig.Root)
	env, err := probe.New().Probe(layout)
	if err != nil {
		return err
	}

	report := probe.Diagnose(env)

	if err := outputDoctorReport(cobraCmd.OutOrStdout(), report); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errors.New("doctor found errors"), errors.ExitSystem)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errors.New("doctor found warnings"), errors.ExitUser)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *probe.Report) error {
	if doctorQuiet {
		return nil
	}
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	for _, res := range report.Results {
		if !doctorVerbose && res.Status == probe.SeverityPass {
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", severityTag(res.Status), res.Name, res.Message)
		if res.FixHint != "" && res.Status >= probe.SeverityWarning {
			fmt.Fprintf(w, "    fix: %s\n", res.FixHint)
		}
	}

	s := report.Summary
	fmt.Fprintf(w, "\n%d passed, %d warnings, %d errors\n", s.Passed, s.Warnings, s.Errors)
	return nil
}

func severityTag(s probe.Severity) string {
	switch s {
	case probe.SeverityPass:
		return color.GreenString("[pass]")
	case probe.SeverityWarning:
		return color.YellowString("[warn]")
	case probe.SeverityError:
		return color.RedString("[fail]")
	default:
		return "[info]"
	}
}
