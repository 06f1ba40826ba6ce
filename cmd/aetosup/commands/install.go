package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aetos-lang/aetosup/internal/cli/prompt"
	"github.com/aetos-lang/aetosup/internal/lifecycle"
	"github.com/aetos-lang/aetosup/internal/logging"
)

func init() {
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Build and install the Aetos toolchain",
	Long: `Build the aetosc compiler and the aetos-editor visual editor from
source and install them under the installation root.

The compiler is required: its build failure aborts the install. The
editor is optional: if its build fails the install still succeeds
without it, and opening .aetos files falls back to a plain-text
viewer until a later run installs the editor.

Install is idempotent. Re-running it refreshes binaries in place and
repairs a partial installation; nothing is duplicated.`,
	Example: `  # Install with defaults
  aetosup install

  # Install into a custom root, non-interactively
  aetosup install --root /opt/aetos --yes`,
	RunE: runInstall,
}

func runInstall(cobraCmd *cobra.Command, _ []string) error {
	ctrl := newController()
	return ctrl.Install(cobraCmd.Context())
}

// newController wires a lifecycle controller from the resolved
// configuration, attaching an interactive prompt unless --yes was
// given or stdin is not a terminal.
func newController() *lifecycle.Controller {
	ctrl := lifecycle.New(loadedConfig)
	if !assumeYes && logging.IsTTY(os.Stdin) {
		ctrl.Prereq.Confirm = prompt.New().Confirm
	}
	return ctrl
}
