package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aetos-lang/aetosup/internal/errors"
)

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the Aetos toolchain and its integration",
	Long: `Remove everything a previous install set up: the binaries and files
under the installation root, the desktop and file-type integration,
the Start Menu and registry entries on Windows, and the managed PATH
block in your shell profile.

Safe to run on a partially-installed machine: pieces that are already
missing are skipped, not errors. This is the recovery path after an
interrupted install.`,
	Example: `  # Remove the default installation
  aetosup uninstall

  # Remove without a confirmation prompt
  aetosup uninstall --yes`,
	RunE: runUninstall,
}

func runUninstall(cobraCmd *cobra.Command, _ []string) error {
	ctrl := newController()

	if ctrl.Prereq.Confirm != nil {
		ok, err := ctrl.Prereq.Confirm(
			fmt.Sprintf("Remove the Aetos installation at %s?", ctrl.Layout.Root))
		if err != nil {
			return err
		}
		if !ok {
			return errors.NewUserError(errors.New("uninstall cancelled"), "")
		}
	}

	return ctrl.Uninstall(cobraCmd.Context())
}
