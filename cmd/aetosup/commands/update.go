package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild and refresh an existing installation",
	Long: `Fetch the latest Aetos source, rebuild both targets and refresh the
installed files in place.

Requires an existing installation; run 'aetosup install' first
otherwise. A failed source fetch is not fatal: the update falls back
to rebuilding the current local source. File associations and the
config file the user may have edited are preserved.`,
	Example: `  # Update the default installation
  aetosup update

  # Update without fetching (rebuild local source only)
  AETOSUP_FETCH_COMMAND= aetosup update`,
	RunE: runUpdate,
}

func runUpdate(cobraCmd *cobra.Command, _ []string) error {
	ctrl := newController()
	return ctrl.Update(cobraCmd.Context())
}
