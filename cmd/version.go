package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/huangsam/slotpulse/internal/recordstore"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of slotpulse.",
	Long: `Display version information including build details.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Record store schema version shipped with this binary
- Go runtime version`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("slotpulse CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		if schemaVersion, err := recordstore.SchemaVersion(); err == nil {
			cmd.Printf("  Schema:  %d\n", schemaVersion)
		}
		cmd.Printf("  Runtime: %s\n", runtime.Version())
	},
}
