package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repofs",
	Short: "Typed JSON document trees over repository directories",
	Long: `repofs presents a repository directory as a tree of typed JSON documents.

Each kind directory (roles, environments, nodes, ...) is mounted with a content
handler that fills defaults, derives the name field from the file name and
checks every document. Malformed documents are reported and skipped; they
never stop the rest of the repository from being read.

Kinds, defaults and the worker pool are configured in repofs.yaml at the
repository root. REPOFS_PRETTY_PRINT and REPOFS_WORKERS override it, from the
environment or from a .env file next to repofs.yaml.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid repofs.yaml or missing content handler
  11 - Repository or document not found
  12 - Storage read or write failed
  13 - Malformed or rejected JSON document
  14 - One or more documents were skipped or are not canonical`,
	SilenceUsage: true,
}

type rootFlagValues struct {
	verbose bool
}

var rootFlags rootFlagValues

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output for all commands")
}
