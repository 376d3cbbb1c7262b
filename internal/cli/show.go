package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/repofs/internal/canon"
	"github.com/vvka-141/repofs/internal/handler"
	"github.com/vvka-141/repofs/pkg/repofs"
)

var showCmd = &cobra.Command{
	Use:   "show <repo> <kind>/<name>.json",
	Short: "Print a document with its kind's defaults filled in",
	Example: `  repofs show ./chef-repo roles/web.json
  repofs show ./chef-repo environments/production.json | jq .cookbook_versions`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// splitDocumentRef splits "roles/web.json" into its kind and file name.
func splitDocumentRef(ref string) (kind, name string, err error) {
	kind, name, ok := strings.Cut(strings.ReplaceAll(ref, `\`, "/"), "/")
	if !ok || kind == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid argument %q: expected <kind>/<name>.json", ref)
	}
	return kind, name, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	kind, name, err := splitDocumentRef(args[1])
	if err != nil {
		return err
	}

	repo, err := openRepository(args[0])
	if err != nil {
		return err
	}
	doc, err := repo.Document(kind, name)
	if err != nil {
		return err
	}
	if !doc.Exists() {
		return fmt.Errorf("%w: %s", repofs.ErrNotFound, doc.PathForPrinting())
	}

	result, err := doc.Object()
	if err != nil {
		return err
	}
	if result.Skipped() {
		return fmt.Errorf("could not read %s: %w", doc.PathForPrinting(), result.Cause)
	}

	obj := result.Object
	if d, ok := handler.As[handler.Document](result); ok {
		obj = map[string]any(d)
	}
	_, err = cmd.OutOrStdout().Write(canon.Pretty(obj))
	return err
}
