package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/repofs/internal/repository"
	"github.com/vvka-141/repofs/pkg/repofs"
)

var validateCmd = &cobra.Command{
	Use:   "validate <repo>",
	Short: "Read every document and report the ones that cannot be inflated",
	Long: `Validate reads every JSON document of every configured kind, fills in the
kind's defaults and checks the result. One line is printed per document:

  OK   <path>
  SKIP <path>: <cause>

Skipped documents do not stop the walk. The command exits with code 14 when
any document was skipped.`,
	Example: `  repofs validate ./chef-repo
  REPOFS_WORKERS=16 repofs validate ./chef-repo`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	repo, err := openRepository(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := newPainter(out)
	var total, skipped int
	err = repo.Walk(cmd.Context(), func(r repository.Result) error {
		total++
		if r.Inflated.Skipped() {
			skipped++
			_, err := fmt.Fprintf(out, "%s %s: %v\n", p.paint(skipStyle, labelSkip), r.Path(), r.Inflated.Cause)
			return err
		}
		_, err := fmt.Fprintf(out, "%s %s\n", p.paint(okStyle, labelOK), r.Path())
		return err
	})
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, newPainter(errOut).paint(mutedStyle,
		fmt.Sprintf("%d documents, %d valid, %d skipped", total, total-skipped, skipped)))
	if skipped > 0 {
		return fmt.Errorf("%w: %d of %d documents could not be read", repofs.ErrInvalidDocuments, skipped, total)
	}
	return nil
}
