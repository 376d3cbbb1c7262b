package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/repofs/pkg/repofs"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <repo>",
	Short: "Rewrite every document in canonical form",
	Long: `Fmt rewrites every JSON document of every configured kind in canonical form:
defaults and a name field matching the file name are dropped, keys are
sorted, indentation is two spaces and the file ends with one newline.

With --check nothing is written; the command lists the documents that would
change and exits with code 14 if there are any. Documents that cannot be
parsed are reported and left untouched.`,
	Example: `  repofs fmt ./chef-repo
  repofs fmt --check ./chef-repo`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

type fmtFlagValues struct {
	check bool
}

var fmtFlags fmtFlagValues

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolVar(&fmtFlags.check, "check", false, "Report documents that are not canonical without rewriting them")
}

func runFmt(cmd *cobra.Command, args []string) error {
	repo, err := openRepository(args[0])
	if err != nil {
		return err
	}

	results, err := repo.Format(cmd.Context(), fmtFlags.check)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p := newPainter(out)
	var changed, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", p.paint(skipStyle, labelError), r.Path(), r.Err)
		case r.Changed:
			changed++
			fmt.Fprintf(out, "%s %s\n", p.paint(changedStyle, labelChanged), r.Path())
		case rootFlags.verbose:
			fmt.Fprintf(out, "%s %s %s\n", p.paint(okStyle, labelOK), r.Path(), p.paint(mutedStyle, r.Checksum[:12]))
		}
	}

	verb := "formatted"
	if fmtFlags.check {
		verb = "not canonical"
	}
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, newPainter(errOut).paint(mutedStyle,
		fmt.Sprintf("%d documents, %d %s, %d failed", len(results), changed, verb, failed)))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents could not be formatted", repofs.ErrInvalidDocuments, failed, len(results))
	}
	if fmtFlags.check && changed > 0 {
		return fmt.Errorf("%w: %d of %d documents are not canonical", repofs.ErrInvalidDocuments, changed, len(results))
	}
	return nil
}
