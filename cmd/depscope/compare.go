package main

import (
	"github.com/spf13/cobra"
)

func newCompareCmd(g *globalOpts) *cobra.Command {
	var (
		outputFmt      string
		failOnFindings bool
	)

	cmd := &cobra.Command{
		Use:   "compare <baseline> <candidate>",
		Short: "Diff two graph snapshots",
		Long: `Loads a baseline and a candidate graph document and reports added, removed
and changed nodes and edges, metric deltas, and smells the candidate
introduces or resolves.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.renderer(outputFmt)
			if err != nil {
				return err
			}
			cmp, err := e.svc.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := r.RenderComparison(cmd.OutOrStdout(), cmp); err != nil {
				return err
			}
			if failOnFindings && len(cmp.IntroducedFindings) > 0 {
				return errFindings
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "", "Output format: text or json (default from config)")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit non-zero when the candidate introduces findings")

	return cmd
}
