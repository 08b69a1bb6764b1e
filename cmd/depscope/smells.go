package main

import (
	"github.com/spf13/cobra"
)

func newSmellsCmd(g *globalOpts) *cobra.Command {
	var (
		outputFmt      string
		failOnFindings bool
	)

	cmd := &cobra.Command{
		Use:   "smells <document>",
		Short: "Report design smells only",
		Args:  cobra.ExactArgs(1),
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
			findings, err := e.svc.Smells(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := r.RenderFindings(cmd.OutOrStdout(), args[0], findings); err != nil {
				return err
			}
			if failOnFindings && len(findings) > 0 {
				return errFindings
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "", "Output format: text or json (default from config)")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit non-zero when any finding is reported")

	return cmd
}
