package main

import (
	"github.com/spf13/cobra"
)

func newPathCmd(g *globalOpts) *cobra.Command {
	var (
		outputFmt string
		from      string
		to        string
	)

	cmd := &cobra.Command{
		Use:   "path <document>",
		Short: "Find the shortest dependency path between two nodes",
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
			report, err := e.svc.Path(cmd.Context(), args[0], from, to)
			if err != nil {
				return err
			}
			return r.RenderPath(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source node id (required)")
	cmd.Flags().StringVar(&to, "to", "", "Target node id (required)")
	cmd.Flags().StringVar(&outputFmt, "output", "", "Output format: text or json (default from config)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
