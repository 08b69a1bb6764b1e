package main

import (
	"github.com/spf13/cobra"

	"github.com/depscope/depscope/pkg/config"
)

func newAnalyzeCmd(g *globalOpts) *cobra.Command {
	var (
		outputFmt    string
		longestPaths int
		topN         int
	)

	cmd := &cobra.Command{
		Use:   "analyze <document>",
		Short: "Compute metrics, cycles and smells for a graph document",
		Long: `Loads a graph document (local path, s3:// or gs:// location), builds the
dependency graph, and reports metrics, strongly connected components,
longest paths, fan-in/fan-out rankings and design smells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g, func(cfg *config.Config) {
				if cmd.Flags().Changed("longest-paths") {
					cfg.Analysis.LongestPaths = longestPaths
				}
				if cmd.Flags().Changed("top") {
					cfg.Analysis.TopN = topN
				}
			})
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.renderer(outputFmt)
			if err != nil {
				return err
			}
			report, err := e.svc.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return r.RenderReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "", "Output format: text or json (default from config)")
	cmd.Flags().IntVar(&longestPaths, "longest-paths", 5, "Number of longest paths to report")
	cmd.Flags().IntVar(&topN, "top", 10, "Length of the fan-in and fan-out rankings")

	return cmd
}
