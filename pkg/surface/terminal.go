package surface

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/depscope/depscope/internal/pipeline"
	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/smells"
)

// maxListed caps how many entries of one diff section are printed.
const maxListed = 10

// TerminalRenderer renders results as colored terminal output.
type TerminalRenderer struct {
	Color bool
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func (r *TerminalRenderer) paint(s string, attrs ...color.Attribute) string {
	if !r.Color || noColor() {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (r *TerminalRenderer) bold(s string) string { return r.paint(s, color.Bold) }
func (r *TerminalRenderer) dim(s string) string  { return r.paint(s, color.Faint) }

func (r *TerminalRenderer) findingColor(t smells.Type) []color.Attribute {
	switch t {
	case smells.TypeDuplicateProviders:
		return []color.Attribute{color.FgRed}
	default:
		return []color.Attribute{color.FgYellow}
	}
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	table := newTable(w)
	table.Header(headers)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

func (r *TerminalRenderer) RenderReport(w io.Writer, report *pipeline.Report) error {
	fmt.Fprintf(w, "%s\n", r.bold("depscope: "+report.Location))
	fmt.Fprintf(w, "%s\n\n", r.dim("fingerprint "+report.Fingerprint))

	m := report.Metrics
	fmt.Fprintf(w, "Nodes: %d  Edges: %d  Modules: %d  Packages: %d  Cycles: %d  Max depth: %d\n",
		m.NodeCount, m.EdgeCount, m.ModuleCount, m.PackageCount, m.CycleCount, m.MaxDepth)
	if len(report.Modules) > 0 {
		fmt.Fprintf(w, "Modules: %s\n", strings.Join(report.Modules, ", "))
	}
	fmt.Fprintln(w)

	if a := report.Analysis; a != nil {
		if len(a.HighFanInNodes) > 0 {
			fmt.Fprintln(w, r.bold("Highest fan-in:"))
			rows := make([][]string, 0, len(a.HighFanInNodes))
			for _, e := range a.HighFanInNodes {
				rows = append(rows, []string{e.NodeID, strconv.Itoa(e.FanIn)})
			}
			if err := renderTable(w, []string{"node", "fan-in"}, rows); err != nil {
				return err
			}
		}
		if len(a.HighFanOutNodes) > 0 {
			fmt.Fprintln(w, r.bold("Highest fan-out:"))
			rows := make([][]string, 0, len(a.HighFanOutNodes))
			for _, e := range a.HighFanOutNodes {
				rows = append(rows, []string{e.NodeID, strconv.Itoa(e.FanOut)})
			}
			if err := renderTable(w, []string{"node", "fan-out"}, rows); err != nil {
				return err
			}
		}

		switch {
		case a.LongestPathsSkipped:
			fmt.Fprintf(w, "%s\n\n", r.dim("Longest paths: skipped (graph exceeds node budget)"))
		case len(a.LongestPaths) > 0:
			fmt.Fprintln(w, r.bold("Longest paths:"))
			for i, p := range a.LongestPaths {
				fmt.Fprintf(w, "  %d. %s %s\n", i+1, strings.Join(p.Path, " -> "), r.dim(fmt.Sprintf("(%d)", p.Length)))
			}
			fmt.Fprintln(w)
		}

		cycles := 0
		for _, scc := range a.StronglyConnectedComponents {
			if !scc.IsCycle() {
				continue
			}
			if cycles == 0 {
				fmt.Fprintln(w, r.bold("Cycles:"))
			}
			cycles++
			fmt.Fprintf(w, "  %s %s (%d nodes): %s\n",
				r.paint("●", color.FgRed), scc.ID, scc.Size, strings.Join(scc.Nodes, ", "))
		}
		if cycles == 0 {
			fmt.Fprintln(w, "No cycles.")
		}
		fmt.Fprintf(w, "Weakly connected components: %d\n\n", a.WeakComponents)
	}

	r.writeFindings(w, "Findings:", report.Findings)

	if s := report.Summary; s != nil {
		fmt.Fprintln(w, r.bold("Nodes by kind:"))
		var rows [][]string
		for _, k := range []graph.NodeKind{graph.KindType, graph.KindProvider, graph.KindConsumer} {
			rows = append(rows, []string{string(k), strconv.Itoa(s.NodesByKind[k])})
		}
		if err := renderTable(w, []string{"kind", "count"}, rows); err != nil {
			return err
		}

		fmt.Fprintln(w, r.bold("Fan-in distribution:"))
		rows = rows[:0]
		for i, b := range s.FanInHistogram {
			out := 0
			if i < len(s.FanOutHistogram) {
				out = s.FanOutHistogram[i].Count
			}
			rows = append(rows, []string{b.Label, strconv.Itoa(b.Count), strconv.Itoa(out)})
		}
		if err := renderTable(w, []string{"degree", "fan-in", "fan-out"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func (r *TerminalRenderer) writeFindings(w io.Writer, title string, findings []smells.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No findings.")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintln(w, r.bold(title))
	for _, f := range findings {
		fmt.Fprintf(w, "  %s %s\n", r.paint("["+string(f.Type)+"]", r.findingColor(f.Type)...), f.Description)
		fmt.Fprintf(w, "    %s\n", r.dim(strings.Join(f.NodeIDs, ", ")))
	}
	fmt.Fprintln(w)
}

func (r *TerminalRenderer) RenderComparison(w io.Writer, cmp *pipeline.Comparison) error {
	fmt.Fprintf(w, "%s\n\n", r.bold(fmt.Sprintf("depscope: %s -> %s", cmp.Baseline, cmp.Candidate)))

	if cmp.Identical() {
		fmt.Fprintln(w, r.paint("Graphs are identical.", color.FgGreen))
		return nil
	}

	b, c, d := cmp.BaselineMetrics, cmp.CandidateMetrics, cmp.Diff.MetricsDelta
	rows := [][]string{
		{"nodes", strconv.Itoa(b.NodeCount), strconv.Itoa(c.NodeCount), signed(d.NodeCountDelta)},
		{"edges", strconv.Itoa(b.EdgeCount), strconv.Itoa(c.EdgeCount), signed(d.EdgeCountDelta)},
		{"cycles", strconv.Itoa(b.CycleCount), strconv.Itoa(c.CycleCount), signed(d.CycleCountDelta)},
		{"max depth", strconv.Itoa(b.MaxDepth), strconv.Itoa(c.MaxDepth), signed(d.MaxDepthDelta)},
	}
	if err := renderTable(w, []string{"metric", "baseline", "candidate", "delta"}, rows); err != nil {
		return err
	}

	diff := cmp.Diff
	fmt.Fprintf(w, "Changed: %d added nodes / %d removed nodes / %d changed nodes / %d added edges / %d removed edges\n\n",
		len(diff.AddedNodes), len(diff.RemovedNodes), len(diff.ChangedNodes), len(diff.AddedEdges), len(diff.RemovedEdges))

	r.writeList(w, "Added nodes:", "+", color.FgGreen, nodeLines(diff.AddedNodes))
	r.writeList(w, "Removed nodes:", "-", color.FgRed, nodeLines(diff.RemovedNodes))

	changed := make([]string, 0, len(diff.ChangedNodes))
	for _, cn := range diff.ChangedNodes {
		if cn.Before.Kind() != cn.After.Kind() {
			changed = append(changed, fmt.Sprintf("%s (%s -> %s)", cn.After.ID, cn.Before.Kind(), cn.After.Kind()))
		} else {
			changed = append(changed, fmt.Sprintf("%s (%s)", cn.After.ID, cn.After.Kind()))
		}
	}
	r.writeList(w, "Changed nodes:", "~", color.FgYellow, changed)

	r.writeList(w, "Added edges:", "+", color.FgGreen, edgeLines(diff.AddedEdges))
	r.writeList(w, "Removed edges:", "-", color.FgRed, edgeLines(diff.RemovedEdges))

	if len(cmp.IntroducedFindings) > 0 {
		r.writeFindings(w, "Introduced findings:", cmp.IntroducedFindings)
	}
	if len(cmp.ResolvedFindings) > 0 {
		r.writeFindings(w, "Resolved findings:", cmp.ResolvedFindings)
	}
	return nil
}

func (r *TerminalRenderer) writeList(w io.Writer, title, marker string, attr color.Attribute, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, r.bold(title))
	shown := min(len(lines), maxListed)
	for _, line := range lines[:shown] {
		fmt.Fprintf(w, "  %s %s\n", r.paint(marker, attr), line)
	}
	if len(lines) > maxListed {
		fmt.Fprintf(w, "  %s\n", r.dim(fmt.Sprintf("... and %d more", len(lines)-maxListed)))
	}
	fmt.Fprintln(w)
}

func nodeLines(nodes []graph.Node) []string {
	lines := make([]string, 0, len(nodes))
	for _, n := range nodes {
		lines = append(lines, fmt.Sprintf("%s (%s)", n.ID, n.Kind()))
	}
	return lines
}

func edgeLines(edges []graph.Edge) []string {
	lines := make([]string, 0, len(edges))
	for _, e := range edges {
		lines = append(lines, fmt.Sprintf("%s -> %s (%s)", e.Source, e.Target, e.Kind))
	}
	return lines
}

func signed(n int) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", n)
}

func (r *TerminalRenderer) RenderPath(w io.Writer, path *pipeline.PathReport) error {
	if !path.Found {
		fmt.Fprintf(w, "No path from %s to %s.\n", path.From, path.To)
		return nil
	}
	fmt.Fprintf(w, "%s\n", r.bold(fmt.Sprintf("Shortest path from %s to %s (%d hops):", path.From, path.To, path.Hops)))
	for i, n := range path.Nodes {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, n.ID, r.dim("["+string(n.Kind())+"]"))
	}
	return nil
}

func (r *TerminalRenderer) RenderFindings(w io.Writer, location string, findings []smells.Finding) error {
	fmt.Fprintf(w, "%s\n\n", r.bold("depscope: "+location))
	r.writeFindings(w, "Findings:", findings)
	return nil
}
