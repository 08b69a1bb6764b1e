// Package pipeline wires document sources to the analysis engine: it
// fetches and validates scanner documents, builds graphs and assembles
// the reports the CLI renders.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"

	"github.com/depscope/depscope/internal/source"
	"github.com/depscope/depscope/pkg/config"
	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/graphquery"
	"github.com/depscope/depscope/pkg/smells"
)

// ErrUnknownNode is returned by Path when an endpoint is not in the graph.
var ErrUnknownNode = errors.New("unknown node")

// Options tunes report sizes.
type Options struct {
	TopN         int
	LongestPaths int
	// LongestPathNodeBudget skips the longest-path heuristic on graphs with
	// more nodes than this. 0 disables the budget.
	LongestPathNodeBudget int
}

// OptionsFromConfig maps the analysis section of the config file.
func OptionsFromConfig(cfg config.AnalysisConfig) Options {
	return Options{
		TopN:                  cfg.TopN,
		LongestPaths:          cfg.LongestPaths,
		LongestPathNodeBudget: cfg.LongestPathNodeBudget,
	}
}

// Service runs analyses over documents read through a Fetcher.
type Service struct {
	fetcher source.Fetcher
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new pipeline Service.
func NewService(fetcher source.Fetcher, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Load fetches, validates and builds the graph at location.
func (s *Service) Load(ctx context.Context, location string) (*graph.Graph, error) {
	start := s.now()

	data, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}

	doc, err := graph.ParseDocument(data, graph.FormatFromPath(location))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", location, err)
	}

	g := graph.Build(doc)
	s.logger.Info("graph loaded",
		"location", location,
		"nodes", g.Metrics.NodeCount,
		"edges", g.Metrics.EdgeCount,
		"cycles", g.Metrics.CycleCount,
		"elapsed", s.now().Sub(start),
	)
	return g, nil
}

func (s *Service) metricsOptions(g *graph.Graph) graphquery.Options {
	skip := s.opts.LongestPathNodeBudget > 0 && len(g.Nodes) > s.opts.LongestPathNodeBudget
	if skip {
		s.logger.Warn("skipping longest-path search",
			"nodes", len(g.Nodes),
			"budget", s.opts.LongestPathNodeBudget,
		)
	}
	return graphquery.Options{
		TopN:             s.opts.TopN,
		LongestPaths:     s.opts.LongestPaths,
		SkipLongestPaths: skip,
	}
}

// Analyze loads the graph at location and computes the full report.
// Metrics, smells and the summary run concurrently over the shared,
// read-only graph.
func (s *Service) Analyze(ctx context.Context, location string) (*Report, error) {
	g, err := s.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.New().String(),
		Location:    location,
		Fingerprint: graph.Fingerprint(g),
		GeneratedAt: s.now().UTC(),
		Metrics:     g.Metrics,
		Modules:     g.Modules,
		Graph:       g,
	}

	opts := s.metricsOptions(g)
	wg := conc.NewWaitGroup()
	wg.Go(func() { report.Analysis = graphquery.ComputeMetrics(g, opts) })
	wg.Go(func() { report.Findings = smells.Detect(g) })
	wg.Go(func() { report.Summary = graphquery.Summarize(g) })
	wg.Wait()

	s.logger.Debug("analysis complete",
		"run_id", report.RunID,
		"findings", len(report.Findings),
		"sccs", len(report.Analysis.StronglyConnectedComponents),
	)
	return report, nil
}

// Smells loads the graph at location and returns only its findings.
func (s *Service) Smells(ctx context.Context, location string) ([]smells.Finding, error) {
	g, err := s.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	return smells.Detect(g), nil
}

// Compare loads both graphs concurrently and diffs them.
func (s *Service) Compare(ctx context.Context, baseline, candidate string) (*Comparison, error) {
	var base, cand *graph.Graph

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		g, err := s.Load(ctx, baseline)
		if err != nil {
			return fmt.Errorf("baseline: %w", err)
		}
		base = g
		return nil
	})
	p.Go(func(ctx context.Context) error {
		g, err := s.Load(ctx, candidate)
		if err != nil {
			return fmt.Errorf("candidate: %w", err)
		}
		cand = g
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	diff := graph.Diff(base, cand)
	introduced, resolved := compareFindings(smells.Detect(base), smells.Detect(cand))

	cmp := &Comparison{
		RunID:                uuid.New().String(),
		Baseline:             baseline,
		Candidate:            candidate,
		BaselineFingerprint:  graph.Fingerprint(base),
		CandidateFingerprint: graph.Fingerprint(cand),
		BaselineMetrics:      base.Metrics,
		CandidateMetrics:     cand.Metrics,
		GeneratedAt:          s.now().UTC(),
		Diff:                 diff,
		IntroducedFindings:   introduced,
		ResolvedFindings:     resolved,
	}

	s.logger.Info("comparison complete",
		"run_id", cmp.RunID,
		"added_nodes", len(diff.AddedNodes),
		"removed_nodes", len(diff.RemovedNodes),
		"changed_nodes", len(diff.ChangedNodes),
		"added_edges", len(diff.AddedEdges),
		"removed_edges", len(diff.RemovedEdges),
	)
	return cmp, nil
}

// Path loads the graph at location and finds a shortest path between two
// node ids. Both ids must name nodes; an unreachable target is not an error.
func (s *Service) Path(ctx context.Context, location, from, to string) (*PathReport, error) {
	g, err := s.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{from, to} {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}

	report := &PathReport{Location: location, From: from, To: to, Path: []string{}, Nodes: []graph.Node{}}
	path, ok := graphquery.ShortestPath(g, from, to)
	if !ok {
		return report, nil
	}

	report.Found = true
	report.Path = path
	report.Hops = len(path) - 1
	for _, id := range path {
		if n, ok := g.Node(id); ok {
			report.Nodes = append(report.Nodes, n)
		}
	}
	return report, nil
}

// compareFindings splits findings into those only the candidate has and
// those only the baseline has. Findings match on type and node ids; the
// description carries counts that move without the smell changing.
func compareFindings(base, cand []smells.Finding) (introduced, resolved []smells.Finding) {
	key := func(f smells.Finding) string {
		return fmt.Sprintf("%s|%v", f.Type, f.NodeIDs)
	}
	inBase := make(map[string]bool, len(base))
	for _, f := range base {
		inBase[key(f)] = true
	}
	inCand := make(map[string]bool, len(cand))
	for _, f := range cand {
		inCand[key(f)] = true
	}

	introduced = []smells.Finding{}
	for _, f := range cand {
		if !inBase[key(f)] {
			introduced = append(introduced, f)
		}
	}
	resolved = []smells.Finding{}
	for _, f := range base {
		if !inCand[key(f)] {
			resolved = append(resolved, f)
		}
	}
	return introduced, resolved
}
