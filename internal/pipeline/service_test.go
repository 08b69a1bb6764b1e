package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope/internal/source"
	"github.com/depscope/depscope/pkg/config"
	"github.com/depscope/depscope/pkg/graph"
	"github.com/depscope/depscope/pkg/smells"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memFetcher serves documents from memory.
type memFetcher map[string]string

func (m memFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	d, ok := m[location]
	if !ok {
		return nil, source.ErrNotFound
	}
	return []byte(d), nil
}

func newTestService(opts Options) *Service {
	s := NewService(source.NewLocalFetcher(), opts, quietLogger())
	s.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.DefaultConfig().Analysis)
	assert.Equal(t, Options{TopN: 10, LongestPaths: 5, LongestPathNodeBudget: 5000}, opts)
}

func TestService_Load(t *testing.T) {
	s := newTestService(Options{})
	ctx := context.Background()

	g, err := s.Load(ctx, testdataPath("base.json"))
	require.NoError(t, err)
	assert.Equal(t, 6, g.Metrics.NodeCount)

	_, err = s.Load(ctx, testdataPath("missing.json"))
	assert.ErrorIs(t, err, source.ErrNotFound)

	_, err = s.Load(ctx, testdataPath("invalid.json"))
	assert.ErrorIs(t, err, graph.ErrInvalidDocument)
}

func TestService_Analyze(t *testing.T) {
	s := newTestService(Options{TopN: 3, LongestPaths: 2})

	report, err := s.Analyze(context.Background(), testdataPath("candidate.yaml"))
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Len(t, report.Fingerprint, 16)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), report.GeneratedAt)
	assert.Equal(t, 7, report.Metrics.NodeCount)
	assert.Equal(t, 6, report.Metrics.EdgeCount)
	assert.Equal(t, []string{"core", "app"}, report.Modules)

	require.NotNil(t, report.Analysis)
	assert.Len(t, report.Analysis.HighFanInNodes, 3)
	assert.Len(t, report.Analysis.LongestPaths, 2)
	assert.Equal(t, 2, report.Analysis.WeakComponents, "UserService has no edges")

	require.Len(t, report.Findings, 1)
	assert.Equal(t, smells.TypeDuplicateProviders, report.Findings[0].Type)
	assert.Equal(t, "Multiple providers for com.example.core.User across modules: core, app", report.Findings[0].Description)

	require.NotNil(t, report.Summary)
	assert.Equal(t, 3, report.Summary.NodesByKind[graph.KindProvider])

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"Graph"`)
	assert.Contains(t, string(data), `"runId"`)
}

func TestService_AnalyzeNodeBudget(t *testing.T) {
	var logs bytes.Buffer
	s := NewService(source.NewLocalFetcher(), Options{LongestPathNodeBudget: 3}, slog.New(slog.NewTextHandler(&logs, nil)))

	report, err := s.Analyze(context.Background(), testdataPath("base.json"))
	require.NoError(t, err)
	assert.True(t, report.Analysis.LongestPathsSkipped)
	assert.Empty(t, report.Analysis.LongestPaths)
	assert.Contains(t, logs.String(), "skipping longest-path search")
}

func TestService_Compare(t *testing.T) {
	s := newTestService(Options{})

	cmp, err := s.Compare(context.Background(), testdataPath("base.json"), testdataPath("candidate.yaml"))
	require.NoError(t, err)

	assert.False(t, cmp.Identical())
	assert.Len(t, cmp.Diff.AddedNodes, 1)
	assert.Len(t, cmp.Diff.AddedEdges, 2)
	assert.Equal(t, 1, cmp.Diff.MetricsDelta.NodeCountDelta)
	assert.Equal(t, 6, cmp.BaselineMetrics.NodeCount)
	assert.Equal(t, 7, cmp.CandidateMetrics.NodeCount)

	require.Len(t, cmp.IntroducedFindings, 1)
	assert.Equal(t, smells.TypeDuplicateProviders, cmp.IntroducedFindings[0].Type)
	assert.Empty(t, cmp.ResolvedFindings)
}

func TestService_CompareSame(t *testing.T) {
	s := newTestService(Options{})
	path := testdataPath("base.json")

	cmp, err := s.Compare(context.Background(), path, path)
	require.NoError(t, err)
	assert.True(t, cmp.Identical())
	assert.True(t, cmp.Diff.Empty())
}

func TestService_CompareError(t *testing.T) {
	s := NewService(memFetcher{"base.json": `{"types":[{"id":"a"}]}`}, Options{}, quietLogger())

	_, err := s.Compare(context.Background(), "base.json", "gone.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrNotFound)
	assert.True(t, strings.Contains(err.Error(), "candidate"))
}

// hubDocument returns a document where hub requires n distinct types.
func hubDocument(n int) string {
	var b strings.Builder
	b.WriteString("types:\n  - id: hub\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - id: dep%d\n", i)
	}
	b.WriteString("edges:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - {from: hub, to: dep%d, kind: requires}\n", i)
	}
	return b.String()
}

func TestService_CompareFindingsIgnoreCountChanges(t *testing.T) {
	s := NewService(memFetcher{
		"six.yaml":   hubDocument(6),
		"seven.yaml": hubDocument(7),
	}, Options{}, quietLogger())

	cmp, err := s.Compare(context.Background(), "six.yaml", "seven.yaml")
	require.NoError(t, err)
	assert.Len(t, cmp.Diff.AddedEdges, 1)
	assert.Empty(t, cmp.IntroducedFindings, "existing god object is not a new finding")
	assert.Empty(t, cmp.ResolvedFindings)

	cmp, err = s.Compare(context.Background(), "seven.yaml", "six.yaml")
	require.NoError(t, err)
	assert.Empty(t, cmp.IntroducedFindings)
	assert.Empty(t, cmp.ResolvedFindings)
}

func TestService_Path(t *testing.T) {
	s := newTestService(Options{})
	ctx := context.Background()
	doc := testdataPath("candidate.yaml")

	t.Run("found", func(t *testing.T) {
		report, err := s.Path(ctx, doc, "com.example.app.UserService.repository", "com.example.core.UserRepository")
		require.NoError(t, err)
		assert.True(t, report.Found)
		assert.Equal(t, 1, report.Hops)
		assert.Equal(t, []string{"com.example.app.UserService.repository", "com.example.core.UserRepository"}, report.Path)
		assert.Len(t, report.Nodes, 2)
	})

	t.Run("unreachable", func(t *testing.T) {
		report, err := s.Path(ctx, doc, "com.example.core.User", "com.example.core.UserRepository")
		require.NoError(t, err)
		assert.False(t, report.Found)
		assert.Empty(t, report.Path)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := s.Path(ctx, doc, "com.example.Nope", "com.example.core.User")
		assert.ErrorIs(t, err, ErrUnknownNode)
	})
}

func TestService_Smells(t *testing.T) {
	s := NewService(memFetcher{"g.yaml": "types:\n  - id: a\n"}, Options{}, quietLogger())

	findings, err := s.Smells(context.Background(), "g.yaml")
	require.NoError(t, err)
	assert.Empty(t, findings)
}
