package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "viewtree/internal/errors"
	"viewtree/internal/views"
)

func TestSummaryTalliesEachProject(t *testing.T) {
	h := newHarness(t)
	h.client.SetTree("PRJ2", rawView("R", "Tower", rawView("L1", "Level 1")))

	err := h.run("summary", "PRJ1", "PRJ2", "MISSING")
	require.ErrorContains(t, err, "1 of 3 projects failed")

	out := h.out.String()
	require.Contains(t, out, "PRJ1")
	require.Contains(t, out, "PRJ2")
	require.Contains(t, out, "error: not_found")
}

func TestSummarizeKeepsOrderAndStats(t *testing.T) {
	h := newHarness(t)
	h.client.SetTree("PRJ2", rawView("R", "Tower", rawView("L1", "Level 1")))

	results, err := summarize(context.Background(), h.client, "", []string{"PRJ2", "PRJ1"})
	require.NoError(t, err)
	require.Equal(t, "PRJ2", results[0].Project)
	require.Equal(t, 2, results[0].Stats.Total)
	require.Equal(t, 6, results[1].Stats.Total)
	require.Equal(t, 1, results[1].Stats.NoDesign)
	require.Equal(t, 4, results[1].Stats.Issues)
}

func TestSummarizeAbortsOnUnauthorized(t *testing.T) {
	client := &views.MockClient{Err: appErrors.New(appErrors.CodeUnauthorized, "token rejected", nil)}
	newHarness(t)

	_, err := summarize(context.Background(), client, "bad", []string{"A", "B"})
	require.True(t, appErrors.IsCode(err, appErrors.CodeUnauthorized), "err = %v", err)
}
