package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"viewtree/internal/config"
	"viewtree/internal/debug"
	appErrors "viewtree/internal/errors"
	"viewtree/internal/tree"
	"viewtree/internal/views"
)

const summaryConcurrency = 4

// projectSummary is the outcome of summarizing one project.
type projectSummary struct {
	Project string
	Stats   tree.Stats
	Err     error
}

func newSummaryCmd(d deps) *cobra.Command {
	return &cobra.Command{
		Use:   "summary project...",
		Short: "Fetch several projects and print their status tallies.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := d.newClient(clientOptions())
			if err != nil {
				return err
			}
			results, err := summarize(cmd.Context(), client, config.GetString(config.KeyAPIToken), args)
			if err != nil {
				return err
			}
			if err := writeSummary(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					return fmt.Errorf("%d of %d projects failed", countFailed(results), len(results))
				}
			}
			return nil
		},
	}
}

// summarize fetches projects concurrently. Per-project failures are kept in
// the result; an unauthorized token aborts the whole run since every other
// request would fail the same way.
func summarize(ctx context.Context, client views.Client, token string, projects []string) ([]projectSummary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]projectSummary, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)

	for i, project := range projects {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, fetchTimeout())
			defer cancel()

			results[i].Project = project
			raw, err := client.FetchTree(fctx, token, project)
			if err != nil {
				debug.Warnf("summary: fetch %s: %v", project, err)
				if appErrors.IsCode(err, appErrors.CodeUnauthorized) {
					return fmt.Errorf("fetch %s: %w", project, err)
				}
				results[i].Err = err
				return nil
			}
			root, anomalies := tree.NewBuilder().Build(raw)
			if len(anomalies) > 0 {
				debug.Logf("summary: %s has %d anomalies", project, len(anomalies))
			}
			results[i].Stats = tree.Summarize(root)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func countFailed(results []projectSummary) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

func writeSummary(w io.Writer, results []projectSummary) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Project", "Views", "Depth", tree.LabelNoDesign, tree.LabelNoReality, tree.LabelProcessing, "Unprocessed", "Issues", "Tasks").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	for _, r := range results {
		if r.Err != nil {
			t.Row(r.Project, "error: "+string(appErrors.CodeOf(r.Err)), "", "", "", "", "", "", "")
			continue
		}
		s := r.Stats
		t.Row(
			r.Project,
			humanize.Comma(int64(s.Total)),
			strconv.Itoa(s.MaxDepth),
			strconv.Itoa(s.NoDesign),
			strconv.Itoa(s.NoReality),
			strconv.Itoa(s.Processing),
			strconv.Itoa(s.Unprocessed),
			humanize.Comma(int64(s.Issues)),
			humanize.Comma(int64(s.Tasks)),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
