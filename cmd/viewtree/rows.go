package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"viewtree/internal/config"
	"viewtree/internal/tree"
	"viewtree/internal/ui"
)

type rowsOptions struct {
	query     string
	expandAll bool
	asJSON    bool
}

func newRowsCmd(d deps) *cobra.Command {
	var opts rowsOptions
	cmd := &cobra.Command{
		Use:   "rows [project]",
		Short: "Print the visible rows of a project's tree.",
		Long: `rows fetches a project and prints what the browser would show: the root
alone, every view with --expand-all, or the matches of --query with their
ancestors.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(args)
			if err != nil {
				return err
			}
			client, err := d.newClient(clientOptions())
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout())
			defer cancel()
			raw, err := client.FetchTree(ctx, config.GetString(config.KeyAPIToken), project)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", project, err)
			}

			c := tree.NewController()
			c.Load(project, raw)
			if opts.expandAll {
				c.ExpandAll()
			}
			rows, outcome := c.VisibleRows(opts.query)
			if opts.asJSON {
				return writeRowsJSON(cmd.OutOrStdout(), project, rows, outcome, c.Anomalies())
			}
			return writeRows(cmd.OutOrStdout(), rows, outcome)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.query, "query", "q", "", "Case-insensitive name search")
	f.BoolVar(&opts.expandAll, "expand-all", false, "Expand every view before listing")
	f.BoolVar(&opts.asJSON, "json", false, "Print rows as JSON")
	return cmd
}

// rowsJSON is the --json document. Outcome tells "nothing matched" apart
// from "nothing loaded" when Rows is empty.
type rowsJSON struct {
	Project   string    `json:"project"`
	Outcome   string    `json:"outcome"`
	Rows      []rowJSON `json:"rows"`
	Anomalies []string  `json:"anomalies,omitempty"`
}

type rowJSON struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Depth         int            `json:"depth"`
	HasChildren   bool           `json:"hasChildren"`
	Expanded      bool           `json:"expanded"`
	Match         bool           `json:"match,omitempty"`
	Status        string         `json:"status,omitempty"`
	ServerStatus  string         `json:"serverStatus,omitempty"`
	Issues        int            `json:"issues"`
	Tasks         int            `json:"tasks"`
	Captures      map[string]int `json:"captures,omitempty"`
	LastProcessed string         `json:"lastProcessed,omitempty"`
}

func toRowJSON(r tree.Row) rowJSON {
	out := rowJSON{
		ID:            r.Node.ID,
		Name:          r.Node.Name,
		Depth:         r.Depth,
		HasChildren:   r.HasChildren,
		Expanded:      r.IsExpanded,
		Match:         r.IsMatch,
		ServerStatus:  r.Node.ServerStatus,
		Issues:        r.Node.IssueCount,
		Tasks:         r.Node.TaskCount,
		LastProcessed: r.Node.LastUpdatedRaw,
	}
	if r.HasStatus {
		out.Status = r.Status.Label
	}
	if len(r.Node.Captures) > 0 {
		out.Captures = make(map[string]int, len(r.Node.Captures))
		for kind, n := range r.Node.Captures {
			out.Captures[string(kind)] = n
		}
	}
	return out
}

func writeRowsJSON(w io.Writer, project string, rows []tree.Row, outcome tree.Outcome, anomalies []tree.Anomaly) error {
	doc := rowsJSON{
		Project: project,
		Outcome: outcome.String(),
		Rows:    make([]rowJSON, 0, len(rows)),
	}
	for _, r := range rows {
		doc.Rows = append(doc.Rows, toRowJSON(r))
	}
	for _, a := range anomalies {
		doc.Anomalies = append(doc.Anomalies, a.String())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writeRows(w io.Writer, rows []tree.Row, outcome tree.Outcome) error {
	switch outcome {
	case tree.OutcomeNoResults:
		_, err := fmt.Fprintln(w, "No results found")
		return err
	case tree.OutcomeEmpty:
		_, err := fmt.Fprintln(w, "No views")
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("View Name", "Status", "Issues", "Tasks", "Phone", "360", "Video", "Drone", "Last Processed").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col >= 2 && col <= 7 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(rowCells(r)...)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func rowCells(r tree.Row) []string {
	marker := "  "
	if r.HasChildren {
		marker = "▶ "
		if r.IsExpanded {
			marker = "▼ "
		}
	}
	status := ""
	if st, ok := ui.DisplayStatus(r); ok {
		status = st.Label
	}
	cells := []string{
		strings.Repeat("  ", r.Depth) + marker + r.Node.Name,
		status,
		ui.FormatCount(r.Node.IssueCount),
		ui.FormatCount(r.Node.TaskCount),
	}
	for _, kind := range tree.CaptureKinds {
		cells = append(cells, ui.FormatCapture(r.Node, kind))
	}
	return append(cells, ui.FormatDate(r.Node))
}
