package main

import (
	"time"

	"github.com/spf13/cobra"

	"viewtree/internal/config"
	"viewtree/internal/ui"
	"viewtree/internal/views"
)

func newBrowseCmd(d deps) *cobra.Command {
	var (
		autoRefreshSeconds int
		outputFormat       string
		collapseOnClear    bool
	)
	cmd := &cobra.Command{
		Use:   "browse [project]",
		Short: "Open the interactive tree browser.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]any{}
			if cmd.Flags().Changed("auto-refresh-seconds") {
				overrides[config.KeyAutoRefreshSeconds] = max(autoRefreshSeconds, 0)
			}
			if cmd.Flags().Changed("output-format") {
				overrides[config.KeyOutputFormat] = outputFormat
			}
			if cmd.Flags().Changed("collapse-on-clear") {
				overrides[config.KeySearchCollapseOnClear] = collapseOnClear
			}
			if err := config.ApplyOverrides(overrides); err != nil {
				return err
			}

			project, err := resolveProject(args)
			if err != nil {
				return err
			}
			client, err := d.newClient(clientOptions())
			if err != nil {
				return err
			}
			return d.runTUI(browseConfig(client, project))
		},
	}
	f := cmd.Flags()
	f.IntVar(&autoRefreshSeconds, "auto-refresh-seconds", 0, "Refetch the tree every N seconds (0 disables)")
	f.StringVar(&outputFormat, "output-format", "", "Detail pane markdown style (rich, light, plain, auto)")
	f.BoolVar(&collapseOnClear, "collapse-on-clear", false, "Collapse what a search expanded when it is cleared")
	return cmd
}

// browseConfig assembles the UI settings from the merged configuration.
func browseConfig(client views.Client, project string) ui.Config {
	return ui.Config{
		Client:          client,
		ProjectID:       project,
		Token:           config.GetString(config.KeyAPIToken),
		FetchTimeout:    fetchTimeout(),
		RefreshInterval: time.Duration(config.GetInt(config.KeyAutoRefreshSeconds)) * time.Second,
		CollapseOnClear: config.GetBool(config.KeySearchCollapseOnClear),
		WebBaseURL:      config.GetString(config.KeyWebBaseURL),
		OutputFormat:    config.GetString(config.KeyOutputFormat),
		Version:         Version,
	}
}
