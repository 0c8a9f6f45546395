package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"viewtree/internal/config"
	"viewtree/internal/debug"
	appErrors "viewtree/internal/errors"
	"viewtree/internal/ui"
	"viewtree/internal/views"
)

// deps are the seams the commands reach the outside world through.
type deps struct {
	out       io.Writer
	errOut    io.Writer
	newClient func(views.Options) (views.Client, error)
	runTUI    func(ui.Config) error
}

func defaultDeps() deps {
	return deps{
		out:       os.Stdout,
		errOut:    os.Stderr,
		newClient: views.NewClient,
		runTUI:    runProgram,
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

func runProgram(cfg ui.Config) error {
	app, err := ui.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	var prog programRunner = tea.NewProgram(app, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}

// globalFlags maps persistent flags onto configuration keys. Only flags the
// user set are applied so config files and env keep working.
var globalFlags = []struct {
	flag string
	key  string
}{
	{"token", config.KeyAPIToken},
	{"base-url", config.KeyAPIBaseURL},
	{"source", config.KeySource},
	{"db-path", config.KeyDatabasePath},
	{"log-level", config.KeyLogLevel},
}

func newRootCmd(d deps) *cobra.Command {
	var debugEnabled bool

	root := &cobra.Command{
		Use:   "viewtree [project]",
		Short: "Browse the view hierarchy of a construction project.",
		Long: `viewtree shows a project's views (floors, rooms, zones) as an expandable tree
with design and reality status, issue and task counts and capture totals.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("initialize config: %w", err)
			}
			overrides := map[string]any{}
			for _, f := range globalFlags {
				if cmd.Flags().Changed(f.flag) {
					value, _ := cmd.Flags().GetString(f.flag)
					overrides[f.key] = strings.TrimSpace(value)
				}
			}
			if err := config.ApplyOverrides(overrides); err != nil {
				return err
			}
			if err := config.Validate(); err != nil {
				return err
			}
			if err := debug.Init(debugEnabled, config.GetString(config.KeyLogLevel)); err != nil {
				return fmt.Errorf("initialize debug log: %w", err)
			}
			debug.WithFields(map[string]any{
				"command": cmd.Name(),
				"source":  config.GetString(config.KeySource),
			}).Info("starting")
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			debug.Close()
		},
	}
	root.SetOut(d.out)
	root.SetErr(d.errOut)

	pf := root.PersistentFlags()
	pf.String("token", "", "API bearer token (or VT_API_TOKEN)")
	pf.String("base-url", "", "API base URL")
	pf.String("source", "", "View source: http or sqlite")
	pf.String("db-path", "", "SQLite export to read when --source=sqlite")
	pf.String("log-level", "", "Debug log level: debug, info, warn, error")
	pf.BoolVar(&debugEnabled, "debug", false, "Write a debug log to ~/.viewtree/debug.log")

	browse := newBrowseCmd(d)
	root.RunE = browse.RunE
	root.Flags().AddFlagSet(browse.Flags())

	root.AddCommand(browse, newRowsCmd(d), newSummaryCmd(d), newVersionCmd(d))
	return root
}

// resolveProject picks the positional project id or falls back to the
// configured default.
func resolveProject(args []string) (string, error) {
	project := ""
	if len(args) > 0 {
		project = strings.TrimSpace(args[0])
	}
	if project == "" {
		project = strings.TrimSpace(config.GetString(config.KeyProject))
	}
	if project == "" {
		return "", appErrors.New(appErrors.CodeInvalidProject,
			"project id is required (pass it as an argument or set "+config.KeyProject+")", nil)
	}
	return project, nil
}

func clientOptions() views.Options {
	return views.Options{
		Source:       config.GetString(config.KeySource),
		BaseURL:      config.GetString(config.KeyAPIBaseURL),
		Timeout:      config.GetDuration(config.KeyAPITimeout),
		RetryMax:     config.GetInt(config.KeyAPIRetryMax),
		DatabasePath: config.GetString(config.KeyDatabasePath),
	}
}

// fetchTimeout bounds a whole fetch including retries.
func fetchTimeout() time.Duration {
	per := config.GetDuration(config.KeyAPITimeout)
	if per <= 0 {
		per = config.DefaultAPITimeout
	}
	return per * time.Duration(config.GetInt(config.KeyAPIRetryMax)+1)
}
