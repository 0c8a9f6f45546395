package views

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "viewtree/internal/errors"
)

func writeExport(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "views.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	require.NoError(t, CreateSchema(ctx, db))
	for _, stmt := range stmts {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func TestSQLiteClientAssemblesTree(t *testing.T) {
	path := writeExport(t,
		`INSERT INTO views (id, project, parent, name, type, status, last_updated, issue_count, task_count, design_count, position) VALUES
			('b1', 'PRJ1', NULL, 'Building', 'building', 'Active', '2024-03-02T10:00:00Z', 3, NULL, 2, 0),
			('f2', 'PRJ1', 'b1', 'Floor2', 'floor', '', NULL, NULL, NULL, 0, 2),
			('f1', 'PRJ1', 'b1', 'Floor1', 'floor', '', NULL, 0, 5, 1, 1),
			('r1', 'PRJ1', 'f1', 'Bathroom', 'room', '', NULL, NULL, NULL, 0, 0),
			('x1', 'OTHER', NULL, 'Elsewhere', 'building', '', NULL, NULL, NULL, 0, 0)`,
		`INSERT INTO view_captures (view_id, kind, count) VALUES
			('b1', '360 Image', 7), ('b1', 'Drone Image', 0), ('f1', 'Phone Image', 2)`,
		`INSERT INTO view_snapshots (view_id, active, inactive, review, latest_state, latest_capture_at) VALUES
			('b1', 1, 0, 0, 'Inactive', '2024-03-01T08:00:00Z'),
			('f1', 0, 0, 1, NULL, NULL)`,
	)

	client, err := NewSQLiteClient(path)
	require.NoError(t, err)

	root, err := client.FetchTree(context.Background(), "ignored", "PRJ1")
	require.NoError(t, err)
	require.Equal(t, "Building", root.Name)
	require.Equal(t, 4, root.Count(), "views of other projects are excluded")
	require.Equal(t, 2, root.DesignCount())
	require.Equal(t, 3, *root.IssueCount)
	require.Nil(t, root.TaskCount)
	require.Equal(t, map[string]int{Capture360Image: 7, CaptureDroneImage: 0}, root.Capture)
	require.Equal(t, SnapshotStateInactive, root.Latest().State)
	require.Equal(t, "2024-03-01T08:00:00Z", root.Latest().CaptureDateTime)

	require.Len(t, root.Children, 2)
	require.Equal(t, "Floor1", root.Children[0].Name, "siblings follow position")
	require.Equal(t, "Floor2", root.Children[1].Name)

	floor1 := root.Children[0]
	require.Equal(t, 5, *floor1.TaskCount)
	require.NotNil(t, floor1.Snapshots)
	require.Nil(t, floor1.Latest(), "NULL latest_state means no reality capture")
	require.Equal(t, 1, *floor1.Snapshots.ReviewCount)
	require.Equal(t, "Bathroom", floor1.Children[0].Name)
	require.Nil(t, root.Children[1].Snapshots)
}

func TestSQLiteClientErrors(t *testing.T) {
	t.Run("missing project", func(t *testing.T) {
		path := writeExport(t)
		client, err := NewSQLiteClient(path)
		require.NoError(t, err)

		_, err = client.FetchTree(context.Background(), "", "PRJ1")
		require.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))
	})

	t.Run("two roots", func(t *testing.T) {
		path := writeExport(t,
			`INSERT INTO views (id, project, parent, name) VALUES ('a', 'P', NULL, 'A'), ('b', 'P', '', 'B')`)
		client, err := NewSQLiteClient(path)
		require.NoError(t, err)

		_, err = client.FetchTree(context.Background(), "", "P")
		require.Equal(t, appErrors.CodeDecodeFailed, appErrors.CodeOf(err))
	})

	t.Run("orphans and self parents are skipped", func(t *testing.T) {
		path := writeExport(t,
			`INSERT INTO views (id, project, parent, name, position) VALUES
				('root', 'P', NULL, 'Root', 0), ('o', 'P', 'gone', 'Orphan', 1), ('s', 'P', 's', 'Self', 2)`)
		client, err := NewSQLiteClient(path)
		require.NoError(t, err)

		root, err := client.FetchTree(context.Background(), "", "P")
		require.NoError(t, err)
		require.Equal(t, 1, root.Count())
	})

	t.Run("missing database", func(t *testing.T) {
		client, err := NewSQLiteClient(filepath.Join(t.TempDir(), "absent.db"))
		require.NoError(t, err)

		_, err = client.FetchTree(context.Background(), "", "P")
		require.Equal(t, appErrors.CodeSourceUnavailable, appErrors.CodeOf(err))
	})

	t.Run("blank path", func(t *testing.T) {
		_, err := NewSQLiteClient("  ")
		require.Equal(t, appErrors.CodeConfigurationError, appErrors.CodeOf(err))
	})
}

func TestBuildSQLiteDSNIsReadOnly(t *testing.T) {
	dsn := buildSQLiteDSN("/tmp/exports/views.db")
	require.Contains(t, dsn, "file:///tmp/exports/views.db?")
	require.Contains(t, dsn, "mode=ro")
	require.Contains(t, dsn, "_pragma=busy_timeout%283000%29")
}
