package views

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"viewtree/internal/debug"
	appErrors "viewtree/internal/errors"
)

// Schema of a project hierarchy export. parent is NULL (or empty) for the
// root view; siblings are ordered by position.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS views (
	id           TEXT PRIMARY KEY,
	project      TEXT NOT NULL,
	parent       TEXT,
	name         TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT '',
	is_exterior  INTEGER NOT NULL DEFAULT 0,
	status       TEXT NOT NULL DEFAULT '',
	last_updated TEXT,
	issue_count  INTEGER,
	task_count   INTEGER,
	design_count INTEGER NOT NULL DEFAULT 0,
	position     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_views_project ON views(project);
CREATE TABLE IF NOT EXISTS view_captures (
	view_id TEXT NOT NULL,
	kind    TEXT NOT NULL,
	count   INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (view_id, kind)
);
CREATE TABLE IF NOT EXISTS view_snapshots (
	view_id           TEXT PRIMARY KEY,
	active            INTEGER,
	inactive          INTEGER,
	review            INTEGER,
	latest_state      TEXT,
	latest_capture_at TEXT
);
`

// CreateSchema creates the export tables in db when they do not exist.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create views schema: %w", err)
	}
	return nil
}

// sqliteClient reads a project hierarchy from an export database in
// read-only mode. The token is ignored.
type sqliteClient struct {
	dbPath string
	dsn    string
}

// NewSQLiteClient constructs a client reading the export at dbPath.
func NewSQLiteClient(dbPath string) (Client, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, "sqlite source requires database.path", nil)
	}
	return &sqliteClient{dbPath: trimmed, dsn: buildSQLiteDSN(trimmed)}, nil
}

// buildSQLiteDSN creates a read-only DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *sqliteClient) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", c.dsn)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeSourceUnavailable, "open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeSourceUnavailable,
			fmt.Sprintf("open %s", c.dbPath), err)
	}
	return db, nil
}

func (c *sqliteClient) FetchTree(ctx context.Context, _ string, projectID string) (*RawView, error) {
	id, err := normalizeProjectID(projectID)
	if err != nil {
		return nil, err
	}
	db, err := c.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	byID, ordered, err := loadViews(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if len(ordered) == 0 {
		return nil, appErrors.New(appErrors.CodeNotFound, "project "+id+" not found", nil)
	}
	if err := loadCaptures(ctx, db, id, byID); err != nil {
		return nil, err
	}
	if err := loadSnapshots(ctx, db, id, byID); err != nil {
		return nil, err
	}
	return assemble(id, ordered, byID)
}

func loadViews(ctx context.Context, db *sql.DB, projectID string) (map[string]*RawView, []*RawView, error) {
	const query = `SELECT id, COALESCE(parent, ''), name, type, is_exterior, status,
		       last_updated, issue_count, task_count, design_count
		FROM views WHERE project = ? ORDER BY position, id`

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, nil, appErrors.New(appErrors.CodeDecodeFailed, "query views", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	byID := make(map[string]*RawView)
	var ordered []*RawView
	for rows.Next() {
		var (
			v           RawView
			parent      string
			exterior    int
			lastUpdated sql.NullString
			issues      sql.NullInt64
			tasks       sql.NullInt64
			designs     int
		)
		if err := rows.Scan(&v.ID, &parent, &v.Name, &v.Type, &exterior, &v.Status,
			&lastUpdated, &issues, &tasks, &designs); err != nil {
			return nil, nil, appErrors.New(appErrors.CodeDecodeFailed, "scan view", err)
		}
		v.Project = projectID
		v.IsExterior = exterior != 0
		v.DesignTotal = &designs
		if parent != "" {
			v.Parent = &parent
		}
		if lastUpdated.Valid {
			v.LastUpdated = &lastUpdated.String
		}
		if issues.Valid {
			n := int(issues.Int64)
			v.IssueCount = &n
		}
		if tasks.Valid {
			n := int(tasks.Int64)
			v.TaskCount = &n
		}
		view := &v
		byID[view.ID] = view
		ordered = append(ordered, view)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, appErrors.New(appErrors.CodeDecodeFailed, "read views", err)
	}
	return byID, ordered, nil
}

func loadCaptures(ctx context.Context, db *sql.DB, projectID string, byID map[string]*RawView) error {
	const query = `SELECT c.view_id, c.kind, c.count
		FROM view_captures c JOIN views v ON v.id = c.view_id
		WHERE v.project = ? ORDER BY c.view_id, c.kind`

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return appErrors.New(appErrors.CodeDecodeFailed, "query captures", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var viewID, kind string
		var count int
		if err := rows.Scan(&viewID, &kind, &count); err != nil {
			return appErrors.New(appErrors.CodeDecodeFailed, "scan capture", err)
		}
		v := byID[viewID]
		if v == nil {
			continue
		}
		if v.Capture == nil {
			v.Capture = make(map[string]int)
		}
		v.Capture[kind] = count
	}
	if err := rows.Err(); err != nil {
		return appErrors.New(appErrors.CodeDecodeFailed, "read captures", err)
	}
	return nil
}

func loadSnapshots(ctx context.Context, db *sql.DB, projectID string, byID map[string]*RawView) error {
	const query = `SELECT s.view_id, s.active, s.inactive, s.review, s.latest_state, s.latest_capture_at
		FROM view_snapshots s JOIN views v ON v.id = s.view_id
		WHERE v.project = ?`

	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return appErrors.New(appErrors.CodeDecodeFailed, "query snapshots", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			viewID                   string
			active, inactive, review sql.NullInt64
			state, capturedAt        sql.NullString
		)
		if err := rows.Scan(&viewID, &active, &inactive, &review, &state, &capturedAt); err != nil {
			return appErrors.New(appErrors.CodeDecodeFailed, "scan snapshot", err)
		}
		v := byID[viewID]
		if v == nil {
			continue
		}
		snap := &Snapshots{
			ActiveCount:   nullInt(active),
			InactiveCount: nullInt(inactive),
			ReviewCount:   nullInt(review),
		}
		if state.Valid {
			snap.LatestSnapshot = &LatestSnapshot{State: state.String, CaptureDateTime: capturedAt.String}
		}
		v.Snapshots = snap
	}
	if err := rows.Err(); err != nil {
		return appErrors.New(appErrors.CodeDecodeFailed, "read snapshots", err)
	}
	return nil
}

// assemble links views to their parents in row order. Views whose parent is
// missing from the export, or is the view itself, are dropped.
func assemble(projectID string, ordered []*RawView, byID map[string]*RawView) (*RawView, error) {
	var root *RawView
	for _, v := range ordered {
		if v.Parent == nil {
			if root != nil {
				return nil, appErrors.New(appErrors.CodeDecodeFailed,
					fmt.Sprintf("project %s has more than one root view (%s, %s)", projectID, root.ID, v.ID), nil)
			}
			root = v
			continue
		}
		parent := byID[*v.Parent]
		if parent == nil || parent == v {
			debug.Logf("sqlite: view %s references missing parent %s, skipped", v.ID, *v.Parent)
			continue
		}
		parent.Children = append(parent.Children, v)
	}
	if root == nil {
		return nil, appErrors.New(appErrors.CodeDecodeFailed, "project "+projectID+" has no root view", nil)
	}
	return root, nil
}

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
