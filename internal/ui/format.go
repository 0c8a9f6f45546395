package ui

import (
	"time"

	"github.com/dustin/go-humanize"

	"viewtree/internal/tree"
)

// DateLayout is the display format of capture dates.
const DateLayout = "Jan 2, 2006"

const emptyCell = "-"

var timeNow = time.Now

// FormatCount renders an issue or task counter. Zero renders as "-".
func FormatCount(n int) string {
	if n <= 0 {
		return emptyCell
	}
	return humanize.Comma(int64(n))
}

// FormatCapture renders a capture counter. Unknown and zero render as "-".
func FormatCapture(n *tree.Node, kind tree.CaptureKind) string {
	count, ok := n.CaptureCount(kind)
	if !ok {
		return emptyCell
	}
	return FormatCount(count)
}

// FormatDate renders the last processed capture date.
func FormatDate(n *tree.Node) string {
	if !n.Processed() {
		return emptyCell
	}
	if n.LastUpdated.IsZero() {
		return n.LastUpdatedRaw
	}
	return n.LastUpdated.Local().Format(DateLayout)
}

// FormatRelative describes t relative to now, e.g. "3 days ago".
func FormatRelative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, timeNow(), "ago", "from now")
}

// DisplayStatus returns the badge to draw for row. Views without a server
// status never show one.
func DisplayStatus(row tree.Row) (tree.Status, bool) {
	if row.Node == nil || row.Node.ServerStatus == "" || !row.HasStatus {
		return tree.Status{}, false
	}
	return row.Status, true
}
