package tree

import "viewtree/internal/views"

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// view builds a payload node that resolves to no badge unless adjusted.
func view(id, name string, children ...*views.RawView) *views.RawView {
	for _, c := range children {
		if c != nil {
			c.Parent = strPtr(id)
		}
	}
	return &views.RawView{
		ID:       id,
		Name:     name,
		Children: children,
		Designs:  []views.Design{{ID: "d-" + id}},
		Snapshots: &views.Snapshots{
			LatestSnapshot: &views.LatestSnapshot{State: "Active", CaptureDateTime: "2024-03-01T08:00:00Z"},
		},
	}
}

// buildingTree is the Building > Floor1 > Bathroom hierarchy.
func buildingTree() *views.RawView {
	return view("R", "Building",
		view("A", "Floor1",
			view("A1", "Bathroom"),
		),
	)
}

// siteTree has two floors with a few rooms each.
func siteTree() *views.RawView {
	return view("S", "Site",
		view("F1", "Floor 1",
			view("F1-K", "Kitchen"),
			view("F1-B", "Bathroom"),
		),
		view("F2", "Floor 2",
			view("F2-B", "Bathroom East"),
			view("F2-O", "Office",
				view("F2-O-C", "Closet"),
			),
		),
		view("EX", "Exterior"),
	)
}

func loaded(raw *views.RawView, opts ...Option) *Controller {
	c := NewController(opts...)
	c.Load("PRJ1", raw)
	return c
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Node.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
