package views

import (
	"context"
	"errors"
	"sync"

	appErrors "viewtree/internal/errors"
)

// ErrMockNotImplemented is returned when a MockClient has neither a tree nor an override.
var ErrMockNotImplemented = errors.New("views.MockClient: no tree configured")

// FetchCall records one FetchTree invocation.
type FetchCall struct {
	Token     string
	ProjectID string
}

// MockClient is a test double for Client.
type MockClient struct {
	// FetchTreeFn overrides every other field when set.
	FetchTreeFn func(context.Context, string, string) (*RawView, error)
	// Trees answers by project id; a missing project yields not_found.
	Trees map[string]*RawView
	// Err is returned for every call when set.
	Err error

	mu    sync.Mutex
	calls []FetchCall
}

// NewMockClient returns a mock serving the given trees keyed by project id.
func NewMockClient(trees map[string]*RawView) *MockClient {
	return &MockClient{Trees: trees}
}

func (m *MockClient) FetchTree(ctx context.Context, token, projectID string) (*RawView, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{Token: token, ProjectID: projectID})
	fn, trees, err := m.FetchTreeFn, m.Trees, m.Err
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, token, projectID)
	}
	if err != nil {
		return nil, err
	}
	if trees == nil {
		return nil, ErrMockNotImplemented
	}
	tree, ok := trees[projectID]
	if !ok {
		return nil, appErrors.New(appErrors.CodeNotFound, "project "+projectID+" not found", nil)
	}
	return tree, nil
}

// SetTree replaces the tree served for projectID.
func (m *MockClient) SetTree(projectID string, tree *RawView) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Trees == nil {
		m.Trees = make(map[string]*RawView)
	}
	m.Trees[projectID] = tree
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]FetchCall, len(m.calls))
	copy(out, m.calls)
	return out
}
