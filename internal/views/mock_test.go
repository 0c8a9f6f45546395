package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "viewtree/internal/errors"
)

func TestMockClientServesTreesAndRecordsCalls(t *testing.T) {
	tree := &RawView{ID: "root", Name: "Site"}
	m := NewMockClient(map[string]*RawView{"PRJ1": tree})

	got, err := m.FetchTree(context.Background(), "tok", "PRJ1")
	require.NoError(t, err)
	require.Same(t, tree, got)

	_, err = m.FetchTree(context.Background(), "tok", "PRJ2")
	require.Equal(t, appErrors.CodeNotFound, appErrors.CodeOf(err))

	require.Equal(t, []FetchCall{{Token: "tok", ProjectID: "PRJ1"}, {Token: "tok", ProjectID: "PRJ2"}}, m.Calls())
}

func TestMockClientOverrides(t *testing.T) {
	boom := errors.New("boom")
	m := &MockClient{Err: boom}
	_, err := m.FetchTree(context.Background(), "", "P")
	require.ErrorIs(t, err, boom)

	m = &MockClient{}
	_, err = m.FetchTree(context.Background(), "", "P")
	require.ErrorIs(t, err, ErrMockNotImplemented)

	m.SetTree("P", &RawView{ID: "r"})
	got, err := m.FetchTree(context.Background(), "", "P")
	require.NoError(t, err)
	require.Equal(t, "r", got.ID)

	m.FetchTreeFn = func(context.Context, string, string) (*RawView, error) {
		return &RawView{ID: "fn"}, nil
	}
	got, err = m.FetchTree(context.Background(), "", "P")
	require.NoError(t, err)
	require.Equal(t, "fn", got.ID)
}
