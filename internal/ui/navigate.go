package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"viewtree/internal/tree"
)

// DefaultWebBaseURL is the dashboard host that navigation targets.
const DefaultWebBaseURL = "https://app.constructn.ai"

// Navigator follows a NavigationRequest and returns a short confirmation.
type Navigator interface {
	Navigate(req tree.NavigationRequest) (string, error)
}

// ClipboardNavigator resolves the request against the dashboard host and
// copies the resulting link to the system clipboard.
type ClipboardNavigator struct {
	baseURL string
	write   func(string) error
}

// NewClipboardNavigator creates a navigator for the dashboard at baseURL.
func NewClipboardNavigator(baseURL string) *ClipboardNavigator {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultWebBaseURL
	}
	return &ClipboardNavigator{baseURL: base, write: clipboard.WriteAll}
}

// URL returns the absolute dashboard link for req.
func (n *ClipboardNavigator) URL(req tree.NavigationRequest) string {
	return n.baseURL + req.Path
}

func (n *ClipboardNavigator) Navigate(req tree.NavigationRequest) (string, error) {
	link := n.URL(req)
	if err := n.write(link); err != nil {
		return "", fmt.Errorf("copy link: %w", err)
	}
	return "Copied link " + link, nil
}
