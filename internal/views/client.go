package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	appErrors "viewtree/internal/errors"
)

// Source names accepted by NewClient.
const (
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

// Client fetches the full view hierarchy of a project in one request.
type Client interface {
	FetchTree(ctx context.Context, token, projectID string) (*RawView, error)
}

// Options selects and configures a Client.
type Options struct {
	Source       string
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int
	DatabasePath string
}

// NewClient builds the client for the configured source.
func NewClient(opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Source)) {
	case "", SourceHTTP:
		return NewHTTPClient(opts.BaseURL,
			WithTimeout(opts.Timeout),
			WithRetryMax(opts.RetryMax),
		)
	case SourceSQLite:
		return NewSQLiteClient(opts.DatabasePath)
	default:
		return nil, appErrors.New(appErrors.CodeConfigurationError,
			fmt.Sprintf("unknown source %q", opts.Source), nil)
	}
}

func normalizeProjectID(projectID string) (string, error) {
	id := strings.TrimSpace(projectID)
	if id == "" {
		return "", appErrors.New(appErrors.CodeInvalidProject, "project id is required", nil)
	}
	return id, nil
}
