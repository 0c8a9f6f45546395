package views

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	appErrors "viewtree/internal/errors"
)

// statusError maps a non-2xx response to a coded error. The server's own
// message is appended when the body carries one.
func statusError(status int, projectID string, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	var code appErrors.Code
	var msg string
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		code = appErrors.CodeUnauthorized
		msg = "not authorized to read project " + projectID
	case http.StatusNotFound:
		code = appErrors.CodeNotFound
		msg = "project " + projectID + " not found"
	default:
		code = appErrors.CodeFetchFailed
		msg = fmt.Sprintf("views request for project %s returned %d", projectID, status)
	}
	if detail := serverMessage(body); detail != "" {
		msg += ": " + detail
	}
	return appErrors.New(code, msg, nil)
}

func serverMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"message", "error.message", "error"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String {
			return strings.TrimSpace(r.Str)
		}
	}
	return ""
}
