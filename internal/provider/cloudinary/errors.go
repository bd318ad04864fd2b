package cloudinary

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrDuplicate is returned by an upload with overwrite disabled when the
// public ID already exists in the destination account.
var ErrDuplicate = errors.New("resource already exists (overwrite disabled)")

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

func parseAPIError(status int, body []byte) error {
	var out struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &out); err == nil {
		msg = strings.TrimSpace(out.Error.Message)
	}
	if msg == "" {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		msg = http.StatusText(status)
		if snippet != "" {
			msg += ": " + snippet
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}
