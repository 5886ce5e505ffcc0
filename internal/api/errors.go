package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/nikbrunner/fellows/internal/model"
)

const maxErrorBodySize = 1 << 16

// ErrInvalidResponse means a 2xx body could not be decoded.
var ErrInvalidResponse = errors.New("invalid backend response")

// translateError turns a non-2xx response into a *model.ServerError using the
// backend's {"error": "..."} or {"message": "..."} body when present.
func translateError(resp *http.Response) error {
	message := ""
	if resp.Body != nil {
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if err == nil {
			message = errorMessage(data)
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &model.ServerError{Status: resp.StatusCode, Message: message}
}

func errorMessage(data []byte) string {
	var body model.Result
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
		return ""
	}
	// Flask renders unhandled errors as HTML.
	text := strings.TrimSpace(string(data))
	if text != "" && !strings.HasPrefix(text, "<") && len(text) < 200 {
		return text
	}
	return ""
}

// checkResult maps a 2xx acknowledgement with success:false to a server error.
func checkResult(res model.Result) error {
	if res.Success {
		return nil
	}
	message := res.Error
	if message == "" {
		message = res.Message
	}
	return &model.ServerError{Status: http.StatusOK, Message: message}
}
