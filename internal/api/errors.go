package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the service. Message is the
// server-supplied explanation, or a status-based fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// errorBody is the optional JSON shape of an error response. FastAPI
// sends detail as a string for HTTPException and as a list of
// validation entries for request-model failures.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationEntry struct {
	Msg string `json:"msg"`
}

// newAPIError builds the error for a failed response. body may be empty
// or not JSON at all.
func newAPIError(status int, body []byte) *APIError {
	if msg := extractMessage(body); msg != "" {
		return &APIError{StatusCode: status, Message: msg}
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("Request failed (%d)", status)}
}

func extractMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if msg := detailMessage(parsed.Detail); msg != "" {
		return msg
	}
	return parsed.Message
}

func detailMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var entries []validationEntry
	if err := json.Unmarshal(raw, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
