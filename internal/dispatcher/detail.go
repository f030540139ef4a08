package dispatcher

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// authEndpointPrefixes are paths that never trigger a refresh of their own.
var authEndpointPrefixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/code",
	"/auth/refresh",
}

// authDetailMarkers are lower-case fragments of a 403 detail that mean the
// credentials are the problem rather than the caller's role.
var authDetailMarkers = []string{
	"not authenticated",
	"access token",
	"token",
	"could not validate credentials",
}

// ExtractDetail returns the human-readable "detail" of an error body.
//
// The backend sends detail either as a string or as a list of validation
// errors; for a list the first entry's "msg" (or "message") is used. Any
// other detail value is rendered as text. Bodies without a detail, or that
// are not JSON objects, yield "".
func ExtractDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	raw := bytes.TrimSpace(envelope.Detail)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return validationMessage(list[0])
	}

	return stringify(raw)
}

func validationMessage(item json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err == nil {
		for _, key := range []string{"msg", "message"} {
			if v, ok := fields[key]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
				return stringify(v)
			}
		}
	}
	return stringify(item)
}

// stringify renders a JSON value as text: strings lose their quotes, null
// becomes "", everything else is kept as compact JSON.
func stringify(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// ShouldTryRefresh reports whether a failed response means the access token
// is missing, expired or invalid. Every 401 qualifies; a 403 qualifies only
// when its detail mentions an authentication problem, so role denials such
// as "only teachers may access this resource" are left alone.
func ShouldTryRefresh(statusCode int, detail string) bool {
	switch statusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		d := strings.ToLower(detail)
		for _, marker := range authDetailMarkers {
			if strings.Contains(d, marker) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsAuthEndpoint reports whether path belongs to the login, registration,
// email-code or refresh endpoints.
func IsAuthEndpoint(path string) bool {
	for _, prefix := range authEndpointPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
