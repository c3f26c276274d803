package statuses

import (
	"net/http"
	"strconv"
	"strings"
)

// Error status bounds accepted by Parse.
const (
	MinError = http.StatusBadRequest
	MaxError = 599
)

// Unknown is returned by Message for codes missing from the table.
const Unknown = "Unknown"

// extra covers codes that clients and proxies emit but net/http does not name.
var extra = map[int]string{
	420: "Enhance Your Calm",
	509: "Bandwidth Limit Exceeded",
}

var (
	messages map[int]string
	codes    map[string]int
)

func init() {
	messages = make(map[int]string, 70)
	codes = make(map[string]int, 70)

	for code := 100; code <= 599; code++ {
		text := http.StatusText(code)
		if text == "" {
			text = extra[code]
		}
		if text == "" {
			continue
		}
		messages[code] = text
		codes[strings.ToLower(text)] = code
	}
}

// Message returns the canonical reason phrase for code, or Unknown.
func Message(code int) string {
	if text, ok := messages[code]; ok {
		return text
	}
	return Unknown
}

// Code looks a status up by its reason phrase, case-insensitively.
func Code(message string) (int, bool) {
	code, ok := codes[strings.ToLower(strings.TrimSpace(message))]
	return code, ok
}

// Known reports whether code is present in the table.
func Known(code int) bool {
	_, ok := messages[code]
	return ok
}

// IsError reports whether code is a known 4xx or 5xx status.
func IsError(code int) bool {
	return code >= MinError && code <= MaxError && Known(code)
}

// IsClientError reports whether code is in the 4xx class.
func IsClientError(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// IsServerError reports whether code is in the 5xx class.
func IsServerError(code int) bool {
	return code >= http.StatusInternalServerError && code <= MaxError
}

// IsRetry reports whether a client may reasonably retry a request that
// failed with code.
func IsRetry(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		420,
		http.StatusMisdirectedRequest,
		http.StatusTooEarly,
		http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Parse reports the status named by s when s consists solely of a
// three-digit error status (400-599) present in the table.
func Parse(s string) (int, bool) {
	if len(s) != 3 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	code, err := strconv.Atoi(s)
	if err != nil || !IsError(code) {
		return 0, false
	}
	return code, true
}

// All returns the error statuses of the table in ascending order.
func All() []int {
	out := make([]int, 0, 45)
	for code := MinError; code <= MaxError; code++ {
		if Known(code) {
			out = append(out, code)
		}
	}
	return out
}
