// Package retrycodes maps low-level transport and name-resolution failures to
// HTTP statuses that tell a client the request may be retried.
//
// Codes follow the symbolic names used by resolvers and socket layers
// (ECONNRESET, ENOTFOUND, ETIMEOUT, ...). Go errors do not carry such names,
// so CodeOf derives one from the error chain: *net.DNSError, syscall.Errno,
// deadline errors, net.Error timeouts, and any error exposing Code() string.
package retrycodes

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"syscall"
)

// table is populated once and read-only afterwards.
var table = map[string]int{
	// socket layer
	"ECONNRESET":      http.StatusRequestTimeout,
	"ECONNREFUSED":    http.StatusRequestTimeout,
	"ECONNABORTED":    http.StatusRequestTimeout,
	"ETIMEDOUT":       http.StatusRequestTimeout,
	"ESOCKETTIMEDOUT": http.StatusRequestTimeout,
	"EPIPE":           http.StatusRequestTimeout,
	"EHOSTUNREACH":    http.StatusRequestTimeout,
	"EHOSTDOWN":       http.StatusRequestTimeout,
	"ENETUNREACH":     http.StatusRequestTimeout,
	"ENETDOWN":        http.StatusRequestTimeout,
	"ENETRESET":       http.StatusRequestTimeout,

	// resolver
	"ETIMEOUT":   http.StatusRequestTimeout,
	"EAI_AGAIN":  http.StatusRequestTimeout,
	"ENODATA":    http.StatusRequestTimeout,
	"EFORMERR":   http.StatusRequestTimeout,
	"ESERVFAIL":  http.StatusRequestTimeout,
	"ENOTIMP":    http.StatusRequestTimeout,
	"EREFUSED":   http.StatusRequestTimeout,
	"EBADQUERY":  http.StatusRequestTimeout,
	"EBADRESP":   http.StatusRequestTimeout,
	"ECANCELLED": http.StatusRequestTimeout,
	"ECONNERR":   http.StatusRequestTimeout,

	// the name itself does not resolve: the request was aimed at the wrong place
	"ENOTFOUND":  http.StatusMisdirectedRequest,
	"ENONAME":    http.StatusMisdirectedRequest,
	"EBADNAME":   http.StatusMisdirectedRequest,
	"EBADFAMILY": http.StatusMisdirectedRequest,
}

var errnoNames = map[syscall.Errno]string{
	syscall.ECONNRESET:   "ECONNRESET",
	syscall.ECONNREFUSED: "ECONNREFUSED",
	syscall.ECONNABORTED: "ECONNABORTED",
	syscall.ETIMEDOUT:    "ETIMEDOUT",
	syscall.EPIPE:        "EPIPE",
	syscall.EHOSTUNREACH: "EHOSTUNREACH",
	syscall.EHOSTDOWN:    "EHOSTDOWN",
	syscall.ENETUNREACH:  "ENETUNREACH",
	syscall.ENETDOWN:     "ENETDOWN",
	syscall.ENETRESET:    "ENETRESET",
}

// Lookup returns the retryable status for a symbolic code.
func Lookup(code string) (int, bool) {
	status, ok := table[code]
	return status, ok
}

// Codes returns a copy of the table.
func Codes() map[string]int {
	out := make(map[string]int, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// CodeOf extracts a symbolic transport code from err. The empty string means
// err carries no recognizable code.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}

	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		if _, ok := table[coded.Code()]; ok {
			return coded.Code()
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsNotFound:
			return "ENOTFOUND"
		case dnsErr.IsTimeout:
			return "ETIMEOUT"
		case dnsErr.IsTemporary:
			return "EAI_AGAIN"
		default:
			return "ESERVFAIL"
		}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name, ok := errnoNames[errno]; ok {
			return name
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return "ETIMEDOUT"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}

	return ""
}

// StatusOf combines CodeOf and Lookup.
func StatusOf(err error) (code string, status int, ok bool) {
	code = CodeOf(err)
	if code == "" {
		return "", 0, false
	}
	status, ok = table[code]
	return code, status, ok
}
