package handler

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"net/url"
	"runtime"
	"strconv"
	"strings"

	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/httperr/pkg/retrycodes"
	"github.com/dmitrymomot/httperr/pkg/statuses"
)

// Category is the family an error belongs to. Classify checks families in
// the order they are declared.
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryBareStatus: the message is just a status code, e.g. "404".
	CategoryBareStatus
	// CategoryTransport: cache/broker driver failures (Redis).
	CategoryTransport
	// CategoryAuth: credential checks and OAuth token exchanges.
	CategoryAuth
	CategoryValidation
	// CategoryDataLayer: database connectivity (Postgres, MongoDB, database/sql).
	CategoryDataLayer
	// CategoryCodeBug: runtime and parsing errors that indicate a programming mistake.
	CategoryCodeBug
	// CategoryUpstream: the error names its own HTTP status.
	CategoryUpstream
	// CategoryRetryable: network and DNS failures listed in the retry table.
	CategoryRetryable
)

var categoryNames = [...]string{
	CategoryUnknown:    "unknown",
	CategoryBareStatus: "bare_status",
	CategoryTransport:  "transport",
	CategoryAuth:       "auth",
	CategoryValidation: "validation",
	CategoryDataLayer:  "data_layer",
	CategoryCodeBug:    "code_bug",
	CategoryUpstream:   "upstream",
	CategoryRetryable:  "retryable",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// Classify returns the first matching category for err. It has no side effects.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case bareStatus(err.Error()) != 0:
		return CategoryBareStatus
	case isTransport(err):
		return CategoryTransport
	case isAuth(err):
		return CategoryAuth
	case isValidation(err):
		return CategoryValidation
	case isDataLayer(err):
		return CategoryDataLayer
	case isCodeBug(err):
		return CategoryCodeBug
	}
	if _, ok := upstreamStatus(err); ok {
		return CategoryUpstream
	}
	if _, _, ok := retrycodes.StatusOf(err); ok {
		return CategoryRetryable
	}
	return CategoryUnknown
}

// bareStatus returns the code when msg is exactly three digits naming a
// known 4xx/5xx status, and 0 otherwise.
func bareStatus(msg string) int {
	code, ok := statuses.Parse(strings.TrimSpace(msg))
	if !ok {
		return 0
	}
	return code
}

// isTransport matches Redis failures. redis.Nil is a cache miss, not a failure.
func isTransport(err error) bool {
	var redisErr redis.Error
	if errors.As(err, &redisErr) && !errors.Is(err, redis.Nil) {
		return true
	}
	return errors.Is(err, redis.ErrClosed)
}

func isAuth(err error) bool {
	_, _, ok := authStatus(err)
	return ok
}

func isValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func isDataLayer(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	return errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn)
}

func isCodeBug(err error) bool {
	var (
		runtimeErr   runtime.Error
		numErr       *strconv.NumError
		syntaxErr    *json.SyntaxError
		unmarshalErr *json.UnmarshalTypeError
		escapeErr    url.EscapeError
		hostErr      url.InvalidHostError
		panicErr     *PanicError
	)
	return errors.As(err, &runtimeErr) ||
		errors.As(err, &numErr) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &unmarshalErr) ||
		errors.As(err, &escapeErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &panicErr)
}

// upstreamStatus reads a status annotation from the error chain.
func upstreamStatus(err error) (int, bool) {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) && statuses.IsError(coded.StatusCode()) {
		return coded.StatusCode(), true
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.Response != nil && statuses.IsError(respErr.HTTPStatusCode()) {
		return respErr.HTTPStatusCode(), true
	}
	return 0, false
}
