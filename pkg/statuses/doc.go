// Package statuses holds the process-wide table of HTTP status codes and their
// canonical reason phrases.
//
// The table is built once during package initialization from net/http and a
// handful of widely deployed non-registered codes, and is never mutated
// afterwards, so lookups are safe from any number of goroutines.
//
// # Usage
//
//	statuses.Message(404)          // "Not Found"
//	statuses.Code("Not Found")     // 404, true
//	statuses.Parse("429")          // 429, true (bare status code thrown as a message)
//	statuses.Parse("200")          // 0, false (not an error status)
//	statuses.IsRetry(503)          // true
package statuses
