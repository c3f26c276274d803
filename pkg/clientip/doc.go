// Package clientip resolves the caller's address from proxy headers or the
// connection, and makes it available to loggers through the request context.
package clientip
