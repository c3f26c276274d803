// Package cookie sets and reads HMAC-signed cookies.
//
// The first secret signs; every secret verifies, so secrets can be rotated by
// prepending a new one. Sessions use it to carry the session id.
package cookie
