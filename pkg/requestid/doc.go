// Package requestid attaches a correlation id to every request.
//
// Middleware reuses a well-formed inbound X-Request-ID header or generates a
// UUID, stores it in the request context and echoes it on the response. The
// error handler prints it on error pages and logs so users can quote it.
package requestid
