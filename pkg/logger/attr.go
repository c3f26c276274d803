package logger

import "log/slog"

// Error records err under "error". Nil errors produce an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// ErrorID records the error reference shown to the client under "error_id".
func ErrorID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("error_id", id)
}

// Status records an HTTP status under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

// Category records the error classification under "category".
func Category(name string) slog.Attr {
	return slog.String("category", name)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Request groups method and path under "request".
func Request(method, path string) slog.Attr {
	return slog.Group("request", slog.String("method", method), slog.String("path", path))
}
