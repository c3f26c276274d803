// Package logger builds *slog.Logger instances for the error handler and the
// services embedding it.
//
// New picks a JSON or text handler, attaches static attributes and wraps the
// result in a ContextHandler that copies request-scoped values (request id,
// environment) from the context into every record:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "billing"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "request error", logger.Status(500), logger.Error(err))
//
// The attribute helpers in attr.go keep key names consistent; helpers taking
// an error or an optional id return an empty slog.Attr for nil input, which
// slog drops.
package logger
