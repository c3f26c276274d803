// Package handler turns errors into HTTP responses.
//
// An Engine takes any error a handler produces and decides three things:
// the status, a message fit for the user, and the representation the
// client asked for. It then writes the response exactly once.
//
// # Normalization
//
// Engine.Normalize maps an error to an ErrorRecord. Rules are checked in
// order and the first match wins:
//
//  1. The Accept header matches none of text/plain, application/json and
//     text/html: 406 Not Acceptable.
//  2. The message is a bare status code such as "404": that status with its
//     reason phrase. Panicking with an int (panic(403)) takes this path.
//  3. Error families: Redis failures (408), credential failures such as
//     ErrIncorrectPassword or *oauth2.RetrieveError (400, or 429 when
//     throttled), *ValidationError (400, see below), and database
//     connectivity errors from pgx, the MongoDB driver or database/sql (408).
//  4. In production and staging, runtime errors, number and JSON parse
//     errors and recovered panics become an opaque 500 Internal Server Error.
//  5. A status carried by the error (HTTPError, anything with
//     StatusCode() int, AWS SDK response errors), then network and DNS
//     failures that a client may retry (408 or 421).
//  6. Everything else is a 500.
//
// Classify exposes the family decision on its own.
//
// # Validation errors
//
// Each failed field is humanized ("firstName is required" becomes
// "First name is required"). One failure is reported alone; several are
// joined into an HTML list, which API clients receive as plain text:
//
//	verr := handler.NewValidationError().
//		AddKind("email", handler.KindRequired).
//		Add("password", "password is too short")
//	return handler.Fail(verr)
//
// # Rendering
//
// JSON and text clients get a payload with statusCode, error and message.
// Browsers get the "404" page for missing resources, the "500" page for
// server errors and requests without a referrer, and otherwise a flash
// message plus a 303 redirect back to the referring page. DataStar
// requests get a toast patch when WithToast is configured.
//
// Pages come from a PageRenderer (see TemplPages) and fall back to
// built-in HTML. Nothing is written if the response has already started;
// writers are tracked by TrackWriter, which NewContext and
// Engine.Middleware apply.
//
// # Usage
//
//	engine := handler.NewEngine(cfg,
//		handler.WithLogger(log),
//		handler.WithTranslator(translator),
//		handler.WithFlasher(sessions),
//		handler.WithSessionSaver(sessions),
//	)
//
//	r := chi.NewRouter()
//	r.Use(engine.Middleware)
//	r.NotFound(engine.NotFoundHandler().ServeHTTP)
//	r.Get("/users/{id}", handler.Wrap(showUser,
//		handler.WithErrorHandler(engine.Handle),
//	))
//
// Mark machine clients with MarkAPI so HTML is stripped from messages.
package handler
