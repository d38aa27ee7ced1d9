// Package logger builds structured *slog.Logger instances from functional
// options and provides the attribute helpers used across qrjson.
//
// New picks a text or JSON handler (or a caller supplied one through
// WithHandler), applies static attributes and wraps the result in
// LogHandlerDecorator, which copies values from context.Context into every
// record.
//
// Non-fatal pipeline events, such as a footer icon that could not be loaded,
// are logged at warn level with an "event" attribute. Library callers that
// want to inspect them rather than print them can install a Recorder:
//
//	rec := logger.NewRecorder(slog.LevelWarn)
//	svc := qrjson.New(gen, qrjson.WithLogger(logger.New(logger.WithHandler(rec))))
//	// ...
//	for _, r := range rec.Records() {
//	    ev, _ := logger.Attr(r, "event")
//	    fmt.Println(r.Message, ev)
//	}
//
// Discard returns a logger that drops everything.
package logger
