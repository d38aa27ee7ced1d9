package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// OutputFormat records the requested output format under the key "format".
func OutputFormat(format string) slog.Attr {
	return slog.String("format", format)
}

// Asset records an asset reference under the key "asset".
// Empty references produce an empty Attr.
func Asset(ref string) slog.Attr {
	if ref == "" {
		return slog.Attr{}
	}
	return slog.String("asset", ref)
}

// PayloadSize records the serialized payload length under the key "payload_bytes".
func PayloadSize(n int) slog.Attr {
	return slog.Int("payload_bytes", n)
}

// Dimensions records an image size as a "size" group with width and height.
func Dimensions(w, h int) slog.Attr {
	return Group("size", slog.Int("width", w), slog.Int("height", h))
}
