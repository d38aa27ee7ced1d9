package qrcode

import "errors"

// Error kinds returned by this package. Errors are joined with the
// underlying cause, so compare with errors.Is.
var (
	// ErrInvalidPayload is returned when the payload is nil or not a JSON object or array.
	ErrInvalidPayload = errors.New("invalid payload: expected a structured value")
	// ErrEmptyPayload is returned when serialization produced no bytes.
	ErrEmptyPayload = errors.New("serialized payload is empty")
	// ErrSerialization is returned when the payload cannot be encoded as JSON
	// (cycles, functions, channels, NaN).
	ErrSerialization = errors.New("failed to serialize payload")
	// ErrUnsupportedFormat is returned for output formats other than png, svg and base64.
	ErrUnsupportedFormat = errors.New("unsupported QR code format")
	// ErrInvalidOptions is returned for bad encoder options: level, margin, scale or colors.
	ErrInvalidOptions = errors.New("invalid QR code options")
	// ErrEncoding is returned when the matrix encoder rejects the data.
	ErrEncoding = errors.New("failed to encode QR code")
	// ErrInvalidOverlayGeometry is returned when logo ratios leave no room for the logo.
	ErrInvalidOverlayGeometry = errors.New("invalid overlay geometry")
	// ErrAssetLoad is returned when the logo image cannot be loaded.
	ErrAssetLoad = errors.New("failed to load overlay asset")
)
