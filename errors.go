package qrjson

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/qrjson/pkg/qrcode"
)

// ErrGeneration is the Kind of failures that match no qrcode sentinel.
var ErrGeneration = errors.New("qr code generation failed")

// kinds in match order: payload problems first, then options, then pipeline stages.
var kinds = []error{
	qrcode.ErrInvalidPayload,
	qrcode.ErrEmptyPayload,
	qrcode.ErrSerialization,
	qrcode.ErrUnsupportedFormat,
	qrcode.ErrInvalidOptions,
	qrcode.ErrInvalidOverlayGeometry,
	qrcode.ErrAssetLoad,
	qrcode.ErrEncoding,
}

// Error is the only error type returned by Service. The cause is kept in the
// message but not in the chain: errors.Is matches Kind only.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return "failed to generate QR code: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(err error) *Error {
	var qe *Error
	if errors.As(err, &qe) {
		return qe
	}

	kind := ErrGeneration
	for _, k := range kinds {
		if errors.Is(err, k) {
			kind = k
			break
		}
	}
	return &Error{
		Kind:    kind,
		Message: strings.ReplaceAll(err.Error(), "\n", ": "),
	}
}
