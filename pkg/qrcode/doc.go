// Package qrcode turns serialized JSON payloads into QR codes.
//
// The pipeline is validate, serialize, encode, compose:
//
//   - Serialize checks that a payload is an object or an array and returns
//     its compact JSON bytes.
//   - Generator resolves Options, delegates the symbol to a MatrixEncoder
//     (SkipEncoder wraps github.com/skip2/go-qrcode) and returns an Artifact.
//   - Compositor draws a centered logo on a padded light container and
//     appends a fixed-height footer band with text and an optional icon.
//
// Three output formats are supported: png (raster bytes), svg (vector
// markup) and base64 (a PNG data URI). Logo and footer apply to png only.
//
// # Errors
//
// Failures are reported with the sentinel errors declared in errors.go,
// joined with their cause. A logo that fails to load aborts generation with
// ErrAssetLoad; a footer icon that fails to load is skipped and reported in
// Artifact.Warnings and through the logger.
//
// # Usage
//
//	data, err := qrcode.Serialize(map[string]any{"id": 42})
//	if err != nil {
//		return err
//	}
//	gen := qrcode.NewGenerator(nil, nil)
//	art, err := gen.Generate(ctx, data,
//		qrcode.WithLogo("assets/logo.png"),
//		qrcode.WithFooter("secure", "assets/lock.png"),
//	)
package qrcode
