package qrcode

import (
	"fmt"
	"strings"
)

// Format is the artifact kind returned by the generator.
type Format string

const (
	// FormatPNG is a raster PNG image. Logo and footer overlays apply only here.
	FormatPNG Format = "png"
	// FormatSVG is vector markup.
	FormatSVG Format = "svg"
	// FormatDataURI is a base64 PNG data URI ready for an <img src>.
	FormatDataURI Format = "base64"
)

// ParseFormat accepts png, svg and base64 along with the aliases raster,
// vector and data-uri. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png", "raster":
		return FormatPNG, nil
	case "svg", "vector":
		return FormatSVG, nil
	case "base64", "data-uri", "datauri", "data_uri":
		return FormatDataURI, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the media type of an artifact in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Level is a QR error-correction level.
type Level string

const (
	LevelLow      Level = "L" // ~7% recovery
	LevelMedium   Level = "M" // ~15% recovery
	LevelQuartile Level = "Q" // ~25% recovery
	LevelHigh     Level = "H" // ~30% recovery, required for large logos
)

var levelNames = []string{"L", "M", "Q", "H"}

// ParseLevel accepts L, M, Q and H in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelLow, LevelMedium, LevelQuartile, LevelHigh:
		return l, nil
	}
	return "", fmt.Errorf("%w: error correction level %q", ErrInvalidOptions, s)
}
