package qrcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
	skipqrcode "github.com/skip2/go-qrcode"
)

// DefaultMaxSide caps the pixel side of raster output.
const DefaultMaxSide = 8192

// EncodeParams are the resolved inputs of a matrix encoder call.
type EncodeParams struct {
	Level  Level
	Margin int
	Scale  int
	Dark   color.NRGBA
	Light  color.NRGBA
}

// MatrixEncoder turns bytes into a QR symbol rendition.
type MatrixEncoder interface {
	// Raster returns a square image: (modules + 2*margin) * scale pixels per side.
	Raster(data []byte, p EncodeParams) (image.Image, error)
	// Vector returns standalone SVG markup of the same symbol.
	Vector(data []byte, p EncodeParams) (string, error)
}

// SkipEncoder is the MatrixEncoder backed by github.com/skip2/go-qrcode.
type SkipEncoder struct {
	// MaxSide limits the raster side in pixels. Zero means DefaultMaxSide.
	MaxSide int
}

// NewSkipEncoder returns an encoder with the default size limit.
func NewSkipEncoder() *SkipEncoder {
	return &SkipEncoder{MaxSide: DefaultMaxSide}
}

func recoveryLevel(l Level) skipqrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return skipqrcode.Low
	case LevelMedium:
		return skipqrcode.Medium
	case LevelQuartile:
		return skipqrcode.High
	default:
		return skipqrcode.Highest
	}
}

// bitmap returns the symbol modules without quiet zone; bitmap[y][x] is dark.
func (e *SkipEncoder) bitmap(data []byte, p EncodeParams) ([][]bool, error) {
	if len(data) == 0 {
		return nil, errors.Join(ErrEncoding, ErrEmptyPayload)
	}
	if p.Margin < 0 || p.Scale <= 0 {
		return nil, fmt.Errorf("%w: margin %d, scale %d", ErrEncoding, p.Margin, p.Scale)
	}
	q, err := skipqrcode.New(string(data), recoveryLevel(p.Level))
	if err != nil {
		return nil, errors.Join(ErrEncoding, err)
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}

func (e *SkipEncoder) Raster(data []byte, p EncodeParams) (image.Image, error) {
	modules, err := e.bitmap(data, p)
	if err != nil {
		return nil, err
	}

	maxSide := e.MaxSide
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	side := (len(modules) + 2*p.Margin) * p.Scale
	if side > maxSide {
		return nil, fmt.Errorf("%w: image side %dpx exceeds limit %dpx", ErrEncoding, side, maxSide)
	}

	img := imaging.New(side, side, p.Light)
	dark := image.NewUniform(p.Dark)
	for y, row := range modules {
		for x, on := range row {
			if !on {
				continue
			}
			px := (x + p.Margin) * p.Scale
			py := (y + p.Margin) * p.Scale
			draw.Draw(img, image.Rect(px, py, px+p.Scale, py+p.Scale), dark, image.Point{}, draw.Src)
		}
	}
	return img, nil
}

// Vector renders one light background path and one dark path made of
// horizontal module runs. The viewBox is in modules, the size in pixels.
func (e *SkipEncoder) Vector(data []byte, p EncodeParams) (string, error) {
	modules, err := e.bitmap(data, p)
	if err != nil {
		return "", err
	}

	size := len(modules) + 2*p.Margin
	px := size * p.Scale

	var d strings.Builder
	for y, row := range modules {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&d, "M%d %dh%dv1h-%dz", start+p.Margin, y+p.Margin, x-start, x-start)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, px, px, size, size)
	fmt.Fprintf(&b, `<path %s d="M0 0h%dv%dh-%dz"/>`, svgFill(p.Light), size, size, size)
	if d.Len() > 0 {
		fmt.Fprintf(&b, `<path %s d="%s"/>`, svgFill(p.Dark), d.String())
	}
	b.WriteString("</svg>\n")
	return b.String(), nil
}
