package qrcode_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrjson/pkg/asset"
	"github.com/dmitrymomot/qrjson/pkg/qrcode"
)

var (
	black = color.NRGBA{A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

var errNotFound = errors.New("not found")

// solidEncoder renders a fully dark square of a fixed side.
type solidEncoder struct {
	side int
	err  error
}

func (e solidEncoder) Raster(_ []byte, p qrcode.EncodeParams) (image.Image, error) {
	if e.err != nil {
		return nil, e.err
	}
	return imaging.New(e.side, e.side, p.Dark), nil
}

func (e solidEncoder) Vector(_ []byte, _ qrcode.EncodeParams) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return `<svg xmlns="http://www.w3.org/2000/svg"/>`, nil
}

// mapLoader serves solid images by reference and counts calls.
type mapLoader struct {
	images map[string]image.Image
	calls  atomic.Int32
}

func newMapLoader(images map[string]image.Image) *mapLoader {
	return &mapLoader{images: images}
}

func (l *mapLoader) Load(_ context.Context, ref string) (image.Image, error) {
	l.calls.Add(1)
	img, ok := l.images[ref]
	if !ok {
		return nil, errNotFound
	}
	return img, nil
}

var _ asset.Loader = (*mapLoader)(nil)

func solid(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func scan(t *testing.T, img image.Image) string {
	t.Helper()
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	res, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err, "QR code should be readable")
	return res.GetText()
}

// rasterizeSVG renders svg at scale pixels per viewBox unit.
func rasterizeSVG(t *testing.T, svg string, scale int) image.Image {
	t.Helper()
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.IgnoreErrorMode)
	require.NoError(t, err)
	side := int(icon.ViewBox.W) * scale
	require.Positive(t, side)
	icon.SetTarget(0, 0, float64(side), float64(side))
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	icon.Draw(rasterx.NewDasher(side, side, rasterx.NewScannerGV(side, side, img, img.Bounds())), 1.0)
	return img
}

// flatten composites img over white so translucent backgrounds binarize predictably.
func flatten(img image.Image) image.Image {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), white)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
