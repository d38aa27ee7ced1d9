package qrcode

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"

	"github.com/dmitrymomot/qrjson/pkg/logger"
)

const dataURIPrefix = "data:image/png;base64,"

// Artifact is the result of a generation call.
type Artifact struct {
	Format Format
	// Data holds PNG bytes, SVG markup or the data URI text.
	Data     []byte
	Width    int
	Height   int
	Warnings []string
}

// ContentType returns the media type of Data.
func (a *Artifact) ContentType() string {
	return a.Format.ContentType()
}

// String returns SVG markup or the data URI as is, and PNG bytes as a data URI.
//
// Usage in a template:
//
//	<img src="{{ .QR.String }}">
func (a *Artifact) String() string {
	if a.Format == FormatPNG {
		return dataURIPrefix + base64.StdEncoding.EncodeToString(a.Data)
	}
	return string(a.Data)
}

// Generator runs the encode and compose pipeline over serialized payloads.
type Generator struct {
	encoder    MatrixEncoder
	compositor *Compositor
	logger     *slog.Logger
	defaults   Options
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithDefaults replaces the options every call starts from.
func WithDefaults(o Options) GeneratorOption {
	return func(g *Generator) { g.defaults = o }
}

// WithLogger sets the logger for warnings and generation events.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator. A nil encoder uses SkipEncoder and a nil
// compositor reads overlay assets from local files and data URIs.
func NewGenerator(enc MatrixEncoder, comp *Compositor, opts ...GeneratorOption) *Generator {
	if enc == nil {
		enc = NewSkipEncoder()
	}
	if comp == nil {
		comp = NewCompositor(nil)
	}
	g := &Generator{
		encoder:    enc,
		compositor: comp,
		logger:     logger.Discard(),
		defaults:   DefaultOptions(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate encodes data as a QR code. Logo and footer are drawn for png output
// only; for svg and base64 they are ignored with a warning.
func (g *Generator) Generate(ctx context.Context, data []byte, opts ...Option) (*Artifact, error) {
	start := time.Now()

	o := g.defaults
	if o.Footer != nil {
		f := *o.Footer
		o.Footer = &f
	}
	for _, opt := range opts {
		opt(&o)
	}

	r, err := o.resolve()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}

	params := EncodeParams{
		Level:  r.level,
		Margin: o.Margin,
		Scale:  o.ModuleScale,
		Dark:   r.dark,
		Light:  r.light,
	}

	art := &Artifact{Format: r.format}
	if r.format != FormatPNG && o.HasOverlay() {
		msg := fmt.Sprintf("logo and footer are supported for png output only, ignored for %s", r.format)
		art.Warnings = append(art.Warnings, msg)
		g.logger.WarnContext(ctx, "overlay ignored",
			logger.Component("generator"),
			logger.Event("overlay_ignored"),
			logger.OutputFormat(string(r.format)),
		)
	}

	switch r.format {
	case FormatSVG:
		svg, err := g.encoder.Vector(data, params)
		if err != nil {
			return nil, encodingError(err)
		}
		art.Data = []byte(svg)

	case FormatDataURI:
		img, err := g.encoder.Raster(data, params)
		if err != nil {
			return nil, encodingError(err)
		}
		raw, err := encodePNG(img)
		if err != nil {
			return nil, err
		}
		art.Data = []byte(dataURIPrefix + base64.StdEncoding.EncodeToString(raw))
		art.Width, art.Height = img.Bounds().Dx(), img.Bounds().Dy()

	default:
		img, err := g.encoder.Raster(data, params)
		if err != nil {
			return nil, encodingError(err)
		}
		if o.HasOverlay() {
			composed, warnings, err := g.compositor.Compose(ctx, img, overlayFrom(o, r))
			if err != nil {
				return nil, err
			}
			art.Warnings = append(art.Warnings, warnings...)
			img = composed
		}
		if art.Data, err = encodePNG(img); err != nil {
			return nil, err
		}
		art.Width, art.Height = img.Bounds().Dx(), img.Bounds().Dy()
	}

	g.logger.DebugContext(ctx, "qr code generated",
		logger.Component("generator"),
		logger.OutputFormat(string(art.Format)),
		logger.PayloadSize(len(data)),
		logger.Dimensions(art.Width, art.Height),
		logger.Duration(time.Since(start)),
	)
	return art, nil
}

func overlayFrom(o Options, r resolved) Overlay {
	ov := Overlay{
		Background:       r.light,
		Logo:             o.Logo,
		LogoAreaRatio:    o.LogoAreaRatio,
		LogoPaddingRatio: o.LogoPaddingRatio,
		FooterTextColor:  r.textColor,
	}
	if o.Footer != nil {
		ov.FooterText = o.Footer.Text
		ov.FooterIcon = o.Footer.IconPath
	}
	return ov
}

func encodingError(err error) error {
	if errors.Is(err, ErrEncoding) {
		return err
	}
	return errors.Join(ErrEncoding, err)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Join(ErrEncoding, err)
	}
	return buf.Bytes(), nil
}
