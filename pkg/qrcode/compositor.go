package qrcode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/qrjson/pkg/asset"
	"github.com/dmitrymomot/qrjson/pkg/logger"
	"github.com/dmitrymomot/qrjson/pkg/validator"
)

// Footer metrics at the native resolution of the QR image.
const (
	DefaultFooterHeight     = 50
	DefaultFooterIconHeight = 24
	DefaultFooterGap        = 10
)

// Overlay describes what to draw on top of a raster QR image.
type Overlay struct {
	// Background fills the logo container and the footer band.
	Background color.Color

	Logo             string
	LogoAreaRatio    float64
	LogoPaddingRatio float64

	FooterText      string
	FooterIcon      string
	FooterTextColor color.Color
}

// LogoLayout is the geometry of the logo container, in pixels of the base image.
type LogoLayout struct {
	Side    int // container side
	Padding int // gap between container edge and logo box
	Inner   int // logo box side
	X, Y    int // container top-left corner
}

// NewLogoLayout computes the centered logo container for a w×h image.
func NewLogoLayout(w, h int, areaRatio, paddingRatio float64) (LogoLayout, error) {
	err := validator.Apply(
		validator.GreaterThan("logo_area_ratio", areaRatio, 0),
		validator.MaxNum("logo_area_ratio", areaRatio, 1),
		validator.MinNum("logo_padding_ratio", paddingRatio, 0),
		validator.LessThan("logo_padding_ratio", paddingRatio, 0.5),
	)
	if err != nil {
		return LogoLayout{}, errors.Join(ErrInvalidOverlayGeometry, err)
	}

	side := int(math.Floor(float64(min(w, h)) * areaRatio))
	padding := int(math.Floor(float64(side) * paddingRatio))
	inner := side - 2*padding
	if side <= 0 || inner <= 0 {
		return LogoLayout{}, fmt.Errorf("%w: logo box side %d, inner side %d", ErrInvalidOverlayGeometry, side, inner)
	}

	return LogoLayout{
		Side:    side,
		Padding: padding,
		Inner:   inner,
		X:       (w - side) / 2,
		Y:       (h - side) / 2,
	}, nil
}

// Fit returns the size of a w×h image scaled to fit the logo box without cropping.
func (l LogoLayout) Fit(w, h int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(l.Inner)/float64(w), float64(l.Inner)/float64(h))
	sw := min(max(int(math.Round(float64(w)*scale)), 1), l.Inner)
	sh := min(max(int(math.Round(float64(h)*scale)), 1), l.Inner)
	return sw, sh
}

// Compositor draws logos and footers onto raster QR images.
// It holds only configuration and is safe for concurrent use.
type Compositor struct {
	loader    asset.Loader
	face      font.Face
	logger    *slog.Logger
	footerH   int
	iconH     int
	footerGap int
}

// CompositorOption configures a Compositor.
type CompositorOption func(*Compositor)

// WithFooterMetrics overrides footer band height, icon height and icon-text gap.
// Non-positive values keep the defaults.
func WithFooterMetrics(height, iconHeight, gap int) CompositorOption {
	return func(c *Compositor) {
		if height > 0 {
			c.footerH = height
		}
		if iconHeight > 0 {
			c.iconH = iconHeight
		}
		if gap > 0 {
			c.footerGap = gap
		}
	}
}

// WithFontFace sets the footer font. Faces from golang.org/x/image/font/opentype
// must not be shared with other goroutines.
func WithFontFace(face font.Face) CompositorOption {
	return func(c *Compositor) {
		if face != nil {
			c.face = face
		}
	}
}

// WithCompositorLogger sets the logger for asset load failures.
func WithCompositorLogger(l *slog.Logger) CompositorOption {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCompositor creates a Compositor that resolves logo and icon references
// through loader. A nil loader reads local files and data URIs.
func NewCompositor(loader asset.Loader, opts ...CompositorOption) *Compositor {
	if loader == nil {
		local, _ := asset.NewLocalLoader("")
		loader = asset.NewRouter(local)
	}
	c := &Compositor{
		loader:    loader,
		face:      basicfont.Face7x13,
		logger:    logger.Discard(),
		footerH:   DefaultFooterHeight,
		iconH:     DefaultFooterIconHeight,
		footerGap: DefaultFooterGap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose returns a new image with the overlay applied. base is never modified.
// The second return value lists non-fatal warnings.
func (c *Compositor) Compose(ctx context.Context, base image.Image, ov Overlay) (*image.NRGBA, []string, error) {
	if ov.Background == nil {
		ov.Background = color.White
	}
	if ov.FooterTextColor == nil {
		ov.FooterTextColor = color.Black
	}

	dst := imaging.Clone(base)
	var warnings []string

	if ov.Logo != "" {
		var err error
		if dst, err = c.drawLogo(ctx, dst, ov); err != nil {
			return nil, nil, err
		}
	}

	if ov.FooterText != "" {
		var warning string
		dst, warning = c.drawFooter(ctx, dst, ov)
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return dst, warnings, nil
}

func (c *Compositor) drawLogo(ctx context.Context, dst *image.NRGBA, ov Overlay) (*image.NRGBA, error) {
	b := dst.Bounds()
	layout, err := NewLogoLayout(b.Dx(), b.Dy(), ov.LogoAreaRatio, ov.LogoPaddingRatio)
	if err != nil {
		return nil, err
	}

	logo, err := c.loader.Load(ctx, ov.Logo)
	if err != nil {
		c.logger.ErrorContext(ctx, "logo load failed",
			logger.Component("compositor"),
			logger.Asset(ov.Logo),
			logger.Error(err),
		)
		return nil, errors.Join(ErrAssetLoad, err)
	}

	lb := logo.Bounds()
	sw, sh := layout.Fit(lb.Dx(), lb.Dy())
	if sw == 0 || sh == 0 {
		return nil, fmt.Errorf("%w: logo %q has no pixels", ErrAssetLoad, ov.Logo)
	}
	scaled := imaging.Resize(logo, sw, sh, imaging.Lanczos)

	container := imaging.New(layout.Side, layout.Side, ov.Background)
	container = imaging.Overlay(container, scaled, image.Pt(
		layout.Padding+(layout.Inner-sw)/2,
		layout.Padding+(layout.Inner-sh)/2,
	), 1.0)

	return imaging.Paste(dst, container, image.Pt(layout.X, layout.Y)), nil
}

// drawFooter appends the footer band. An icon that fails to load is skipped
// and reported as a warning.
func (c *Compositor) drawFooter(ctx context.Context, src *image.NRGBA, ov Overlay) (*image.NRGBA, string) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	canvas := imaging.New(w, h+c.footerH, ov.Background)
	canvas = imaging.Paste(canvas, src, image.Pt(0, 0))

	var (
		icon    image.Image
		warning string
	)
	if ov.FooterIcon != "" {
		img, err := c.loader.Load(ctx, ov.FooterIcon)
		switch {
		case err != nil:
			warning = fmt.Sprintf("footer icon %q skipped: %v", ov.FooterIcon, err)
			c.logger.WarnContext(ctx, "footer icon skipped",
				logger.Component("compositor"),
				logger.Event("footer_icon_skipped"),
				logger.Asset(ov.FooterIcon),
				logger.Error(err),
			)
		case img.Bounds().Empty():
			warning = fmt.Sprintf("footer icon %q skipped: empty image", ov.FooterIcon)
			c.logger.WarnContext(ctx, "footer icon skipped",
				logger.Component("compositor"),
				logger.Event("footer_icon_skipped"),
				logger.Asset(ov.FooterIcon),
			)
		default:
			icon = imaging.Resize(img, 0, c.iconH, imaging.Lanczos)
		}
	}

	text := norm.NFC.String(ov.FooterText)
	textW := font.MeasureString(c.face, text).Ceil()
	metrics := c.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	textH := ascent + metrics.Descent.Ceil()

	total := textW
	if icon != nil {
		total += icon.Bounds().Dx() + c.footerGap
	}
	x := (w - total) / 2
	centerY := h + c.footerH/2

	if icon != nil {
		ib := icon.Bounds()
		canvas = imaging.Overlay(canvas, icon, image.Pt(x, centerY-ib.Dy()/2), 1.0)
		x += ib.Dx() + c.footerGap
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(ov.FooterTextColor),
		Face: c.face,
		Dot:  fixed.P(x, centerY-textH/2+ascent),
	}
	d.DrawString(text)

	return canvas, warning
}
