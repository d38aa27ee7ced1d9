package qrcode

import (
	"errors"
	"image/color"

	"github.com/dmitrymomot/qrjson/pkg/validator"
)

// Options is the resolved per-call configuration of a generation request.
type Options struct {
	Format      string
	Level       string
	Margin      int
	ModuleScale int
	DarkColor   string
	LightColor  string

	// Logo is an asset reference placed at the center of raster output.
	Logo             string
	LogoAreaRatio    float64
	LogoPaddingRatio float64

	Footer *Footer
}

// Footer is a text line with an optional icon appended below raster output.
type Footer struct {
	Text      string
	IconPath  string
	TextColor string
}

// DefaultFooterTextColor is used when Footer.TextColor is empty.
const DefaultFooterTextColor = "#000000ff"

// DefaultOptions returns the stock defaults: png, level H, margin 4, scale 8,
// black on white, logo area 0.5 with 0.25 padding.
func DefaultOptions() Options {
	return Options{
		Format:           string(FormatPNG),
		Level:            string(LevelHigh),
		Margin:           4,
		ModuleScale:      8,
		DarkColor:        "#000000ff",
		LightColor:       "#ffffffff",
		LogoAreaRatio:    0.5,
		LogoPaddingRatio: 0.25,
	}
}

// Option mutates Options for a single call.
type Option func(*Options)

// WithFormat sets the output format. An empty value keeps the default.
func WithFormat(format string) Option {
	return func(o *Options) {
		if format != "" {
			o.Format = format
		}
	}
}

// WithErrorCorrectionLevel sets the level: L, M, Q or H.
func WithErrorCorrectionLevel(level string) Option {
	return func(o *Options) {
		if level != "" {
			o.Level = level
		}
	}
}

// WithMargin sets the quiet zone width in modules.
func WithMargin(margin int) Option {
	return func(o *Options) { o.Margin = margin }
}

// WithModuleScale sets the pixel size of one module.
func WithModuleScale(scale int) Option {
	return func(o *Options) { o.ModuleScale = scale }
}

// WithColors sets both module colors.
func WithColors(dark, light string) Option {
	return func(o *Options) {
		WithDarkColor(dark)(o)
		WithLightColor(light)(o)
	}
}

// WithDarkColor sets the module color. An empty value keeps the default.
func WithDarkColor(c string) Option {
	return func(o *Options) {
		if c != "" {
			o.DarkColor = c
		}
	}
}

// WithLightColor sets the background color. An empty value keeps the default.
func WithLightColor(c string) Option {
	return func(o *Options) {
		if c != "" {
			o.LightColor = c
		}
	}
}

// WithLogo places the referenced image at the center of the code.
func WithLogo(ref string) Option {
	return func(o *Options) { o.Logo = ref }
}

// WithLogoAreaRatio sets the share of the shorter image side used by the logo container.
func WithLogoAreaRatio(r float64) Option {
	return func(o *Options) { o.LogoAreaRatio = r }
}

// WithLogoPaddingRatio sets the padding inside the logo container as a share of its side.
func WithLogoPaddingRatio(r float64) Option {
	return func(o *Options) { o.LogoPaddingRatio = r }
}

// WithFooter appends a footer band with text and an optional icon.
func WithFooter(text, iconPath string) Option {
	return func(o *Options) {
		f := Footer{Text: text, IconPath: iconPath}
		if o.Footer != nil {
			f.TextColor = o.Footer.TextColor
		}
		o.Footer = &f
	}
}

// WithFooterTextColor sets the footer text color.
func WithFooterTextColor(c string) Option {
	return func(o *Options) {
		if o.Footer == nil {
			o.Footer = &Footer{}
		}
		o.Footer.TextColor = c
	}
}

// HasOverlay reports whether a logo or footer text was requested.
func (o Options) HasOverlay() bool {
	return o.Logo != "" || (o.Footer != nil && o.Footer.Text != "")
}

// resolved holds parsed forms of Options.
type resolved struct {
	format    Format
	level     Level
	dark      color.NRGBA
	light     color.NRGBA
	textColor color.NRGBA
}

// Validate checks format, level, margin, scale and colors. Overlay ratios are
// validated by the compositor when they are actually used.
func (o Options) Validate() error {
	_, err := o.resolve()
	return err
}

func (o Options) resolve() (resolved, error) {
	var r resolved

	format, err := ParseFormat(o.Format)
	if err != nil {
		return r, err
	}
	r.format = format

	var colorErr [3]error
	r.dark, colorErr[0] = ParseColor(o.DarkColor)
	r.light, colorErr[1] = ParseColor(o.LightColor)
	r.textColor, _ = ParseColor(DefaultFooterTextColor)
	var footerColor string
	if o.Footer != nil {
		footerColor = o.Footer.TextColor
	}
	if footerColor != "" {
		r.textColor, colorErr[2] = ParseColor(footerColor)
	}

	err = validator.Apply(
		validator.InListCaseInsensitive("level", o.Level, levelNames),
		validator.MinNum("margin", o.Margin, 0),
		validator.Positive("module_scale", o.ModuleScale),
		validator.Custom("dark_color", o.DarkColor, func() bool { return colorErr[0] == nil }, "must be a CSS color"),
		validator.Custom("light_color", o.LightColor, func() bool { return colorErr[1] == nil }, "must be a CSS color"),
		validator.When(footerColor != "", validator.Custom("footer_text_color", footerColor, func() bool { return colorErr[2] == nil }, "must be a CSS color")),
	)
	if err != nil {
		return r, errors.Join(ErrInvalidOptions, err)
	}
	r.level, _ = ParseLevel(o.Level)
	return r, nil
}
