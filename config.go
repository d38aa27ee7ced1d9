package qrjson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/qrjson/pkg/asset"
	"github.com/dmitrymomot/qrjson/pkg/config"
	"github.com/dmitrymomot/qrjson/pkg/logger"
	"github.com/dmitrymomot/qrjson/pkg/qrcode"
)

// EnvPrefix is prepended to every variable read by LoadConfig.
const EnvPrefix = "QR_"

// Config holds the service settings. Every field maps to a QR_* variable.
type Config struct {
	Env       string `env:"ENV" envDefault:"development"`
	Service   string `env:"SERVICE_NAME" envDefault:"qrjson"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	Format               string  `env:"FORMAT" envDefault:"png"`
	ErrorCorrectionLevel string  `env:"ERROR_CORRECTION_LEVEL" envDefault:"H"`
	Margin               int     `env:"MARGIN" envDefault:"4"`
	ModuleScale          int     `env:"MODULE_SCALE" envDefault:"8"`
	DarkColor            string  `env:"DARK_COLOR" envDefault:"#000000ff"`
	LightColor           string  `env:"LIGHT_COLOR" envDefault:"#ffffffff"`
	LogoAreaRatio        float64 `env:"LOGO_AREA_RATIO" envDefault:"0.5"`
	LogoPaddingRatio     float64 `env:"LOGO_PADDING_RATIO" envDefault:"0.25"`
	FooterTextColor      string  `env:"FOOTER_TEXT_COLOR" envDefault:"#000000ff"`
	MaxImageSide         int     `env:"MAX_IMAGE_SIDE" envDefault:"8192"`

	FooterHeight     int `env:"FOOTER_HEIGHT" envDefault:"50"`
	FooterIconHeight int `env:"FOOTER_ICON_HEIGHT" envDefault:"24"`
	FooterGap        int `env:"FOOTER_GAP" envDefault:"10"`

	// AssetsDir confines local logo and icon paths. Empty allows any path.
	AssetsDir     string `env:"ASSETS_DIR"`
	AssetMaxBytes int64  `env:"ASSET_MAX_BYTES" envDefault:"10485760"`

	S3 S3Config `envPrefix:"S3_"`
}

// S3Config enables s3:// asset references when Region is set.
type S3Config struct {
	Bucket         string        `env:"BUCKET"`
	Region         string        `env:"REGION"`
	AccessKeyID    string        `env:"ACCESS_KEY_ID"`
	SecretKey      string        `env:"SECRET_ACCESS_KEY"`
	Endpoint       string        `env:"ENDPOINT"`
	ForcePathStyle bool          `env:"FORCE_PATH_STYLE" envDefault:"false"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads Config from QR_* variables. Pass config.WithEnvFiles to
// read dotenv files first.
func LoadConfig(opts ...config.Option) (Config, error) {
	var cfg Config
	opts = append([]config.Option{config.WithPrefix(EnvPrefix)}, opts...)
	if err := config.Load(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns the generation options described by cfg.
func (c Config) Defaults() qrcode.Options {
	o := qrcode.Options{
		Format:           c.Format,
		Level:            c.ErrorCorrectionLevel,
		Margin:           c.Margin,
		ModuleScale:      c.ModuleScale,
		DarkColor:        c.DarkColor,
		LightColor:       c.LightColor,
		LogoAreaRatio:    c.LogoAreaRatio,
		LogoPaddingRatio: c.LogoPaddingRatio,
	}
	if c.FooterTextColor != "" {
		o.Footer = &qrcode.Footer{TextColor: c.FooterTextColor}
	}
	return o
}

// Logger builds the structured logger described by cfg.
func (c Config) Logger() *slog.Logger {
	opts := []logger.Option{logger.WithEnvironment(c.Env, c.Service)}
	if c.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(c.LogLevel)))
	}
	switch c.LogFormat {
	case "json":
		opts = append(opts, logger.WithJSONFormatter())
	case "text":
		opts = append(opts, logger.WithTextFormatter())
	}
	return logger.New(opts...)
}

// NewFromConfig wires loaders, compositor, encoder and generator from cfg.
// Extra options are applied after the logger is built from cfg, so
// WithLogger overrides it.
func NewFromConfig(ctx context.Context, cfg Config, opts ...ServiceOption) (*Service, error) {
	defaults := cfg.Defaults()
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default options: %w", err)
	}
	if _, err := qrcode.NewLogoLayout(1000, 1000, cfg.LogoAreaRatio, cfg.LogoPaddingRatio); err != nil {
		return nil, fmt.Errorf("invalid default options: %w", err)
	}

	s := &Service{logger: cfg.Logger()}
	for _, opt := range opts {
		opt(s)
	}

	local, err := asset.NewLocalLoader(cfg.AssetsDir, asset.WithLocalMaxBytes(cfg.AssetMaxBytes))
	if err != nil {
		return nil, err
	}
	routes := []asset.RouterOption{
		asset.WithScheme("data", asset.NewDataURILoader(cfg.AssetMaxBytes)),
	}
	if cfg.S3.Region != "" {
		s3, err := asset.NewS3Loader(ctx, asset.S3Config{
			Bucket:         cfg.S3.Bucket,
			Region:         cfg.S3.Region,
			AccessKeyID:    cfg.S3.AccessKeyID,
			SecretKey:      cfg.S3.SecretKey,
			Endpoint:       cfg.S3.Endpoint,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		}, asset.WithS3Timeout(cfg.S3.Timeout), asset.WithS3MaxBytes(cfg.AssetMaxBytes))
		if err != nil {
			return nil, errors.Join(errors.New("failed to create s3 asset loader"), err)
		}
		routes = append(routes, asset.WithScheme("s3", s3))
	}

	comp := qrcode.NewCompositor(
		asset.NewRouter(local, routes...),
		qrcode.WithFooterMetrics(cfg.FooterHeight, cfg.FooterIconHeight, cfg.FooterGap),
		qrcode.WithCompositorLogger(s.logger),
	)
	s.gen = qrcode.NewGenerator(
		&qrcode.SkipEncoder{MaxSide: cfg.MaxImageSide},
		comp,
		qrcode.WithDefaults(defaults),
		qrcode.WithLogger(s.logger),
	)

	s.logger.DebugContext(ctx, "qr service configured",
		logger.Component("service"),
		logger.OutputFormat(cfg.Format),
		slog.Bool("s3_assets", cfg.S3.Region != ""),
	)
	return s, nil
}
