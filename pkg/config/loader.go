package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a single Load call.
type Option func(*loadOptions)

type loadOptions struct {
	files   []string
	prefix  string
	environ map[string]string
}

// WithEnvFiles reads the given dotenv files before parsing.
// Missing files are skipped; variables already present in the environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix only considers variables starting with prefix, e.g. "QR_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.prefix = prefix
	}
}

// WithEnvironment replaces the process environment with vars.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) {
		o.environ = vars
	}
}

// Load parses environment variables into the struct pointed to by v using
// `env` and `envDefault` field tags.
//
// Example:
//
//	type Settings struct {
//		Margin int    `env:"MARGIN" envDefault:"4"`
//		Level  string `env:"ERROR_CORRECTION" envDefault:"H"`
//	}
//
//	var s Settings
//	if err := config.Load(&s, config.WithPrefix("QR_"), config.WithEnvFiles(".env")); err != nil {
//		// handle error
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	vars := o.environ
	if vars == nil {
		vars = environMap(os.Environ())
	}

	if len(o.files) > 0 {
		fromFiles, err := readEnvFiles(o.files)
		if err != nil {
			return err
		}
		merged := make(map[string]string, len(vars)+len(fromFiles))
		for k, val := range fromFiles {
			merged[k] = val
		}
		for k, val := range vars {
			merged[k] = val
		}
		vars = merged
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: vars,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure.
// Use it for settings the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func readEnvFiles(files []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, errors.Join(ErrReadingEnvFile, fmt.Errorf("%s: %w", f, err))
		}
		// later files override earlier ones
		for k, v := range vars {
			out[k] = v
		}
	}
	return out, nil
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
