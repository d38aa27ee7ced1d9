package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // registers the webp decoder used by imaging.Decode
)

// DefaultMaxBytes caps how much of a single asset is read before decoding.
const DefaultMaxBytes int64 = 10 << 20

// Loader resolves an opaque reference (path, URL, data URI) to a decoded image.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoaderFunc adapts a plain function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// Decode reads at most maxBytes from r and decodes a PNG, JPEG, GIF, BMP,
// TIFF or WebP image, applying EXIF orientation. SVG documents are rasterized.
// maxBytes <= 0 means DefaultMaxBytes.
func Decode(r io.Reader, maxBytes int64) (image.Image, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToRead, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrAssetTooLarge, maxBytes)
	}

	if isSVG(data) {
		return rasterizeSVG(data)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToDecode, err)
	}
	return img, nil
}

// Router dispatches references to loaders by URL scheme.
// References without a scheme, and file:// URLs, go to the fallback loader.
type Router struct {
	fallback Loader
	schemes  map[string]Loader
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithScheme routes references with the given scheme (e.g. "s3") to l.
func WithScheme(scheme string, l Loader) RouterOption {
	return func(r *Router) {
		if scheme != "" && l != nil {
			r.schemes[strings.ToLower(scheme)] = l
		}
	}
}

// NewRouter creates a Router. The data: scheme is always handled by DataURILoader.
func NewRouter(fallback Loader, opts ...RouterOption) *Router {
	r := &Router{
		fallback: fallback,
		schemes:  map[string]Loader{"data": NewDataURILoader(0)},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Load(ctx context.Context, ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyReference
	}

	scheme := schemeOf(ref)
	if scheme == "" || scheme == "file" {
		if r.fallback == nil {
			return nil, fmt.Errorf("%w: no loader for local paths", ErrUnsupportedRef)
		}
		return r.fallback.Load(ctx, ref)
	}

	l, ok := r.schemes[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedRef, scheme)
	}
	return l.Load(ctx, ref)
}

// schemeOf returns the lower-cased URL scheme of ref, or "" for plain paths.
// Single-letter schemes are treated as Windows drive letters.
func schemeOf(ref string) string {
	if strings.HasPrefix(strings.ToLower(ref), "data:") {
		return "data"
	}
	u, err := url.Parse(ref)
	if err != nil || len(u.Scheme) < 2 {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", ErrOperationTimeout, ctx.Err())
		}
		return fmt.Errorf("%w: %v", ErrOperationCanceled, ctx.Err())
	default:
		return nil
	}
}
