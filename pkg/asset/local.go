package asset

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// LocalLoader reads images from the local filesystem.
// With a base directory set, every reference is resolved inside it and
// attempts to escape it fail with ErrInvalidPath.
type LocalLoader struct {
	baseDir  string // absolute; empty means references are used as given
	maxBytes int64
}

// LocalOption configures a LocalLoader.
type LocalOption func(*LocalLoader)

// WithLocalMaxBytes limits the size of files the loader will read.
func WithLocalMaxBytes(n int64) LocalOption {
	return func(l *LocalLoader) {
		l.maxBytes = n
	}
}

// NewLocalLoader creates a filesystem loader. An empty baseDir disables confinement.
func NewLocalLoader(baseDir string, opts ...LocalOption) (*LocalLoader, error) {
	l := &LocalLoader{maxBytes: DefaultMaxBytes}

	if baseDir != "" {
		abs, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToResolve, err)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: base directory %q", ErrInvalidConfig, baseDir)
		}
		l.baseDir = abs
	}

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load opens and decodes the image at ref. A file:// prefix is accepted.
func (l *LocalLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ref) == "" {
		return nil, ErrEmptyReference
	}

	path, err := l.resolvePath(strings.TrimPrefix(ref, "file://"))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, ref)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, ref)
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrAssetTooLarge, ref, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToRead, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, l.maxBytes)
}

func (l *LocalLoader) resolvePath(path string) (string, error) {
	path = filepath.Clean(path)
	if l.baseDir == "" {
		return path, nil
	}

	absPath, err := filepath.Abs(filepath.Join(l.baseDir, path))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToResolve, err)
	}

	// must stay within baseDir
	if !strings.HasPrefix(absPath, l.baseDir+string(filepath.Separator)) && absPath != l.baseDir {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return absPath, nil
}
