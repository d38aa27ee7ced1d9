package asset_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrjson/pkg/asset"
)

func TestDataURILoader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	loader := asset.NewDataURILoader(0)

	t.Run("base64 png", func(t *testing.T) {
		t.Parallel()
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 3, 4, color.Black))
		img, err := loader.Load(ctx, uri)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 3, 4), img.Bounds())
	})

	t.Run("missing comma", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(ctx, "data:image/png;base64")
		assert.ErrorIs(t, err, asset.ErrInvalidDataURI)
	})

	t.Run("bad base64", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(ctx, "data:image/png;base64,!!!")
		assert.ErrorIs(t, err, asset.ErrInvalidDataURI)
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		_, err := loader.Load(ctx, "data:text/plain,hello")
		assert.ErrorIs(t, err, asset.ErrFailedToDecode)
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stub := func(name string) asset.Loader {
		return asset.LoaderFunc(func(_ context.Context, ref string) (image.Image, error) {
			// encode the loader name in the width so the test can tell them apart
			return image.NewGray(image.Rect(0, 0, len(name), 1)), nil
		})
	}

	r := asset.NewRouter(stub("local"), asset.WithScheme("S3", stub("s3-loader")))

	t.Run("plain path goes to fallback", func(t *testing.T) {
		t.Parallel()
		img, err := r.Load(ctx, "assets/logo.png")
		require.NoError(t, err)
		assert.Equal(t, len("local"), img.Bounds().Dx())
	})

	t.Run("file scheme goes to fallback", func(t *testing.T) {
		t.Parallel()
		img, err := r.Load(ctx, "file:///tmp/logo.png")
		require.NoError(t, err)
		assert.Equal(t, len("local"), img.Bounds().Dx())
	})

	t.Run("registered scheme", func(t *testing.T) {
		t.Parallel()
		img, err := r.Load(ctx, "s3://bucket/logo.png")
		require.NoError(t, err)
		assert.Equal(t, len("s3-loader"), img.Bounds().Dx())
	})

	t.Run("data uri is built in", func(t *testing.T) {
		t.Parallel()
		uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, 9, 2, color.White))
		img, err := r.Load(ctx, uri)
		require.NoError(t, err)
		assert.Equal(t, 9, img.Bounds().Dx())
	})

	t.Run("unknown scheme", func(t *testing.T) {
		t.Parallel()
		_, err := r.Load(ctx, "ftp://host/logo.png")
		assert.ErrorIs(t, err, asset.ErrUnsupportedRef)
	})

	t.Run("empty reference", func(t *testing.T) {
		t.Parallel()
		_, err := r.Load(ctx, "")
		assert.ErrorIs(t, err, asset.ErrEmptyReference)
	})

	t.Run("no fallback", func(t *testing.T) {
		t.Parallel()
		_, err := asset.NewRouter(nil).Load(ctx, "logo.png")
		assert.ErrorIs(t, err, asset.ErrUnsupportedRef)
	})
}

func TestDecode_SVG(t *testing.T) {
	t.Parallel()

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><rect width="20" height="10" fill="#ff0000"/></svg>`
	img, err := asset.Decode(strings.NewReader(svg), 0)
	require.NoError(t, err)
	assert.Equal(t, asset.SVGRasterSize, img.Bounds().Dx())
	assert.Equal(t, asset.SVGRasterSize/2, img.Bounds().Dy())

	r, g, _, a := img.At(asset.SVGRasterSize/2, asset.SVGRasterSize/4).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, g>>8, uint32(50))
	assert.Equal(t, uint32(0xffff), a)
}

func TestDecode_TooLarge(t *testing.T) {
	t.Parallel()
	_, err := asset.Decode(bytes.NewReader(pngBytes(t, 16, 16, color.White)), 8)
	assert.ErrorIs(t, err, asset.ErrAssetTooLarge)
}
