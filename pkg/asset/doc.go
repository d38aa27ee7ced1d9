// Package asset loads the raster images used as QR code overlays.
//
// A Loader turns an opaque reference into a decoded image.Image. Three
// implementations are provided:
//
//   - LocalLoader reads files, optionally confined to a base directory so
//     user supplied references cannot escape it with "../".
//   - S3Loader downloads objects through aws-sdk-go-v2; references look like
//     "s3://bucket/key" or are bare keys in a default bucket.
//   - DataURILoader decodes inline "data:image/png;base64,..." references.
//
// Router picks a loader by URL scheme and is what qrjson wires by default:
//
//	local, _ := asset.NewLocalLoader("./assets")
//	s3l, _ := asset.NewS3Loader(ctx, asset.S3Config{Region: "eu-central-1"})
//	loader := asset.NewRouter(local, asset.WithScheme("s3", s3l))
//	img, err := loader.Load(ctx, "s3://brand/logo.png")
//
// Decoding goes through github.com/disintegration/imaging, so PNG, JPEG, GIF,
// BMP and TIFF are supported, plus WebP via golang.org/x/image/webp. EXIF
// orientation is applied. Reads are capped at DefaultMaxBytes unless
// configured otherwise.
//
// # Error Handling
//
// Errors wrap the package sentinels (ErrAssetNotFound, ErrInvalidPath,
// ErrFailedToDecode, ErrAccessDenied, ...) and can be matched with errors.Is.
package asset
