package asset

import "errors"

var (
	ErrEmptyReference  = errors.New("asset reference is empty")
	ErrInvalidPath     = errors.New("invalid path") // path escapes the loader base directory
	ErrUnsupportedRef  = errors.New("unsupported asset reference")
	ErrInvalidDataURI  = errors.New("invalid data URI")
	ErrAssetNotFound   = errors.New("asset not found")
	ErrIsDirectory     = errors.New("path is a directory")
	ErrAssetTooLarge   = errors.New("asset size exceeds maximum allowed size")
	ErrFailedToRead    = errors.New("failed to read asset")
	ErrFailedToDecode  = errors.New("failed to decode image")
	ErrFailedToResolve = errors.New("failed to resolve asset path")

	// S3 errors
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")

	// Context and cancellation errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")

	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
)
