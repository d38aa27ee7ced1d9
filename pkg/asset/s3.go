package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client defines the S3 operations used by S3Loader.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Loader reads images from Amazon S3 and S3-compatible services.
// References are either "s3://bucket/key" or a bare key in the default bucket.
// It is safe for concurrent use.
type S3Loader struct {
	client   S3Client
	bucket   string
	timeout  time.Duration
	maxBytes int64
}

// S3Config contains configuration for the S3 loader.
type S3Config struct {
	Bucket         string // default bucket for bare keys
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string // optional, for S3-compatible services
	ForcePathStyle bool   // for S3-compatible services like MinIO
}

// S3Option configures an S3Loader.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
	timeout         time.Duration
	maxBytes        int64
}

// WithS3Client sets a pre-configured S3 client. Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests.
func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds a custom AWS config option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds a custom S3 client option.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithS3Timeout bounds each download. Zero relies on the caller's context.
func WithS3Timeout(timeout time.Duration) S3Option {
	return func(o *s3Options) {
		o.timeout = timeout
	}
}

// WithS3MaxBytes limits the object size the loader will read.
func WithS3MaxBytes(n int64) S3Option {
	return func(o *s3Options) {
		o.maxBytes = n
	}
}

// NewS3Loader creates a new S3 loader.
func NewS3Loader(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Loader, error) {
	if cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}
		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
	}

	maxBytes := options.maxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	return &S3Loader{
		client:   client,
		bucket:   cfg.Bucket,
		timeout:  options.timeout,
		maxBytes: maxBytes,
	}, nil
}

// Load downloads and decodes the object referenced by ref.
func (l *S3Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	bucket, key, err := l.locate(ref)
	if err != nil {
		return nil, err
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err)
	}
	defer func() { _ = out.Body.Close() }()

	if out.ContentLength != nil && *out.ContentLength > l.maxBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrAssetTooLarge, ref, *out.ContentLength)
	}

	return Decode(out.Body, l.maxBytes)
}

// locate splits ref into bucket and key.
func (l *S3Loader) locate(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", ErrEmptyReference
	}

	if strings.HasPrefix(strings.ToLower(ref), "s3://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", "", fmt.Errorf("%w: %v", ErrUnsupportedRef, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return "", "", fmt.Errorf("%w: %s", ErrUnsupportedRef, ref)
		}
		return u.Host, key, nil
	}

	if l.bucket == "" {
		return "", "", fmt.Errorf("%w: no default bucket for %q", ErrUnsupportedRef, ref)
	}
	return l.bucket, strings.TrimPrefix(ref, "/"), nil
}

// classifyS3Error converts S3 errors to package errors.
func classifyS3Error(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: get object", ErrOperationTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: get object", ErrOperationCanceled)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, err)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch code {
		case "AccessDenied":
			return fmt.Errorf("%w: get object", ErrAccessDenied)
		case "RequestTimeout":
			return fmt.Errorf("%w: get object", ErrRequestTimeout)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: get object", ErrServiceUnavailable)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrAssetNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("get object failed (code: %s): %w", code, err)
		}
	}

	return fmt.Errorf("get object failed: %w", err)
}
