package qrjson

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/qrjson/pkg/logger"
	"github.com/dmitrymomot/qrjson/pkg/qrcode"
)

// Service turns structured values into QR code artifacts.
// It is safe for concurrent use.
type Service struct {
	gen    *qrcode.Generator
	logger *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the Service. A nil logger is ignored.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service around gen. A nil gen uses qrcode defaults.
func New(gen *qrcode.Generator, opts ...ServiceOption) *Service {
	s := &Service{logger: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if gen == nil {
		gen = qrcode.NewGenerator(nil, nil, qrcode.WithLogger(s.logger))
	}
	s.gen = gen
	return s
}

// Generate serializes data to JSON and encodes it as a QR code.
// data must be an object or an array: a map, struct, slice or json.RawMessage.
// Any failure is returned as *Error.
func (s *Service) Generate(ctx context.Context, data any, opts ...qrcode.Option) (*qrcode.Artifact, error) {
	payload, err := qrcode.Serialize(data)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	art, err := s.gen.Generate(ctx, payload, opts...)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	return art, nil
}

func (s *Service) fail(ctx context.Context, err error) error {
	qe := newError(err)
	s.logger.ErrorContext(ctx, "qr code generation failed",
		logger.Component("service"),
		logger.Error(err),
		slog.String("kind", qe.Kind.Error()),
	)
	return qe
}
