package publish

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnest-dev/vnest/internal/errors"
	"github.com/vnest-dev/vnest/pkg/dom"
)

// ContentType is the content type of published snapshots.
const ContentType = "text/html; charset=utf-8"

// Target stores published objects.
type Target interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

// Publisher renders documents and stores them in a Target.
type Publisher struct {
	target Target
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a Publisher for target.
func New(target Target) *Publisher {
	return &Publisher{
		target: target,
		logger: slog.Default().With("component", "publish"),
		tracer: otel.Tracer("github.com/vnest-dev/vnest/pkg/publish"),
	}
}

// SetLogger replaces the logger.
func (p *Publisher) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Publish serializes doc and stores it under key. The caller must hold
// whatever lock guards doc.
func (p *Publisher) Publish(ctx context.Context, doc *dom.Document, key string) error {
	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return errors.New("E401").WithDetail("render failed").Wrap(err)
	}
	return p.PublishBytes(ctx, key, buf.Bytes())
}

// PublishBytes stores an already rendered snapshot under key.
func (p *Publisher) PublishBytes(ctx context.Context, key string, body []byte) error {
	key = strings.TrimPrefix(key, "/")

	ctx, span := p.tracer.Start(ctx, "vnest.publish",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("vnest.key", key),
			attribute.Int("vnest.bytes", len(body)),
		),
	)
	defer span.End()

	if key == "" {
		err := errors.New("E401").WithDetail("empty object key")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := p.target.Put(ctx, key, ContentType, body); err != nil {
		var verr *errors.VnestError
		if !errors.As(err, &verr) {
			verr = errors.New("E401").WithDetail("key " + key).Wrap(err)
		}
		span.RecordError(verr)
		span.SetStatus(codes.Error, verr.Error())
		p.logger.Warn("publish failed", "key", key, "error", verr)
		return verr
	}

	span.SetStatus(codes.Ok, "")
	p.logger.Info("published", "key", key, "bytes", len(body))
	return nil
}
