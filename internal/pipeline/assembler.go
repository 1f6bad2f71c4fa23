// Package pipeline turns a submitted file into a model.ContentModel: it
// validates the file, detects its content type, reads the bytes once, and runs
// the matching reader alongside the raw encoder.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"docview/internal/model"
	"docview/internal/reader"
)

const tracerName = "docview/internal/pipeline"

var errNoByteSource = errors.New("file has no byte source")

// Assembler drives one file through validation, detection and reading.
// It holds no per-attempt state and is safe for concurrent use.
type Assembler struct {
	validator *Validator
	readers   *reader.Registry
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records attempt outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(a *Assembler) { a.metrics = m }
}

// NewAssembler builds an assembler. A nil validator uses DefaultLimits and a
// nil registry uses the built-in readers.
func NewAssembler(v *Validator, readers *reader.Registry, opts ...Option) *Assembler {
	if v == nil {
		v = NewValidator(DefaultLimits())
	}
	if readers == nil {
		readers = reader.Default()
	}
	a := &Assembler{
		validator: v,
		readers:   readers,
		logger:    slog.New(slog.DiscardHandler),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Limits returns the validator limits in effect.
func (a *Assembler) Limits() Limits { return a.validator.Limits() }

// Process runs file through the pipeline.
func (a *Assembler) Process(ctx context.Context, file model.File) (*model.ContentModel, error) {
	return a.ProcessObserved(ctx, file, nil)
}

// ProcessObserved is Process with every state transition reported to observe.
// On failure it returns a *ValidationError, *ParseError, *IOError or the
// context error, and never a partial model.
func (a *Assembler) ProcessObserved(ctx context.Context, file model.File, observe StateObserver) (*model.ContentModel, error) {
	start := time.Now()
	notify := func(s State) {
		if observe != nil {
			observe(s)
		}
	}

	ctx, span := a.tracer.Start(ctx, "pipeline.Process", trace.WithAttributes(
		attribute.String("document.name", file.Name),
		attribute.Int64("document.size", file.Size),
	))
	defer span.End()

	var kind model.ContentType
	fail := func(err error) (*model.ContentModel, error) {
		notify(StateFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, UserMessage(err))
		a.logFailure(ctx, file, kind, err, time.Since(start))
		return nil, err
	}

	notify(StateValidating)
	if err := a.validator.Validate(file.Name, file.Size); err != nil {
		return fail(err)
	}

	notify(StateDetecting)
	kind = DetectType(file.Name)
	span.SetAttributes(attribute.String("document.type", kind.String()))
	rd, ok := a.readers.Get(kind)
	if !ok {
		return fail(fmt.Errorf("%w: %s", ErrNoReader, kind))
	}

	notify(StateReading)
	b, err := a.readAll(file)
	if err != nil {
		return fail(err)
	}

	var (
		content model.Content
		encoded string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rctx, rspan := a.tracer.Start(gctx, "reader.Read", trace.WithAttributes(
			attribute.String("document.type", kind.String()),
			attribute.Int("document.bytes", len(b)),
		))
		defer rspan.End()

		c, err := rd.Read(rctx, b)
		if err != nil {
			rspan.RecordError(err)
			rspan.SetStatus(codes.Error, "read failed")
			return &ParseError{Kind: kind, Err: err}
		}
		content = c
		return nil
	})
	g.Go(func() error {
		encoded = EncodeRaw(b)
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fail(ctxErr)
		}
		return fail(err)
	}

	cm, err := model.NewContentModel(file.Name, ResolveMimeType(file.Name, file.MimeType), encoded, int64(len(b)), content)
	if err != nil {
		return fail(&ParseError{Kind: kind, Err: err})
	}

	notify(StateAssembled)
	elapsed := time.Since(start)
	a.metrics.observe(kind, OutcomeAssembled, elapsed)
	a.logger.LogAttrs(ctx, slog.LevelInfo, "document_assembled",
		slog.String("component", "pipeline"),
		slog.String("name", file.Name),
		slog.String("type", kind.String()),
		slog.Int64("size_bytes", cm.SizeBytes),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
	)
	return cm, nil
}

// readAll reads the byte source once, never more than one byte past the size
// ceiling. A source longer than the ceiling fails size validation even when
// the declared size passed.
func (a *Assembler) readAll(file model.File) ([]byte, error) {
	if file.Open == nil {
		return nil, &IOError{Op: "open", Err: errNoByteSource}
	}
	rc, err := file.Open()
	if err != nil {
		return nil, &IOError{Op: "open", Err: err}
	}
	defer rc.Close()

	limit := a.validator.Limits().MaxSizeBytes
	b, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	if int64(len(b)) > limit {
		return nil, a.validator.sizeError()
	}
	return b, nil
}

func (a *Assembler) logFailure(ctx context.Context, file model.File, kind model.ContentType, err error, elapsed time.Duration) {
	attrs := []slog.Attr{
		slog.String("component", "pipeline"),
		slog.String("name", file.Name),
		slog.Int64("size_bytes", file.Size),
		slog.Int64("duration_ms", elapsed.Milliseconds()),
		slog.String("error", err.Error()),
	}
	if kind != "" {
		attrs = append(attrs, slog.String("type", kind.String()))
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		a.metrics.observe(kind, OutcomeRejected, elapsed)
		attrs = append(attrs, slog.String("code", verr.Code))
		a.logger.LogAttrs(ctx, slog.LevelInfo, "document_rejected", attrs...)
		return
	}
	a.metrics.observe(kind, OutcomeFailed, elapsed)
	a.logger.LogAttrs(ctx, slog.LevelWarn, "document_failed", attrs...)
}
