package generator

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/admission/internal/logging"
	"github.com/aretw0/admission/pkg/domain"
	"github.com/aretw0/admission/pkg/ports"
)

// Observer receives the outcome of each generation. Implemented by observability.Metrics.
type Observer interface {
	ObserveGeneration(format domain.Format, elapsed time.Duration, err error)
}

// Generator renders the score upload template.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	spreadsheet ports.TemplateWriter // nil when the capability is absent
	fallback    ports.TemplateWriter
	template    func() domain.ScoreTemplate
	observer    Observer
	logger      *slog.Logger
}

// Option configures the Generator.
type Option func(*Generator)

// WithSpreadsheet injects the rich spreadsheet capability. A nil writer leaves it absent.
func WithSpreadsheet(w ports.TemplateWriter) Option {
	return func(g *Generator) {
		g.spreadsheet = w
	}
}

// WithTemplate replaces the template source.
func WithTemplate(fn func() domain.ScoreTemplate) Option {
	return func(g *Generator) {
		g.template = fn
	}
}

// WithObserver registers a generation observer.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator that uses fallback when no spreadsheet writer is injected.
func New(fallback ports.TemplateWriter, opts ...Option) *Generator {
	g := &Generator{
		fallback: fallback,
		template: domain.NewScoreTemplate,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SpreadsheetAvailable reports whether the rich spreadsheet capability is present.
func (g *Generator) SpreadsheetAvailable() bool {
	return g.spreadsheet != nil
}

// Format returns the format Generate will produce.
func (g *Generator) Format() domain.Format {
	return g.writer().Format()
}

func (g *Generator) writer() ports.TemplateWriter {
	if g.spreadsheet != nil {
		return g.spreadsheet
	}
	return g.fallback
}

// Generate renders the template with the selected writer.
func (g *Generator) Generate(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := g.writer()
	if w == nil {
		return nil, fmt.Errorf("no template writer configured")
	}
	format := w.Format()
	if g.spreadsheet == nil {
		g.logger.Debug("spreadsheet capability absent, using fallback", "format", format)
	}

	start := time.Now()
	var buf bytes.Buffer
	err := w.Write(&buf, g.template())
	if g.observer != nil {
		g.observer.ObserveGeneration(format, time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s template: %w", format, err)
	}

	g.logger.Debug("template generated", "format", format, "bytes", buf.Len())
	return &domain.Document{Format: format, Body: buf.Bytes()}, nil
}
