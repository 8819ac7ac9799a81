package middleware

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/lattice/pkg/observability"
	"github.com/aretw0/lattice/pkg/ports"
	"github.com/aretw0/lattice/pkg/schema"
)

type instrumentationMiddleware struct {
	next    ports.ModelStore
	metrics *observability.StoreMetrics
	logger  *slog.Logger
}

// NewInstrumentation creates a middleware that records every store
// operation on the given instruments and logs failures. Either argument
// may be nil.
func NewInstrumentation(metrics *observability.StoreMetrics, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return func(next ports.ModelStore) ports.ModelStore {
		return &instrumentationMiddleware{
			next:    next,
			metrics: metrics,
			logger:  logger,
		}
	}
}

func (m *instrumentationMiddleware) observe(op, name string, start time.Time, err error) {
	m.metrics.ObserveOp(op, err, time.Since(start))
	if err != nil {
		m.logger.Warn("store operation failed", "op", op, "model", name, "error", err)
	}
}

func (m *instrumentationMiddleware) Save(ctx context.Context, doc *schema.Document) error {
	start := time.Now()
	err := m.next.Save(ctx, doc)
	m.observe("save", doc.Name, start, err)
	return err
}

func (m *instrumentationMiddleware) Load(ctx context.Context, name string) (*schema.Document, error) {
	start := time.Now()
	doc, err := m.next.Load(ctx, name)
	m.observe("load", name, start, err)
	return doc, err
}

func (m *instrumentationMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.observe("delete", name, start, err)
	return err
}

func (m *instrumentationMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.observe("list", "", start, err)
	return names, err
}
