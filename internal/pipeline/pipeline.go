package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/couchcryptid/metarflow-service/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// BatchExtractor reads up to batchSize raw events from the source topic.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer decodes a raw event into a serialized output event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes decoded reports to the sink topic.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline consumes raw METAR messages, decodes them, and republishes the
// structured reports.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one
// decoded report.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any reports yet")
	}
	return nil
}

// Run consumes, decodes, and republishes batches until the context is
// cancelled. It always returns nil on cancellation.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	b := backoff{initial: initialBackoff, max: maxBackoff}
	b.reset()

	for ctx.Err() == nil {
		if !p.processBatch(ctx, &b) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// processBatch runs one extract, decode, and load cycle. Returns false if the
// pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, b *backoff) bool {
	start := time.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err, "retry_in", b.current)
		return b.wait(ctx)
	}
	if len(batch) == 0 {
		return true
	}

	p.metrics.MessagesConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))
	b.reset()

	out := p.decodeBatch(ctx, batch)
	if len(out) > 0 && !p.load(ctx, out, b) {
		return false
	}

	// Offsets are cumulative per partition, so nothing in the batch is
	// committed until every decoded report has been published.
	for _, raw := range batch {
		p.commit(ctx, raw)
	}
	if len(out) == 0 {
		return true
	}

	p.metrics.MessagesProduced.Add(float64(len(out)))
	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Debug("batch published", "consumed", len(batch), "published", len(out))
	return true
}

// decodeBatch decodes every message in the batch. Messages that fail to decode
// are logged, counted, and left out of the result.
func (p *Pipeline) decodeBatch(ctx context.Context, batch []domain.RawEvent) []domain.OutputEvent {
	out := make([]domain.OutputEvent, 0, len(batch))
	for _, raw := range batch {
		event, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("decode failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			continue
		}
		out = append(out, event)
	}
	return out
}

// load publishes the batch, retrying the same events with backoff until it
// succeeds. Returns false if the context is cancelled first.
func (p *Pipeline) load(ctx context.Context, out []domain.OutputEvent, b *backoff) bool {
	for {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("load batch failed", "error", err, "batch_size", len(out), "retry_in", b.current)
		if !b.wait(ctx) {
			return false
		}
	}
}

func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

// backoff is an exponential retry delay capped at max.
type backoff struct {
	initial time.Duration
	max     time.Duration
	current time.Duration
}

func (b *backoff) reset() {
	b.current = b.initial
}

// wait sleeps for the current delay and doubles it. Returns false if the
// context is cancelled first.
func (b *backoff) wait(ctx context.Context) bool {
	timer := time.NewTimer(b.current)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}

	b.current *= 2
	if b.current > b.max {
		b.current = b.max
	}
	return true
}
