package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/metarflow-service/internal/domain"
	"github.com/couchcryptid/metarflow-service/internal/observability"
)

// MetarTransformer implements Transformer by decoding the report carried in
// each source message and serializing the result for the sink topic.
type MetarTransformer struct {
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates a MetarTransformer.
func NewTransformer(metrics *observability.Metrics, logger *slog.Logger) *MetarTransformer {
	return &MetarTransformer{
		metrics: metrics,
		logger:  logger,
	}
}

func (t *MetarTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	event, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	event = domain.StampReportEvent(event)

	out, err := domain.SerializeReportEvent(event)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.ReportsDecoded.WithLabelValues("pipeline").Inc()
	t.logger.Debug("report decoded", "id", event.ID, "station", event.Report.Station)
	return out, nil
}
