package pipeline

import (
	"context"
	"log/slog"

	"github.com/hydtwin/citizen-report-etl/internal/domain"
)

// ReportTransformer implements Transformer using domain transform functions:
// parse, normalize, grid-code resolution, and optional rainfall enrichment.
type ReportTransformer struct {
	coder      domain.GridCoder
	forecaster domain.RainfallForecaster
	hours      int
	logger     *slog.Logger
}

// NewTransformer creates a ReportTransformer. Pass a nil forecaster to disable
// rainfall enrichment; the grid coder is required in production but may be nil
// in parsing-only tests.
func NewTransformer(coder domain.GridCoder, forecaster domain.RainfallForecaster, hours int, logger *slog.Logger) *ReportTransformer {
	return &ReportTransformer{
		coder:      coder,
		forecaster: forecaster,
		hours:      hours,
		logger:     logger,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.CitizenReport, error) {
	report, err := domain.ParseRawReport(raw)
	if err != nil {
		return domain.CitizenReport{}, err
	}

	report = domain.EnrichReport(report)

	report, err = domain.EnrichWithGridCode(report, t.coder)
	if err != nil {
		return domain.CitizenReport{}, err
	}

	report = domain.EnrichWithRainfall(ctx, report, t.forecaster, t.hours, t.logger)

	return report, nil
}
