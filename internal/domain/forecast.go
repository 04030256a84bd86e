package domain

import (
	"context"
	"log/slog"
)

// EnrichWithRainfall attaches a rainfall outlook and flood severity to a
// report. If forecaster is nil the enrichment is disabled; if the forecast
// fails the report stays valid with Source set to "failed" (graceful
// degradation).
func EnrichWithRainfall(ctx context.Context, report CitizenReport, forecaster RainfallForecaster, hours int, logger *slog.Logger) CitizenReport {
	if forecaster == nil {
		report.Rainfall = Rainfall{Source: "disabled"}
		return report
	}

	outlook, err := forecaster.ForecastRainfall(ctx, report.Geo.Lat, report.Geo.Lon, hours)
	if err != nil {
		logger.Warn("rainfall forecast failed",
			"report_id", report.ID,
			"lat", report.Geo.Lat,
			"lon", report.Geo.Lon,
			"error", err,
		)
		report.Rainfall = Rainfall{Source: "failed"}
		return report
	}

	severity := ClassifySeverity(outlook.TotalMM)
	report.Rainfall = Rainfall{
		ForecastMM: outlook.TotalMM,
		Hours:      outlook.Hours,
		Severity:   severity,
		Advisory:   SeverityAdvisory(severity),
		Source:     "forecast",
	}
	return report
}
