package domain

import "context"

// RainfallOutlook is the summed rainfall forecast at a point.
type RainfallOutlook struct {
	TotalMM float64
	Hours   int // horizon actually covered by the forecast
}

// RainfallForecaster provides a rainfall outlook for a coordinate.
type RainfallForecaster interface {
	// ForecastRainfall sums the forecast rain over the next `hours` hours.
	ForecastRainfall(ctx context.Context, lat, lon float64, hours int) (RainfallOutlook, error)
}
