package domain

import (
	"context"
	"time"
)

// RawReportRecord represents the flat JSON structure relayed by the ingestion
// gateway. Form fields arrive as strings, including the coordinates.
type RawReportRecord struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	ReportedAt  string `json:"reported_at"` // RFC3339 from the browser, may be empty
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GridCode is the DIGIPIN cell a report resolves to: the opaque code the
// dashboard stores, its display form, and the cell centroid with half-extent
// precision in meters.
type GridCode struct {
	Code               string  `json:"code"`
	Display            string  `json:"display,omitempty"`
	CentroidLat        float64 `json:"centroid_lat"`
	CentroidLon        float64 `json:"centroid_lon"`
	PrecisionLatMeters float64 `json:"precision_lat_m"`
	PrecisionLonMeters float64 `json:"precision_lon_m"`
}

// Rainfall is the optional flood-outlook enrichment at the report location.
type Rainfall struct {
	ForecastMM float64 `json:"forecast_mm"`
	Hours      int     `json:"hours,omitempty"`
	Severity   string  `json:"severity,omitempty"`
	Advisory   string  `json:"advisory,omitempty"`
	Source     string  `json:"source,omitempty"` // "forecast", "failed", "disabled"
}

// CitizenReport is the domain-rich representation after parsing.
type CitizenReport struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Geo         Geo       `json:"geo"`
	ReportedAt  time.Time `json:"reported_at"`
	Grid        GridCode  `json:"grid"`
	Rainfall    Rainfall  `json:"rainfall"`
	TimeBucket  time.Time `json:"time_bucket,omitzero"`

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}
