package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// knownCategories are the dashboard's incident layers. Anything else folds
// into "other".
var knownCategories = map[string]bool{
	"flooding":     true,
	"waterlogging": true,
	"drainage":     true,
	"debris":       true,
	"outage":       true,
	"other":        true,
}

// ParseRawReport deserializes a RawEvent's value into a CitizenReport.
// It expects the flat form-field JSON produced by the ingestion gateway.
func ParseRawReport(raw RawEvent) (CitizenReport, error) {
	var rec RawReportRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return CitizenReport{}, fmt.Errorf("parse raw report: %w", err)
	}

	lat := parseFloatOrZero(rec.Lat)
	lon := parseFloatOrZero(rec.Lng)
	reportedAt := parseReportedAt(rec.ReportedAt, raw.Timestamp)

	return CitizenReport{
		ID:          generateID(rec.Category, lat, lon, reportedAt),
		Category:    rec.Category,
		Description: strings.TrimSpace(rec.Description),
		Geo:         Geo{Lat: lat, Lon: lon},
		ReportedAt:  reportedAt,

		RawPayload: raw.Value,
	}, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
// (0, 0) lies outside the grid domain, so unparseable coordinates surface
// later as an out-of-domain encode error rather than a silent placeholder.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseReportedAt parses the browser-supplied RFC3339 timestamp, falling back
// to the Kafka message timestamp when missing or malformed.
func parseReportedAt(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback.UTC()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fallback.UTC()
	}
	return t.UTC()
}

// generateID produces a deterministic ID from the report's key fields.
// Reprocessing the same raw report produces the same ID, which keeps
// downstream upserts idempotent across replays.
func generateID(category string, lat, lon float64, reportedAt time.Time) string {
	input := fmt.Sprintf("%s|%.6f|%.6f|%d", category, lat, lon, reportedAt.Unix())
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	category = normalizeCategory(category)
	return category + "-" + short
}

// EnrichReport normalizes and stamps a parsed citizen report: folds the
// category into the known set, assigns an hourly time bucket, and records the
// processing time.
func EnrichReport(report CitizenReport) CitizenReport {
	report.Category = normalizeCategory(report.Category)
	report.TimeBucket = deriveTimeBucket(report.ReportedAt)
	report.ProcessedAt = clock.Now()
	return report
}

// normalizeCategory lowercases and trims the category, folding unknown values
// into "other".
func normalizeCategory(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if knownCategories[value] {
		return value
	}
	return "other"
}

// ClassifySeverity maps a rainfall amount (mm, summed over the forecast
// horizon) to the city flood playbook's four-level scale.
func ClassifySeverity(rainfallMM float64) string {
	switch {
	case rainfallMM < 10:
		return "low"
	case rainfallMM < 25:
		return "moderate"
	case rainfallMM < 50:
		return "high"
	default:
		return "critical"
	}
}

// severityAdvisories are the dashboard's fixed advisory strings per level.
var severityAdvisories = map[string]string{
	"low":      "Low flood risk.",
	"moderate": "Moderate risk: localized hotspots possible.",
	"high":     "High risk: many hotspots likely to be affected.",
	"critical": "Critical risk: widespread inundation possible.",
}

// SeverityAdvisory returns the advisory string for a severity level, or the
// empty string for an unknown level.
func SeverityAdvisory(severity string) string {
	return severityAdvisories[severity]
}

// deriveTimeBucket truncates the report time to the hour in UTC.
// Returns zero time if the input is zero.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Hour)
}
