package domain

import "fmt"

// GridCoder resolves a coordinate to its grid code and cell geometry.
type GridCoder interface {
	// CodeFor encodes a coordinate and returns the full cell record.
	CodeFor(lat, lon float64) (GridCode, error)
}

// EnrichWithGridCode resolves the report's DIGIPIN cell. Unlike the rainfall
// outlook this enrichment is mandatory: a report whose location cannot be
// coded is unusable for the map layer, so the error is returned to the caller
// instead of degrading. No substitute code is ever fabricated.
//
// A nil coder skips the enrichment (used by parsing-only tests).
func EnrichWithGridCode(report CitizenReport, coder GridCoder) (CitizenReport, error) {
	if coder == nil {
		return report, nil
	}

	grid, err := coder.CodeFor(report.Geo.Lat, report.Geo.Lon)
	if err != nil {
		return CitizenReport{}, fmt.Errorf("grid code for report %s: %w", report.ID, err)
	}
	report.Grid = grid
	return report, nil
}
