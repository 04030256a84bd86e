package pipeline

import (
	"errors"
	"fmt"

	"github.com/hydtwin/citizen-report-etl/internal/digipin"
	"github.com/hydtwin/citizen-report-etl/internal/domain"
	"github.com/hydtwin/citizen-report-etl/internal/observability"
)

// GridCoder implements domain.GridCoder on top of a digipin.Codec, with an
// optional LRU cache in front of the encoder. Repeat reports from the same
// hotspot hit the cache instead of re-walking the grid.
type GridCoder struct {
	codec   *digipin.Codec
	encoder digipin.Encoder
	metrics *observability.Metrics
}

// NewGridCoder wraps a codec for use by the transformer. A cacheSize of 0
// disables the encode cache.
func NewGridCoder(codec *digipin.Codec, cacheSize int, metrics *observability.Metrics) *GridCoder {
	var encoder digipin.Encoder = codec
	if cacheSize > 0 {
		encoder = digipin.NewCachedEncoder(codec, cacheSize)
	}
	return &GridCoder{
		codec:   codec,
		encoder: encoder,
		metrics: metrics,
	}
}

// CodeFor encodes a coordinate and decodes the resulting code back into its
// cell to report the centroid and precision alongside the code itself.
func (g *GridCoder) CodeFor(lat, lon float64) (domain.GridCode, error) {
	code, err := g.encoder.Encode(lat, lon)
	if err != nil {
		if errors.Is(err, digipin.ErrOutOfDomain) {
			g.metrics.GridEncodes.WithLabelValues("out_of_domain").Inc()
		}
		return domain.GridCode{}, fmt.Errorf("encode (%.6f, %.6f): %w", lat, lon, err)
	}

	cell, err := g.codec.Decode(code)
	if err != nil {
		// Unreachable for codes the codec just produced.
		return domain.GridCode{}, fmt.Errorf("decode %q: %w", code, err)
	}

	g.metrics.GridEncodes.WithLabelValues("ok").Inc()
	return domain.GridCode{
		Code:               code,
		Display:            digipin.Format(code),
		CentroidLat:        cell.Centroid.Lat(),
		CentroidLon:        cell.Centroid.Lon(),
		PrecisionLatMeters: cell.PrecisionLatMeters,
		PrecisionLonMeters: cell.PrecisionLonMeters,
	}, nil
}
