// Package digipin implements a DIGIPIN-style geospatial grid code: a
// deterministic, reversible mapping between a WGS-84 coordinate and a short
// fixed-length alphanumeric string naming a small rectangular cell.
//
// # Grid model
//
// A codec is defined by a root bounding box and a grid spec (rows × cols
// subdivision factor, number of levels, and an alphabet of rows*cols distinct
// symbols). Encoding descends the hierarchy one level per output symbol: the
// coordinate's sub-cell index at each level selects the symbol
// alphabet[row*cols+col], with rows counted from the southern edge. Decoding
// replays the same walk and returns the final cell.
//
// Sub-cell bounds are always interpolated directly from the parent bounds and
// the integer index, never accumulated by repeated addition, so the walk is
// free of floating-point drift across levels.
//
// # Boundary policy
//
// A coordinate exactly on a subdivision edge belongs to the higher row/column,
// except on the root box's maximum edges, where the index is clamped into the
// last row/column. The same coordinate therefore always produces the same
// code, including at the northern and eastern extremes of the domain.
//
// # Default grid
//
// [Default] returns the India Post DIGIPIN grid: a 4×4 subdivision over
// lat ∈ [2.5, 38.5], lon ∈ [63.5, 99.5], 10 levels (≈3.8 m cells). The
// alphabet is stored south-to-north row-major:
//
//	row 3 (north): F C 9 8
//	row 2:         J 3 2 7
//	row 1:         K 4 5 6
//	row 0 (south): L M P T
//
// which reproduces the officially published cell labels. Ten-symbol codes are
// conventionally displayed as XXX-XXX-XXXX; separators are cosmetic and are
// stripped before decoding.
//
// # Precision
//
// Decode reports the cell's half-extents in meters, measured from the cell
// centroid along the meridian and the parallel. Precision shrinks
// monotonically with level: CellSize(k) = rootSpan / subdivision^k.
package digipin
