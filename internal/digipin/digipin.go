package digipin

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

var (
	// ErrOutOfDomain reports a coordinate outside the codec's root bounding box.
	ErrOutOfDomain = errors.New("coordinate outside grid domain")

	// ErrInvalidCode reports a code with the wrong length or a symbol that is
	// not part of the codec's alphabet.
	ErrInvalidCode = errors.New("invalid grid code")
)

// domainEpsilon absorbs floating-point noise for coordinates that sit on the
// root box edges (degrees; ≪ the finest cell span).
const domainEpsilon = 1e-9

// Spec defines the subdivision grid: Rows × Cols sub-cells per level, Levels
// symbols per code, and an alphabet of exactly Rows*Cols distinct symbols
// assigned row-major from the southern row.
type Spec struct {
	Rows     int
	Cols     int
	Levels   int
	Alphabet string
}

// Cell is the decoded form of a grid code: the cell's bounding box, its
// centroid, and its half-extents in meters at the centroid latitude.
type Cell struct {
	Bound              orb.Bound
	Centroid           orb.Point
	PrecisionLatMeters float64
	PrecisionLonMeters float64
	Level              int
}

// Codec converts coordinates to grid codes and back. A Codec is immutable and
// safe for concurrent use.
type Codec struct {
	bound    orb.Bound
	spec     Spec
	alphabet []rune
	index    map[rune]int
}

// New validates the grid spec against the root bound and builds a codec.
// Spec violations are configuration faults and surface here, never at
// encode/decode time.
func New(bound orb.Bound, spec Spec) (*Codec, error) {
	if spec.Rows < 1 || spec.Cols < 1 {
		return nil, fmt.Errorf("digipin: grid must have positive dimensions, got %dx%d", spec.Rows, spec.Cols)
	}
	if spec.Levels < 1 {
		return nil, fmt.Errorf("digipin: levels must be positive, got %d", spec.Levels)
	}
	alphabet := []rune(spec.Alphabet)
	if len(alphabet) != spec.Rows*spec.Cols {
		return nil, fmt.Errorf("digipin: alphabet has %d symbols, grid needs %d", len(alphabet), spec.Rows*spec.Cols)
	}
	index := make(map[rune]int, len(alphabet))
	for i, r := range alphabet {
		if _, dup := index[r]; dup {
			return nil, fmt.Errorf("digipin: duplicate alphabet symbol %q", r)
		}
		index[r] = i
	}
	if bound.Min.Lat() >= bound.Max.Lat() || bound.Min.Lon() >= bound.Max.Lon() {
		return nil, fmt.Errorf("digipin: degenerate root bound %v", bound)
	}

	return &Codec{
		bound:    bound,
		spec:     spec,
		alphabet: alphabet,
		index:    index,
	}, nil
}

// Default returns the India Post DIGIPIN codec: 4×4 grid, 10 levels,
// lat ∈ [2.5, 38.5], lon ∈ [63.5, 99.5].
func Default() *Codec {
	c, err := New(
		orb.Bound{
			Min: orb.Point{63.5, 2.5},
			Max: orb.Point{99.5, 38.5},
		},
		Spec{Rows: 4, Cols: 4, Levels: 10, Alphabet: "LMPTK456J327FC98"},
	)
	if err != nil {
		// The constants above are validated by tests; reaching this is a bug.
		panic(err)
	}
	return c
}

// Bound returns the codec's root bounding box.
func (c *Codec) Bound() orb.Bound { return c.bound }

// GridSpec returns the codec's grid spec.
func (c *Codec) GridSpec() Spec { return c.spec }

// Encode maps a coordinate to its grid code. Returns ErrOutOfDomain when the
// coordinate lies outside the root bound by more than a tiny epsilon.
func (c *Codec) Encode(lat, lon float64) (string, error) {
	if !c.inDomain(lat, lon) {
		return "", fmt.Errorf("encode (%.6f, %.6f): %w", lat, lon, ErrOutOfDomain)
	}

	box := c.bound
	code := make([]rune, 0, c.spec.Levels)
	for level := 0; level < c.spec.Levels; level++ {
		row, col := c.locate(box, lat, lon)
		code = append(code, c.alphabet[row*c.spec.Cols+col])
		box = c.subBound(box, row, col)
	}
	return string(code), nil
}

// Decode maps a grid code back to the cell it names. Display separators are
// stripped before validation. Returns ErrInvalidCode for a wrong-length code
// or a symbol outside the alphabet.
func (c *Codec) Decode(code string) (Cell, error) {
	symbols := []rune(Normalize(code))
	if len(symbols) != c.spec.Levels {
		return Cell{}, fmt.Errorf("decode %q: length %d, want %d: %w", code, len(symbols), c.spec.Levels, ErrInvalidCode)
	}
	return c.cellFor(code, symbols)
}

// DecodePrefix maps a code prefix of 1 to Levels symbols to the ancestor cell
// it names. A full-length prefix is equivalent to Decode.
func (c *Codec) DecodePrefix(code string) (Cell, error) {
	symbols := []rune(Normalize(code))
	if len(symbols) < 1 || len(symbols) > c.spec.Levels {
		return Cell{}, fmt.Errorf("decode prefix %q: length %d, want 1..%d: %w", code, len(symbols), c.spec.Levels, ErrInvalidCode)
	}
	return c.cellFor(code, symbols)
}

func (c *Codec) cellFor(code string, symbols []rune) (Cell, error) {
	box := c.bound
	for _, r := range symbols {
		i, ok := c.index[r]
		if !ok {
			return Cell{}, fmt.Errorf("decode %q: symbol %q not in alphabet: %w", code, r, ErrInvalidCode)
		}
		box = c.subBound(box, i/c.spec.Cols, i%c.spec.Cols)
	}

	centroid := box.Center()
	halfLat := (box.Max.Lat() - box.Min.Lat()) / 2
	halfLon := (box.Max.Lon() - box.Min.Lon()) / 2
	return Cell{
		Bound:              box,
		Centroid:           centroid,
		PrecisionLatMeters: geo.Distance(centroid, orb.Point{centroid.Lon(), centroid.Lat() + halfLat}),
		PrecisionLonMeters: geo.Distance(centroid, orb.Point{centroid.Lon() + halfLon, centroid.Lat()}),
		Level:              len(symbols),
	}, nil
}

// CellSize returns the lat/lon span in degrees of one cell at the given
// level. Level 0 is the root box; spans shrink by the subdivision factor per
// level.
func (c *Codec) CellSize(level int) (latSpan, lonSpan float64) {
	latSpan = (c.bound.Max.Lat() - c.bound.Min.Lat()) / math.Pow(float64(c.spec.Rows), float64(level))
	lonSpan = (c.bound.Max.Lon() - c.bound.Min.Lon()) / math.Pow(float64(c.spec.Cols), float64(level))
	return latSpan, lonSpan
}

// IsValidCoordinate reports whether the coordinate lies within the root
// bound, edges inclusive. Never returns an error; meant for pre-validation.
func (c *Codec) IsValidCoordinate(lat, lon float64) bool {
	return lat >= c.bound.Min.Lat() && lat <= c.bound.Max.Lat() &&
		lon >= c.bound.Min.Lon() && lon <= c.bound.Max.Lon()
}

// IsValidCode reports whether the code (after separator stripping) has the
// right length and draws every symbol from the alphabet.
func (c *Codec) IsValidCode(code string) bool {
	symbols := []rune(Normalize(code))
	if len(symbols) != c.spec.Levels {
		return false
	}
	for _, r := range symbols {
		if _, ok := c.index[r]; !ok {
			return false
		}
	}
	return true
}

// Format returns the display form of a code. Ten-symbol codes use the
// conventional XXX-XXX-XXXX grouping; other lengths are returned ungrouped.
func Format(code string) string {
	s := Normalize(code)
	if len(s) != 10 {
		return s
	}
	return s[:3] + "-" + s[3:6] + "-" + s[6:]
}

// Normalize strips cosmetic group separators (hyphens and spaces) from a
// code. Separators carry no meaning; only the symbol sequence does.
func Normalize(code string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, code)
}

// inDomain checks the root bound with an epsilon tolerance so edge
// coordinates that picked up floating-point noise still encode.
func (c *Codec) inDomain(lat, lon float64) bool {
	return lat >= c.bound.Min.Lat()-domainEpsilon && lat <= c.bound.Max.Lat()+domainEpsilon &&
		lon >= c.bound.Min.Lon()-domainEpsilon && lon <= c.bound.Max.Lon()+domainEpsilon
}

// locate returns the row/column of the sub-cell containing the coordinate.
// Indices are clamped so the box's maximum edges fall into the last
// row/column rather than overflowing.
func (c *Codec) locate(box orb.Bound, lat, lon float64) (row, col int) {
	row = int(math.Floor((lat - box.Min.Lat()) / (box.Max.Lat() - box.Min.Lat()) * float64(c.spec.Rows)))
	col = int(math.Floor((lon - box.Min.Lon()) / (box.Max.Lon() - box.Min.Lon()) * float64(c.spec.Cols)))
	return clamp(row, c.spec.Rows-1), clamp(col, c.spec.Cols-1)
}

// subBound interpolates the sub-cell bound for a row/column directly from the
// parent bound's extents.
func (c *Codec) subBound(box orb.Bound, row, col int) orb.Bound {
	latSpan := box.Max.Lat() - box.Min.Lat()
	lonSpan := box.Max.Lon() - box.Min.Lon()
	return orb.Bound{
		Min: orb.Point{
			box.Min.Lon() + lonSpan*float64(col)/float64(c.spec.Cols),
			box.Min.Lat() + latSpan*float64(row)/float64(c.spec.Rows),
		},
		Max: orb.Point{
			box.Min.Lon() + lonSpan*float64(col+1)/float64(c.spec.Cols),
			box.Min.Lat() + latSpan*float64(row+1)/float64(c.spec.Rows),
		},
	}
}

func clamp(i, maxIndex int) int {
	if i < 0 {
		return 0
	}
	if i > maxIndex {
		return maxIndex
	}
	return i
}
