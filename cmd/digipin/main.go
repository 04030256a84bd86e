// Command digipin encodes and decodes grid codes from the command line. It is
// a debugging aid for checking what cell a dashboard pin resolves to and what
// a code stored in the sink topic decodes back to.
//
// Usage:
//
//	go run ./cmd/digipin -lat 17.3850 -lon 78.4867
//	go run ./cmd/digipin -code 39J-49L-6T8T
//	go run ./cmd/digipin -code 39J-49L-6T8T -ancestors
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hydtwin/citizen-report-etl/internal/digipin"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude to encode")
	lon := flag.Float64("lon", 0, "longitude to encode")
	code := flag.String("code", "", "grid code to decode (separators allowed)")
	ancestors := flag.Bool("ancestors", false, "with -code, print every ancestor cell from level 1 down")
	flag.Parse()

	codec := digipin.Default()

	switch {
	case *code != "":
		if err := runDecode(codec, *code, *ancestors); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case *lat != 0 || *lon != 0:
		if err := runEncode(codec, *lat, *lon); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runEncode(codec *digipin.Codec, lat, lon float64) error {
	code, err := codec.Encode(lat, lon)
	if err != nil {
		return err
	}

	cell, err := codec.Decode(code)
	if err != nil {
		return err
	}

	fmt.Printf("code:      %s\n", code)
	fmt.Printf("display:   %s\n", digipin.Format(code))
	fmt.Printf("centroid:  %.6f, %.6f\n", cell.Centroid.Lat(), cell.Centroid.Lon())
	fmt.Printf("precision: ±%.2fm lat, ±%.2fm lon\n", cell.PrecisionLatMeters, cell.PrecisionLonMeters)
	return nil
}

func runDecode(codec *digipin.Codec, code string, ancestors bool) error {
	normalized := digipin.Normalize(code)

	cell, err := codec.Decode(normalized)
	if err != nil {
		return err
	}

	printCell(normalized, cell)

	if !ancestors {
		return nil
	}

	fmt.Println("\nancestors:")
	for level := 1; level < len(normalized); level++ {
		prefix := normalized[:level]
		ancestor, err := codec.DecodePrefix(prefix)
		if err != nil {
			return fmt.Errorf("decode prefix %q: %w", prefix, err)
		}
		fmt.Printf("  L%-2d %-10s centroid %.6f, %.6f (±%.0fm)\n",
			ancestor.Level, prefix, ancestor.Centroid.Lat(), ancestor.Centroid.Lon(), ancestor.PrecisionLatMeters)
	}
	return nil
}

func printCell(code string, cell digipin.Cell) {
	fmt.Printf("code:      %s\n", code)
	fmt.Printf("level:     %d\n", cell.Level)
	fmt.Printf("centroid:  %.6f, %.6f\n", cell.Centroid.Lat(), cell.Centroid.Lon())
	fmt.Printf("bounds:    lat [%.6f, %.6f], lon [%.6f, %.6f]\n",
		cell.Bound.Min.Lat(), cell.Bound.Max.Lat(), cell.Bound.Min.Lon(), cell.Bound.Max.Lon())
	fmt.Printf("precision: ±%.2fm lat, ±%.2fm lon\n", cell.PrecisionLatMeters, cell.PrecisionLonMeters)
}
