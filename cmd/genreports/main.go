// Command genreports generates mock raw citizen-report payloads for load
// testing and test fixtures. Reports are scattered around real city centers
// with coordinate jitter, so the grid-code and forecast caches see realistic
// repeat patterns.
//
// Usage:
//
//	go run ./cmd/genreports -count 200 -seed 42 -out data/mock/raw_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type city struct {
	name string
	lat  float64
	lon  float64
}

var cities = []city{
	{"Hyderabad", 17.3850, 78.4867},
	{"Mumbai", 19.0760, 72.8777},
	{"Delhi", 28.6139, 77.2090},
	{"Chennai", 13.0827, 80.2707},
	{"Bengaluru", 12.9716, 77.5946},
	{"Kolkata", 22.5726, 88.3639},
	{"Pune", 18.5204, 73.8567},
	{"Visakhapatnam", 17.6868, 83.2185},
}

var categories = []string{"flooding", "waterlogging", "drainage", "debris", "outage", "other"}

var descriptions = map[string][]string{
	"flooding":     {"Street fully submerged", "Water entering ground-floor homes", "River overflowing near the bridge"},
	"waterlogging": {"Knee-deep water under the underpass", "Standing water on the service road", "Junction flooded after an hour of rain"},
	"drainage":     {"Manhole cover missing, drain overflowing", "Blocked storm drain near the market", "Sewage backing up onto the street"},
	"debris":       {"Fallen tree blocking both lanes", "Construction rubble washed onto the road", "Billboard collapsed onto the footpath"},
	"outage":       {"Transformer sparking, power out in the block", "Street lights down since last night", "Pole leaning over the waterlogged lane"},
	"other":        {"Boundary wall leaning after the rain", "Deep pothole hidden under water", "Signal not working at the crossing"},
}

// rawReport mirrors the upload form's flat payload, coordinates as strings.
type rawReport struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
	ReportedAt  string `json:"reported_at"`
}

func main() {
	count := flag.Int("count", 100, "number of reports to generate")
	seed := flag.Int64("seed", 1, "random seed for reproducible output")
	out := flag.String("out", "", "output path for the JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(*count, *seed, *out); err != nil {
		log.Fatal(err)
	}
}

func run(count int, seed int64, out string) error {
	rnd := rand.New(rand.NewSource(seed))
	base := time.Date(2026, time.July, 14, 6, 0, 0, 0, time.UTC)

	reports := make([]rawReport, 0, count)
	for i := 0; i < count; i++ {
		reports = append(reports, randomReport(rnd, base))
	}

	if err := writeJSON(out, reports); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d reports: %s", count, out)

	printStats(reports)
	return nil
}

func randomReport(rnd *rand.Rand, base time.Time) rawReport {
	c := cities[rnd.Intn(len(cities))]
	category := categories[rnd.Intn(len(categories))]
	lines := descriptions[category]

	// Jitter of up to ~0.05° (~5km) keeps reports inside the city while
	// spreading them over many grid cells.
	lat := c.lat + (rnd.Float64()-0.5)*0.1
	lon := c.lon + (rnd.Float64()-0.5)*0.1

	// Occasionally drop the timestamp to exercise the Kafka-time fallback.
	reportedAt := ""
	if rnd.Float64() > 0.1 {
		reportedAt = base.Add(time.Duration(rnd.Intn(12*3600)) * time.Second).Format(time.RFC3339)
	}

	return rawReport{
		Category:    category,
		Description: fmt.Sprintf("%s near %s", lines[rnd.Intn(len(lines))], c.name),
		Lat:         fmt.Sprintf("%.4f", lat),
		Lng:         fmt.Sprintf("%.4f", lon),
		ReportedAt:  reportedAt,
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []rawReport) {
	counts := map[string]int{}
	missingTime := 0
	for i := range reports {
		counts[reports[i].Category]++
		if reports[i].ReportedAt == "" {
			missingTime++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(reports))
	for _, c := range categories {
		fmt.Printf("  %-13s %d\n", c+":", counts[c])
	}
	fmt.Printf("Missing reported_at: %d\n", missingTime)
}
