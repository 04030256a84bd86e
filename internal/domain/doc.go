// Package domain models citizen incident reports uploaded through the city
// dashboard's map layer.
//
// # Data Source
//
// Reports originate from the dashboard's upload form: the user clicks a point
// on the map, picks a category, and adds a free-text description. The
// ingestion gateway relays each submission as flat JSON to the Kafka source
// topic; form fields arrive as strings, including the coordinates.
//
// # Report Conventions
//
// Categories:
//
//	"flooding", "waterlogging", "drainage", "debris", "outage" are the
//	dashboard's known layers. Anything else is folded into "other" rather
//	than rejected, since the category is advisory metadata, not an
//	integrity field.
//
// Coordinates:
//
//	WGS-84 degrees from the map click. Every report must encode to a DIGIPIN
//	grid code; a coordinate outside the grid domain makes the report
//	unusable for the map and is a transform error, never a fabricated code.
//	See [EnrichWithGridCode].
//
// Timestamps:
//
//	The browser supplies reported_at as RFC3339. When missing or malformed,
//	the Kafka message timestamp (set by the gateway at ingest) is used.
//
// Flood severity:
//
//	Derived from the summed hourly rainfall forecast at the report location,
//	using the city flood playbook thresholds:
//
//	  <10 mm low | <25 mm moderate | <50 mm high | ≥50 mm critical
//
//	Each level carries a fixed advisory string shown on the dashboard. The
//	enrichment is optional and degrades gracefully: a failed forecast leaves
//	the report valid with rainfall source "failed".
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 hashes of category|lat|lon|reported_at.
// This enables idempotent upserts downstream (ON CONFLICT DO NOTHING) and
// replay safety without distributed coordination. See [generateID].
package domain
