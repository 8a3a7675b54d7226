// Package domain models ozone observation records flowing through the ETL.
//
// # Source Records
//
// Each message on the source topic is a flat JSON object:
//
//	{"id":"obs-1","lat":31.02,"lon":-98.44,"timestamp":"2024-04-26"}
//	{"id":"obs-2","location":"Austin","state":"TX","timestamp":"April 26, 2024"}
//
// lat and lon are optional but must appear together. When they are missing
// the record needs a place name so it can be forward geocoded.
//
// timestamp is free-form text parsed by [ozone.ParseTimestamp]. Zone-less
// text is read as UTC. An empty timestamp falls back to the Kafka message time.
// Only the calendar day matters to the model: the day-of-year is its sole
// seasonal input.
//
// # Enrichment
//
// [EstimateOzone] evaluates the van Heuklon (1979) model and tags the reading
// with its hemisphere ("northern" for latitude >= 0, "southern" otherwise).
// Coordinates outside [-90, 90] x [-180, 180] are rejected so the pipeline can
// skip the message instead of publishing a meaningless value.
//
// # ID Generation
//
// Records without an id receive a deterministic SHA-256 hash of
// lat|lon|date, which keeps replays idempotent downstream. See [generateID].
package domain
