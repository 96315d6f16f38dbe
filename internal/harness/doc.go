// Package harness provides a scenario-driven conformance framework for
// replica divergence analysis.
//
// A scenario is a YAML file naming a set of replicas, the ordered event
// feed for each, and the expected sync-group partition. The harness runs
// each scenario against real SQLite stores in a scratch directory - no
// fakes in the fingerprint path - then checks the network report against
// the scenario's expectations and, optionally, a goldie golden snapshot.
//
// Scenarios are reproducible by construction: fingerprints depend only on
// sequence numbers and payloads, never on insertion time, so the same
// feeds always produce the same roots and the same report.
package harness
