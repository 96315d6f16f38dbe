// Package ledger provides the SQLite-backed append-only record store that
// replicas fingerprint.
//
// The store is a single records table ordered by an autoincrement sequence
// number. Records are never updated or deleted; the only write path is
// Append, and reads always return records in sequence order. Each record
// carries the wall-clock insertion time and a SHA-256 content hash of its
// payload for integrity checks. Neither field participates in ledger
// fingerprints (see internal/fingerprint), so two stores fed the same
// payloads in the same order are fingerprint-identical regardless of when
// the rows landed.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package ledger
