// Package repositories implements SQLite persistence for the reference voting server.
//
// Key Implementations:
//   - [SongRepository] : the song pool, vote recording and leaderboard ordering
//
// Sequence numbers provide stable insertion ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
