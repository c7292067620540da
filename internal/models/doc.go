// Package models defines the wire schemas and persistent entities for the versus voting service.
//
// The package contains two categories of types:
//
// 1. Wire schemas: the request and response bodies exchanged with the voting API
//   - [Song] : a song in the pool with its win/appearance counters
//   - [Pair] : the two song names currently offered for a vote, encoded as a JSON array
//   - [LeaderboardRow] : a ranked row; array position is the rank
//   - [AddSongRequest], [VoteRequest], [ErrorResponse] : request bodies and the error envelope
//
// 2. Persistent entities: database-backed models used by the reference server
//   - [PersistedSong] : a song row with identity, timestamps and counters
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
