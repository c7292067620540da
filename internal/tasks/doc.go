// Package tasks orchestrates multi-request operations against the voting API with progress reporting.
//
// # Core Operations
//
//  1. [Refresher.RefreshAll] : Reload every view
//     - Fetches songs, the next pair and the leaderboard concurrently
//     - Waits for all three to settle; one failure never cancels the others
//     - Returns a [Snapshot] carrying each result and its own error
//
//  2. [Importer.Import] : Bulk-add songs
//     - Trims names and skips blanks
//     - Adds the rest through a rate limited worker pool
//     - Collects per-name failures instead of aborting
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data.
// Updates use select with default to prevent blocking.
package tasks
