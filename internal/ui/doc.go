// Package ui implements the interactive voting screen using bubbletea's Elm architecture.
//
// One screen shows three panes:
//  1. Songs : the pool in backend order with each song's record; x removes, a adds
//  2. Vote : the current pair; h/← votes left, l/→ votes right
//  3. Leaderboard : ranked rows as fetched; r reloads it
//
// The [Model] implements Init/Update/View and receives results via the [Msg] union type.
// Network calls run inside commands. Every load carries a per-view generation and results older
// than the newest applied one are dropped, so a slow response never overwrites a newer one.
//
// Failed mutations raise a modal alert that swallows keys until dismissed with enter, esc or space.
package ui
