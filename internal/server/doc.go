// Package server provides the reference HTTP backend for the voting API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /api/songs"),
// so unmatched methods get a 405 from the mux itself.
//
// # Voting Handler
//
// [VotingHandler] serves the song pool, pair, vote and leaderboard endpoints on top of a [SongStore].
// Errors are JSON bodies of the form {"detail": "..."}.
//
// Pairs are drawn at random, weighted toward songs with fewer appearances so that new songs catch up.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
