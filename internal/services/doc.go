// Package services implements the HTTP gateway to the versus voting API.
//
// # Gateway
//
// [Gateway] is the single place where network calls are made. [Gateway.Request] sends an optional JSON body,
// reads the response and tries to parse it as JSON whatever the status code. A body that is not JSON is
// treated as an empty object, so a failing response never surfaces a parse error.
//
// # Error Handling
//
// Non-2xx responses and transport failures are normalized into [RequestError]. Its message is, in order:
//   - the "detail" field of the response body
//   - the transport status text (e.g. "Not Found")
//   - the transport error for requests that never got a response
//
// errors.Is(err, [shared.ErrAPIRequest]) holds for every RequestError.
//
// # Voting API
//
// [VotingService] implements [VotingAPI] on top of the gateway with typed request and response schemas
// from the models package:
//
//	GET    /api/songs          → []models.Song
//	POST   /api/songs          ← models.AddSongRequest
//	DELETE /api/songs/{name}   (name percent-encoded)
//	GET    /api/pair           → models.Pair
//	POST   /api/vote           ← models.VoteRequest
//	GET    /api/leaderboard    → []models.LeaderboardRow
package services
