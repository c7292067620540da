package server

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// NewVotingRouter builds the full reference backend: default middleware, the voting API and a health check.
func NewVotingRouter(store SongStore, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(DefaultMiddleware(logger)...)
	router.Handler(NewVotingHandler(store, logger))
	router.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	return router
}
