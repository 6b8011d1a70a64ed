package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fastprodman/billionspend/internal/services/game"
)

// NewServer creates and returns a configured *http.Server for the game API.
// WriteTimeout stays unset: /ws connections are long lived and manage their
// own write deadlines.
func NewServer(port uint16, g *game.Game) *http.Server {
	mux := NewRouter(g)

	addr := fmt.Sprintf(":%d", port)

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
