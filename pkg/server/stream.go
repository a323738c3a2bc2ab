package server

import (
	"context"
	"net/http"
	"time"
)

// handleStream upgrades the connection and pushes a freshly sampled
// snapshot at the stream interval until the client disconnects. Each
// connection runs its own collection pipeline; nothing is shared between
// subscribers.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Drain the read side so close frames are processed; any read error
	// means the client is gone.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	for {
		snap := s.sampler.Sample(ctx)
		if ctx.Err() != nil {
			return
		}
		if err := conn.WriteJSON(snap); err != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
