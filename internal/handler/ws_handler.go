package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ghprofile/internal/app/feed"
)

// HandleWebSocket upgrades the connection and subscribes it to the profile feed.
// The handler returns when the client disconnects.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to upgrade connection to WebSocket")
			return
		}

		client := feed.NewClient(deps.Feed, conn)

		go client.WritePump()

		deps.Feed.Register(client)
		logger.Info().Str("client_id", client.ID()).Msg("Feed subscriber connected")

		client.ReadPump()
	}
}
