// handlers/live.go - live battle scoreboard over WebSocket
package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

const (
	writeWait = 10 * time.Second // Time allowed to write a message
)

// FeedMessage is one frame of the live feed.
type FeedMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// RequireWebSocket rejects plain HTTP requests on WebSocket routes.
func RequireWebSocket(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// BattleLiveFeed pushes the crew's battle view on connect and then every liveFeedInterval,
// until the client goes away.
// GET /ws/battles/:crew_id
var BattleLiveFeed = websocket.New(func(conn *websocket.Conn) {
	defer conn.Close()

	crewID, err := strconv.ParseUint(conn.Params("crew_id"), 10, 32)
	if err != nil || crewID == 0 {
		writeFrame(conn, FeedMessage{Type: "error", Payload: "Invalid crew_id"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reads only serve to notice the close frame.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug().Uint64("crew_id", crewID).Msg("live battle feed opened")

	ticker := time.NewTicker(liveFeedInterval)
	defer ticker.Stop()

	for {
		if !pushBattleStatus(ctx, conn, uint(crewID)) {
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			log.Debug().Uint64("crew_id", crewID).Msg("live battle feed closed")
			return
		}
	}
})

func pushBattleStatus(ctx context.Context, conn *websocket.Conn, crewID uint) bool {
	status, err := battleService.GetBattleStatus(ctx, crewID)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		log.Warn().Err(err).Uint("crew_id", crewID).Msg("live battle status failed")
		return writeFrame(conn, FeedMessage{Type: "error", Payload: err.Error()})
	}
	return writeFrame(conn, FeedMessage{Type: "battle_status", Payload: status})
}

func writeFrame(conn *websocket.Conn, msg FeedMessage) bool {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return false
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Debug().Err(err).Msg("live feed write failed")
		return false
	}
	return true
}
