package api

import (
	"net/http"

	"LOBSim/internal/domain/models"
	xhttp "LOBSim/pkg/http"
	xlogger "LOBSim/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Stream replays a seeded snapshot run over a WebSocket, one JSON message
// per tick, then closes with a normal closure frame.
func (h *LOBEchoHandler) Stream(c echo.Context) error {
	req := &models.StreamRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.allow(c) {
		return xhttp.TooManyRequestsResponse(c, "generation rate limit exceeded")
	}

	snaps, err := h.builder.Snapshots(req.Symbol, req.N, req.Seed)
	if err != nil {
		return h.fail(c, "stream", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	for i := range snaps {
		if err := conn.WriteJSON(&snaps[i]); err != nil {
			h.logger.Debug("stream client gone", xlogger.Error(err))
			return nil
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete")
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
	return nil
}
