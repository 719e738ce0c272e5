package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/campushub/campushub-BE/internal/ws"
)

var upgrader = ws.Upgrader()

// @Summary		Attach a live notification session
// @Description	Upgrades the connection to a WebSocket and registers it as a live session for the authenticated user. Persisted notifications are pushed as {"type":"notification","data":{...}} frames.
// @Tags			notifications
// @Param			token	query		string	true	"Access token"
// @Success		101		{string}	string	"Switching Protocols"
// @Failure		401		{object}	object
// @Router			/ws [get]
func (server *Server) serveWebSocket(c *gin.Context) {
	accessToken := c.Query("token")
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, errorResponse(ErrMissingToken))
		return
	}

	payload, err := server.tokenMaker.VerifyToken(accessToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, errorResponse(err))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Warn().Err(err).Str("userID", payload.Subject).Msg("websocket upgrade failed")
		return
	}

	server.hub.Attach(conn, payload.Subject)
}
