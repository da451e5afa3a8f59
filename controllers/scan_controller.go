package controllers

import (
	"context"
	"net/http"
	"time"

	"Gin_boardgame_lending_tool/app"
	"Gin_boardgame_lending_tool/scan"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ScanController struct{ *Srv }

func NewScanController(s *Srv) *ScanController { return &ScanController{Srv: s} }

// Scan takes an already-completed token (e.g. from a client that does its
// own key handling) and runs the automatic return pathway.
func (sc *ScanController) Scan(c *gin.Context) {
	var in struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	o := sc.Engine.ScanReturn(c.Request.Context(), in.Token)
	c.JSON(outcomeStatus(o), o)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// kiosk browsers connect from the configured origin; CORS already
	// gates the REST surface, the socket carries no credentials
	CheckOrigin: func(r *http.Request) bool { return true },
}

type keyEvent struct {
	Key         string `json:"key"`
	InTextField bool   `json:"inTextField"`
}

// ScanSocket streams raw key events from the kiosk into a per-connection
// scan session. Completed tokens run the return pathway and the outcome is
// pushed back on the same socket.
func (sc *ScanController) ScanSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sc.Log.Warn("scan ws upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// dispatch runs on the read loop goroutine, so writes are serialized
	sess := scan.NewSession(sc.Cfg.ScanIdleGap, func(token string) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		o := sc.Engine.ScanReturn(ctx, token)
		_ = conn.WriteJSON(app.H{"type": "outcome", "outcome": o})
	})

	conn.SetReadLimit(4 * 1024)
	for {
		var ev keyEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sc.Log.Warn("scan ws read", zap.Error(err))
			}
			return
		}
		sess.Key(ev.Key, ev.InTextField)
	}
}
