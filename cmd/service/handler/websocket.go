package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	v1 "github.com/Liunian06/LNChat-sub000/app/logic/v1"
	"github.com/Liunian06/LNChat-sub000/app/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatSessionWebsocket 订阅单个会话的消息事件流
func (s *HttpSrv) ChatSessionWebsocket(c *gin.Context) {
	sessionID, _ := c.Params.Get("session")
	if _, err := v1.NewChatLogic(c, s.Core).GetSession(sessionID); err != nil {
		response.APIError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", slog.String("session_id", sessionID), slog.String("error", err.Error()))
		return
	}

	client := s.Core.Hub().Subscribe(sessionID, conn)

	// 读循环只用于感知断开，客户端不经ws上行业务数据
	go func() {
		defer s.Core.Hub().Unsubscribe(sessionID, client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
