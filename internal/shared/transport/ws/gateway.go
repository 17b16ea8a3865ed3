package ws

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"IslandKingdoms/internal/shared/observer"
	"IslandKingdoms/internal/shared/security"
	"IslandKingdoms/modules/kit/logx"
)

// 客户端可订阅的快照集合。
var pushableCollections = map[string]bool{
	"city":        true,
	"movement":    true,
	"trade_offer": true,
	"alliance":    true,
	"world":       true,
	"slot":        true,
}

// Gateway 把核心的快照事件流转发给浏览器客户端。
// 核心只对 observer.Hub 发布，完全不感知这里有没有连接挂着。
type Gateway struct {
	hub      *observer.Hub
	upgrader websocket.Upgrader
	log      logx.Logger
}

func NewGateway(hub *observer.Hub, log logx.Logger) *Gateway {
	return &Gateway{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 跨域由接入层统一管控。
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Handle 升级连接并按 collections 参数订阅快照流。
// 浏览器的 WebSocket 不能带 Authorization 头，token 走查询参数。
func (g *Gateway) Handle(c *gin.Context) {
	token := c.Query("token")
	claims, err := security.ParseToken(token)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	collections := parseCollections(c.Query("collections"))
	if len(collections) == 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	wsConn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.log.Error("ws upgrade", zap.Error(err))
		return
	}

	conn := NewConn(wsConn, g.log)
	conn.Run()

	sub := &connSubscriber{conn: conn}
	cancels := make([]func(), 0, len(collections))
	for _, col := range collections {
		cancels = append(cancels, g.hub.Subscribe(col, sub))
	}
	g.log.Info("ws client subscribed",
		zap.Int64("player_id", claims.PlayerID),
		zap.Strings("collections", collections))

	go func() {
		<-conn.Done()
		for _, cancel := range cancels {
			cancel()
		}
	}()
}

type connSubscriber struct {
	conn *Conn
}

func (s *connSubscriber) OnSnapshot(ev observer.Event) {
	ok := s.conn.Push(&Frame{
		Collection: ev.Collection,
		DocID:      ev.DocID,
		Data:       ev.Data,
	})
	if !ok {
		s.conn.Close()
	}
}

func parseCollections(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if pushableCollections[name] {
			out = append(out, name)
		}
	}
	return out
}
