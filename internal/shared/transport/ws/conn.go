package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"IslandKingdoms/modules/kit/logx"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second

	// 推送缓冲打满说明客户端消费不动，直接断开让它重连重拉快照。
	outChanSize = 256
)

// Frame 是推给客户端的一条快照通知。
type Frame struct {
	Collection string         `json:"collection"`
	DocID      string         `json:"doc_id"`
	Data       map[string]any `json:"data,omitempty"`
}

// Conn 包装一条推送连接：带缓冲的单写协程 + 心跳。
type Conn struct {
	conn    *websocket.Conn
	outChan chan *Frame
	done    chan struct{}

	closeOnce sync.Once
	log       logx.Logger
}

func NewConn(wsConn *websocket.Conn, log logx.Logger) *Conn {
	return &Conn{
		conn:    wsConn,
		outChan: make(chan *Frame, outChanSize),
		done:    make(chan struct{}),
		log:     log,
	}
}

// Push 投递一帧。缓冲已满或连接已关时返回 false，由调用方断开。
func (c *Conn) Push(f *Frame) bool {
	select {
	case <-c.done:
		return false
	case c.outChan <- f:
		return true
	default:
		return false
	}
}

func (c *Conn) Run() {
	go c.readLoop()
	go c.writeLoop()
}

// readLoop 只为感知客户端关闭，推送通道上不接受客户端消息。
func (c *Conn) readLoop() {
	defer c.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case f := <-c.outChan:
			raw, err := json.Marshal(f)
			if err != nil {
				c.log.Error("ws marshal frame", zap.Error(err))
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		_ = c.conn.Close()
		close(c.done)
	})
}

func (c *Conn) Done() <-chan struct{} {
	return c.done
}
