package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 2048
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Доступ уже проверен по API-ключу
	CheckOrigin: func(r *http.Request) bool { return true },
}

// IncomingMessage - сообщение от клиента WebSocket
type IncomingMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// OutgoingMessage - служебный ответ клиенту (события топика передаются как есть)
type OutgoingMessage struct {
	Type    string `json:"type"`
	Applied *bool  `json:"applied,omitempty"`
	Error   string `json:"error,omitempty"`
}

// @Summary Subscribe to real-time events
// @Description Upgrades to WebSocket and streams events of one topic: officer:{id}, dispatch:broadcast or reporter:{id}.
// @Description Subscribers of their own officer topic may send location_update messages.
// @Tags Realtime
// @Security ApiKeyAuth
// @Param topic query string true "Topic"
// @Success 101 "Switching Protocols"
// @Failure 400 {object} map[string]string "Unknown topic"
// @Failure 403 {object} map[string]string "Officer topic of another officer"
// @Router /ws [get]
func (h *Handler) subscribe(c *gin.Context) {
	topic := c.Query("topic")
	log := h.logger.WithFields(logrus.Fields{"method": "subscribe", "topic": topic})

	if !fanout.ValidTopic(topic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown topic"})
		return
	}
	officerID, isOfficerTopic := strings.CutPrefix(topic, "officer:")
	if isOfficerTopic && !authorizeOfficer(c, officerID) {
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub, err := h.transport.Subscribe(ctx, topic)
	if err != nil {
		log.WithError(err).Error("Failed to subscribe to topic")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "event transport unavailable"})
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &wsClient{
		handler: h,
		conn:    conn,
		sub:     sub,
		replies: make(chan OutgoingMessage, 16),
		log:     log,
	}
	if isOfficerTopic {
		client.officerID = officerID
	}

	log.Info("WebSocket subscriber connected")
	go client.writePump(ctx)
	client.readPump(ctx)
	log.Info("WebSocket subscriber disconnected")
}

// wsClient связывает соединение WebSocket с подпиской на топик
type wsClient struct {
	handler   *Handler
	conn      *websocket.Conn
	sub       fanout.Subscription
	officerID string
	replies   chan OutgoingMessage
	log       *logrus.Entry
}

// readPump читает сообщения клиента до разрыва соединения
func (c *wsClient) readPump(ctx context.Context) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.reply(OutgoingMessage{Type: "error", Error: "invalid message format"})
			continue
		}

		switch msg.Type {
		case "ping":
			c.reply(OutgoingMessage{Type: "pong"})
		case "location_update":
			c.handleLocationUpdate(ctx, msg.Data)
		default:
			c.reply(OutgoingMessage{Type: "error", Error: "unsupported message type"})
		}
	}
}

// handleLocationUpdate принимает позицию офицера, подписанного на свой топик
func (c *wsClient) handleLocationUpdate(ctx context.Context, data json.RawMessage) {
	if c.officerID == "" {
		c.reply(OutgoingMessage{Type: "error", Error: "location updates require an officer topic"})
		return
	}

	var input UpdateLocationRequest
	if err := json.Unmarshal(data, &input); err != nil {
		c.reply(OutgoingMessage{Type: "error", Error: "invalid location data"})
		return
	}
	if err := c.handler.validate.Struct(&input); err != nil {
		c.reply(OutgoingMessage{Type: "error", Error: err.Error()})
		return
	}
	ts := c.handler.now()
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}

	applied, err := c.handler.dispatchService.UpdateLocation(ctx, c.officerID, *input.Latitude, *input.Longitude, ts)
	if err != nil {
		c.log.WithError(err).Warn("Location update over WebSocket rejected")
		c.reply(OutgoingMessage{Type: "error", Error: err.Error()})
		return
	}
	c.reply(OutgoingMessage{Type: "location_ack", Applied: &applied})
}

func (c *wsClient) reply(msg OutgoingMessage) {
	select {
	case c.replies <- msg:
	default:
		c.log.Warn("WebSocket reply buffer full, reply dropped")
	}
}

// writePump пересылает события топика и ответы клиенту
func (c *wsClient) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-c.sub.Messages():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Подписка закрыта транспортом
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case msg := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
