package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/snooker/internal/game"
	"github.com/playmatatu/snooker/internal/physics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 65536
	commandTimeout = 5 * time.Second
)

// Client is one connected renderer.
type Client struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	runner *game.Runner
	send   chan []byte
}

// Handler upgrades the request and attaches the connection to the table.
func Handler(hub *Hub, runner *game.Runner, checkOrigin func(r *http.Request) bool) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			id:     hub.newClientID(),
			conn:   conn,
			hub:    hub,
			runner: runner,
			send:   make(chan []byte, 256),
		}
		if !hub.add(client) {
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
		client.sendState()
	}
}

// readPump reads gesture messages until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close for client %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for client %s: %v", c.id, err)
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case MsgPing:
		c.sendJSON(OutMessage{Type: MsgPong})
		return
	case MsgPointerDown, MsgPointerMove, MsgPointerUp, MsgPlaceCueBall:
	default:
		c.sendError("Unknown message type")
		return
	}

	var data PointerData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError("Invalid pointer data")
		return
	}
	p := physics.Vec2{data.X, data.Y}

	var placeErr error
	err := c.do(func(s *game.Session) {
		switch msg.Type {
		case MsgPointerDown:
			s.PointerDown(p)
		case MsgPointerMove:
			s.PointerMove(p)
		case MsgPointerUp:
			s.PointerUp(p)
		case MsgPlaceCueBall:
			placeErr = s.PlaceCueBall(p)
		}
	})
	if err != nil {
		log.Printf("[WS] Command %s failed for client %s: %v", msg.Type, c.id, err)
		c.sendError("Table unavailable")
		return
	}
	if placeErr != nil {
		c.sendError(placeErr.Error())
	}
}

func (c *Client) do(fn func(*game.Session)) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	return c.runner.Do(ctx, fn)
}

// sendState sends the current snapshot to this client only.
func (c *Client) sendState() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	snap, err := c.runner.Snapshot(ctx)
	if err != nil {
		c.sendError("Table unavailable")
		return
	}
	c.sendJSON(OutMessage{Type: MsgState, Data: snap})
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendJSON(OutMessage{Type: MsgError, Message: message})
}

func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	c.hub.sendTo(c, data)
}
