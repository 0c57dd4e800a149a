package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"recess-server/protocol"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 120 // clients send input at ~60/s plus control traffic
)

// Client represents a WebSocket connection scoped to one room
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	playerID   string
	roomCode   string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client with a fresh player id
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr, roomCode string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		playerID:   GenerateID(4),
		roomCode:   roomCode,
		remoteAddr: remoteAddr,
	}
}

// Close tears down the underlying connection; the read pump handles cleanup
func (c *Client) Close() {
	c.conn.Close()
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
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
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes to the client, dropping the message if
// the client is too slow to keep up
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
	}
}

// handleMessage routes an inbound message to the client's room. Malformed
// messages are silently discarded.
func (c *Client) handleMessage(raw []byte) {
	var msg protocol.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return
	}

	room := c.hub.rooms.Get(c.roomCode)
	if room == nil {
		return
	}

	switch msg.Type {
	case protocol.MsgSelectRole:
		room.HandleSelectRole(c.playerID, msg.Role)
	case protocol.MsgStart:
		room.HandleStart(c.playerID)
	case protocol.MsgInput:
		var input protocol.InputPayload
		if err := json.Unmarshal(msg.Input, &input); err != nil {
			return
		}
		room.HandleInput(c.playerID, input)
	case protocol.MsgRestart:
		room.HandleRestart(c.playerID)
	}
}
