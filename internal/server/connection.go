package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexpath/internal/gamemap"
	"github.com/gravitas-games/hexpath/internal/metrics"
	"github.com/gravitas-games/hexpath/internal/network"
	"github.com/gravitas-games/hexpath/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to an authenticated client
type Connection struct {
	ws      *websocket.Conn
	server  *Server
	session *Session
	client  *models.Client

	// Buffered channel for outbound messages; never closed, writePump
	// exits on done instead
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

// NewConnection creates a new connection for an authenticated client
func NewConnection(ws *websocket.Conn, server *Server, client *models.Client) *Connection {
	return &Connection{
		ws:      ws,
		server:  server,
		session: server.session,
		client:  client,
		send:    make(chan []byte, 256),
		done:    make(chan struct{}),
	}
}

// Handle manages the connection lifecycle; it returns once the peer is gone
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection to the handlers
func (c *Connection) readPump() {
	defer c.Close()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("", network.ErrCodeInvalidMessage, "Failed to parse message")
			metrics.MessagesTotal.WithLabelValues("invalid", "error").Inc()
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case <-c.server.ctx.Done():
			return
		}
	}
}

// handleMessage routes messages to the appropriate handler and records the
// outcome
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	var err error
	switch msg.Type {
	case network.MsgTypePing:
		c.reply(msg, network.MsgTypePong, map[string]interface{}{"timestamp": time.Now().Unix()})

	case network.MsgTypeFindPath:
		err = c.handleFindPath(msg)

	case network.MsgTypeDistance:
		err = c.handleDistance(msg)

	case network.MsgTypeNeighbors:
		err = c.handleNeighbors(msg)

	case network.MsgTypeSetTerrain:
		err = c.handleSetTerrain(msg)

	case network.MsgTypeMapInfo:
		c.reply(msg, network.MsgTypeMapInfoResult, c.session.MapInfo())

	default:
		log.Printf("Unknown message type from %s: %s", c.client.Username, msg.Type)
		c.SendError(msg.ID, network.ErrCodeUnknownType, "Unknown message type")
		metrics.MessagesTotal.WithLabelValues("unknown", "error").Inc()
		return
	}

	status := "ok"
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		status = "error"
		c.SendError(msg.ID, reqErr.code, reqErr.msg)
	}
	metrics.MessagesTotal.WithLabelValues(msg.Type, status).Inc()
}

// requestError is a client-facing failure
type requestError struct {
	code string
	msg  string
}

func (e *requestError) Error() string { return e.code + ": " + e.msg }

func badPayload(err error) error {
	return &requestError{network.ErrCodeInvalidPayload, fmt.Sprintf("Invalid payload: %v", err)}
}

func decode(msg *network.ClientMessage, v interface{}) error {
	if len(msg.Payload) == 0 {
		return badPayload(errors.New("missing payload"))
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return badPayload(err)
	}
	return nil
}

func (c *Connection) handleFindPath(msg *network.ClientMessage) error {
	var req network.FindPathPayload
	if err := decode(msg, &req); err != nil {
		return err
	}

	began := time.Now()
	res := c.session.Map().FindPath(req.Start, req.Goal)
	metrics.SearchDuration.Observe(time.Since(began).Seconds())
	metrics.SearchExpanded.Observe(float64(res.Expanded))
	if !res.Found {
		metrics.SearchUnreachable.Inc()
	}

	c.reply(msg, network.MsgTypePathResult, network.PathResultPayload{
		Start:    req.Start,
		Goal:     req.Goal,
		Path:     res.Path,
		Cost:     res.Cost,
		Expanded: res.Expanded,
		Found:    res.Found,
	})
	return nil
}

func (c *Connection) handleDistance(msg *network.ClientMessage) error {
	var req network.DistancePayload
	if err := decode(msg, &req); err != nil {
		return err
	}
	c.reply(msg, network.MsgTypeDistanceResult, network.DistanceResultPayload{
		A:        req.A,
		B:        req.B,
		Distance: req.A.DistanceTo(req.B),
	})
	return nil
}

func (c *Connection) handleNeighbors(msg *network.ClientMessage) error {
	var req network.NeighborsPayload
	if err := decode(msg, &req); err != nil {
		return err
	}
	if req.Radius < 0 {
		return badPayload(fmt.Errorf("negative radius %d", req.Radius))
	}
	if limit := c.session.limits.MaxQueryRadius; req.Radius > limit {
		return &requestError{network.ErrCodeRadiusTooLarge, fmt.Sprintf("Radius %d exceeds limit %d", req.Radius, limit)}
	}
	c.reply(msg, network.MsgTypeNeighborsResult, network.NeighborsResultPayload{
		Center: req.Center,
		Radius: req.Radius,
		Cells:  req.Center.NeighborsWithin(req.Radius),
	})
	return nil
}

func (c *Connection) handleSetTerrain(msg *network.ClientMessage) error {
	if !c.client.CanEditMap() {
		return &requestError{network.ErrCodeNotAuthorized, "Map editing not permitted"}
	}
	var req network.SetTerrainPayload
	if err := decode(msg, &req); err != nil {
		return err
	}
	t, err := gamemap.ParseTerrain(req.Terrain)
	if err != nil {
		return &requestError{network.ErrCodeUnknownTerrain, err.Error()}
	}
	if err := c.session.Map().SetTerrain(req.Coord, t); err != nil {
		if errors.Is(err, gamemap.ErrOutOfBounds) {
			return &requestError{network.ErrCodeOutOfBounds, err.Error()}
		}
		return &requestError{network.ErrCodeInvalidPayload, err.Error()}
	}

	log.Printf("Tile %v set to %s by %s", req.Coord, t, c.client.Username)
	c.session.Broadcast(&network.ServerMessage{
		Type: network.MsgTypeTileUpdated,
		Payload: network.TileUpdatedPayload{
			Coord:     req.Coord,
			Terrain:   t.String(),
			UpdatedBy: c.client.ID,
		},
	})
	return nil
}

func (c *Connection) reply(to *network.ClientMessage, msgType string, payload interface{}) {
	c.SendMessage(&network.ServerMessage{Type: msgType, ID: to.ID, Payload: payload})
}

// SendMessage queues a message for the client; it drops the message if the
// buffer is full or the connection is closed
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case <-c.done:
	case c.send <- data:
	default:
		log.Printf("Send buffer full for %s, dropping message", c.client.Username)
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(id, code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		ID:   id,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close removes the client from the session and stops the write pump
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.session.RemoveClient(c.client.ID, c)
		close(c.done)
	})
}
