// Package websocket mirrors the board to remote panel displays. A Hub is a
// game.Renderer: every tile render is broadcast as JSON to all connected
// clients, and clients joining mid-game are sent the whole board first.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/pisweep/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	clientBufferSize = 256
)

const (
	EventBoard = "board"
	EventTile  = "tile"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Panels live on the local network
		return true
	},
}

// Message is what clients receive. Board messages carry every tile, in tile
// order; tile messages carry a single render.
type Message struct {
	Event string         `json:"event"`
	Tile  int            `json:"tile,omitempty"`
	Image game.ImageID   `json:"image,omitempty"`
	Tiles []game.ImageID `json:"tiles,omitempty"`
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	Logger log.FieldLogger

	// Latest image of every tile, owned by Run
	tiles   []game.ImageID
	clients map[*Client]bool

	renders    chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(numTiles int) *Hub {
	hub := &Hub{
		Logger:     log.StandardLogger(),
		tiles:      make([]game.ImageID, numTiles),
		clients:    make(map[*Client]bool),
		renders:    make(chan Message, 4*numTiles),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	for i := range hub.tiles {
		hub.tiles[i] = game.ImageBlank
	}
	return hub
}

// Run owns the hub's clients and tile cache until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.removeClient(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.Logger.WithField("clients", len(h.clients)).Info("Panel client connected")
			if data, ok := h.encode(Message{Event: EventBoard, Tiles: h.tiles}); ok {
				h.sendTo(client, data)
			}

		case client := <-h.unregister:
			if h.clients[client] {
				h.removeClient(client)
				h.Logger.WithField("clients", len(h.clients)).Info("Panel client disconnected")
			}

		case message := <-h.renders:
			h.tiles[message.Tile-1] = message.Image
			h.broadcast(message)
		}
	}
}

// Render queues a tile update for every client. Out of range tiles are reported
// and dropped.
func (h *Hub) Render(tileIndex int, image game.ImageID) {
	if tileIndex < 1 || tileIndex > len(h.tiles) {
		h.Logger.WithFields(log.Fields{
			"tile":  tileIndex,
			"image": image,
		}).Warn("Invalid tile")
		return
	}

	select {
	case h.renders <- Message{Event: EventTile, Tile: tileIndex, Image: image}:
	case <-h.done:
	}
}

// ServeWS upgrades a panel's HTTP connection and registers it with the hub
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, clientBufferSize),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// broadcast encodes the message once and queues the same bytes for every client
func (h *Hub) broadcast(message Message) {
	data, ok := h.encode(message)
	if !ok {
		return
	}
	for client := range h.clients {
		h.sendTo(client, data)
	}
}

func (h *Hub) encode(message Message) ([]byte, bool) {
	data, err := json.Marshal(message)
	if err != nil {
		h.Logger.WithError(err).Error("Failed to marshal panel message")
		return nil, false
	}
	return data, true
}

func (h *Hub) sendTo(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		// Client's send channel is full, drop it
		h.removeClient(client)
	}
}

func (h *Hub) removeClient(client *Client) {
	if h.clients[client] {
		delete(h.clients, client)
		close(client.send)
	}
}

// readPump discards anything panels send, but notices when they go away
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.Logger.WithError(err).Warn("Panel connection error")
			}
			return
		}
	}
}

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
				// The hub closed the channel
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
