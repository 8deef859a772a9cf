package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"haulcentral/internal/models"
)

const (
	readLimit     = 4 << 10
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
	feedBuffer    = 64
)

// FeedEventConnected greets a socket once the hub has registered it.
const FeedEventConnected = "connected"

type BoardEvent struct {
	Type string       `json:"type"`
	Load *models.Load `json:"load,omitempty"`
}

type boardClient struct {
	userID string
	conn   *websocket.Conn
	done   chan struct{}
}

// BoardHub pushes load board changes to connected sockets. Run owns the
// client set; everything else talks to it through channels.
type BoardHub struct {
	clients    map[*boardClient]struct{}
	register   chan *boardClient
	unregister chan *boardClient
	broadcast  chan BoardEvent
	stopped    chan struct{}
	errorLog   *log.Logger
}

func NewBoardHub(errorLog *log.Logger) *BoardHub {
	return &BoardHub{
		clients:    make(map[*boardClient]struct{}),
		register:   make(chan *boardClient),
		unregister: make(chan *boardClient),
		broadcast:  make(chan BoardEvent, feedBuffer),
		stopped:    make(chan struct{}),
		errorLog:   errorLog,
	}
}

func (h *BoardHub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c, websocket.CloseGoingAway, "server shutting down")
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.send(c, BoardEvent{Type: FeedEventConnected})

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c, websocket.CloseNormalClosure, "")
			}

		case ev := <-h.broadcast:
			for c := range h.clients {
				h.send(c, ev)
			}
		}
	}
}

// BroadcastLoad queues a load event. It never blocks the caller; when the
// queue is full the event is dropped and clients catch up on their next
// board fetch.
func (h *BoardHub) BroadcastLoad(event string, load models.Load) {
	ev := BoardEvent{Type: event, Load: &load}
	select {
	case h.broadcast <- ev:
	default:
		h.errorLog.Printf("board feed full, dropping %s for load %s", event, load.ID)
	}
}

func (h *BoardHub) send(c *boardClient, ev BoardEvent) {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	if err := c.conn.WriteJSON(ev); err != nil {
		h.errorLog.Printf("board feed write to user=%s: %v", c.userID, err)
		h.drop(c, websocket.CloseGoingAway, "write error")
	}
}

func (h *BoardHub) drop(c *boardClient, code int, reason string) {
	delete(h.clients, c)
	close(c.done)
	if reason != "" {
		_ = writeClose(c.conn, code, reason)
	}
	_ = c.conn.Close()
}

func (h *BoardHub) leave(c *boardClient) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
}

// boardSocket upgrades an authenticated request (access token in the token
// query parameter) to a board feed subscription.
func (app *application) boardSocket(w http.ResponseWriter, r *http.Request) {
	claims, err := app.tokens.Parse(r.URL.Query().Get("token"))
	if err != nil {
		app.clientError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("board socket upgrade: %v", err)
		return
	}
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	c := &boardClient{userID: claims.UserID, conn: conn, done: make(chan struct{})}
	select {
	case app.boardHub.register <- c:
	case <-app.boardHub.stopped:
		_ = writeClose(conn, websocket.CloseGoingAway, "server shutting down")
		_ = conn.Close()
		return
	}

	go pingLoop(app.boardHub, c)
	go readLoop(app.boardHub, c)
}

// readLoop discards inbound frames; it exists to process control frames and
// notice when the peer goes away.
func readLoop(h *BoardHub, c *boardClient) {
	defer h.leave(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(h *BoardHub, c *boardClient) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				h.leave(c)
				return
			}
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
