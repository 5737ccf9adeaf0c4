package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"climate-monitor/internal/infra/async"
	"climate-monitor/internal/infra/httpserver"
	"climate-monitor/internal/monitor/domain"
	"climate-monitor/internal/monitor/httpapi/internal"
	"climate-monitor/internal/monitor/usecases"

	"github.com/gorilla/websocket"
)

const (
	_pingPeriod   = 54 * time.Second
	_pongWait     = 60 * time.Second
	_writeWait    = 10 * time.Second
	_clientBuffer = 16
)

// NewReadingStreamController subscribes to the readings topic right away so
// readings published before Run starts are still streamed.
func NewReadingStreamController(broker async.InternalBroker, allowedOrigins []string) (*ReadingStreamController, error) {
	subscription, err := broker.Subscribe(usecases.ReadingsTopic)
	if err != nil {
		return nil, fmt.Errorf("stream subscribing to %s: %w", usecases.ReadingsTopic, err)
	}

	return &ReadingStreamController{
		broker:       broker,
		subscription: subscription,
		clients:      make(map[*streamClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}, nil
}

var (
	_ httpserver.Controller = (*ReadingStreamController)(nil)
	_ async.Worker          = (*ReadingStreamController)(nil)
)

// ReadingStreamController pushes every accepted reading to the connected
// websocket clients. Slow clients miss frames instead of blocking others.
type ReadingStreamController struct {
	broker       async.InternalBroker
	subscription async.Subscription
	upgrader     websocket.Upgrader

	mu      sync.Mutex
	clients map[*streamClient]struct{}
}

type streamClient struct {
	conn *websocket.Conn
	send chan internal.ReadingMessage
	once sync.Once
}

func (c *streamClient) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func (wsc *ReadingStreamController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/readings", wsc.handleWebSocket())
}

func (wsc *ReadingStreamController) Run(ctx context.Context, done func()) {
	slog.Debug("reading stream started")
	defer done()
	defer wsc.closeAll()

	defer func() {
		if err := wsc.broker.Unsubscribe(usecases.ReadingsTopic, wsc.subscription); err != nil {
			slog.Error("failed to unsubscribe from readings", slog.Any("error", err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-wsc.subscription.Receiver:
			if !ok {
				return
			}
			if evaluation, isEvaluation := msg.Value.(domain.Evaluation); isEvaluation && msg.Event == usecases.EventReadingAccepted {
				wsc.broadcast(internal.ReadingMessage{Type: "reading", Data: internal.FromEvaluation(evaluation)})
			}
		}
	}
}

func (wsc *ReadingStreamController) Shutdown() {
	slog.Info("reading stream shutdown")
	wsc.closeAll()
}

// Clients returns the number of connected clients.
func (wsc *ReadingStreamController) Clients() int {
	wsc.mu.Lock()
	defer wsc.mu.Unlock()
	return len(wsc.clients)
}

func (wsc *ReadingStreamController) broadcast(msg internal.ReadingMessage) {
	wsc.mu.Lock()
	defer wsc.mu.Unlock()

	for client := range wsc.clients {
		select {
		case client.send <- msg:
		default:
			slog.Warn("dropping frame for slow websocket client", slog.String("remote_addr", client.conn.RemoteAddr().String()))
		}
	}
}

func (wsc *ReadingStreamController) closeAll() {
	wsc.mu.Lock()
	defer wsc.mu.Unlock()

	for client := range wsc.clients {
		client.close()
		delete(wsc.clients, client)
	}
}

func (wsc *ReadingStreamController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsc.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.Any("error", err))
			return
		}

		client := &streamClient{conn: conn, send: make(chan internal.ReadingMessage, _clientBuffer)}

		wsc.mu.Lock()
		wsc.clients[client] = struct{}{}
		total := len(wsc.clients)
		wsc.mu.Unlock()
		slog.Info("websocket client registered", slog.String("remote_addr", r.RemoteAddr), slog.Int("total_clients", total))

		go wsc.writePump(client)
		wsc.readPump(client)
	}
}

// readPump only drains control frames; it returns when the client goes away.
func (wsc *ReadingStreamController) readPump(client *streamClient) {
	defer func() {
		wsc.mu.Lock()
		delete(wsc.clients, client)
		total := len(wsc.clients)
		wsc.mu.Unlock()
		client.close()
		slog.Info("websocket client unregistered", slog.Int("total_clients", total))
	}()

	conn := client.conn
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(_pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.Any("error", err))
			} else {
				slog.Debug("websocket connection closed", slog.Any("error", err))
			}
			return
		}
	}
}

// writePump is the only writer of the connection.
func (wsc *ReadingStreamController) writePump(client *streamClient) {
	ticker := time.NewTicker(_pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				slog.Error("failed to write message to websocket client", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
