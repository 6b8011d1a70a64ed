package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	SourceGame     = "game"
	SourceStats    = "stats"
	SourceSettings = "settings"

	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type changeEvent struct {
	Source string `json:"source"`
}

// changeQueue remembers which sources changed since the last send. Marking
// never blocks, repeated changes of one source collapse into one event.
type changeQueue struct {
	mu      sync.Mutex
	pending []string
	signal  chan struct{}
}

func newChangeQueue() *changeQueue {
	return &changeQueue{signal: make(chan struct{}, 1)}
}

func (q *changeQueue) mark(source string) {
	q.mu.Lock()

	for _, s := range q.pending {
		if s == source {
			q.mu.Unlock()
			return
		}
	}

	q.pending = append(q.pending, source)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

func (q *changeQueue) take() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = nil

	return out
}

// ChangesHandler handles GET /ws. Every connection gets one message per
// change of the game state, the statistics or the settings.
func (h *HandlerProvider) ChangesHandler(w http.ResponseWriter, r *http.Request) {
	q := newChangeQueue()

	// subscribe before the handshake completes so no change after it is missed

	unsubs := []func(){
		h.g.Ledger.Subscribe(func() { q.mark(SourceGame) }),
		h.g.Stats.Subscribe(func() { q.mark(SourceStats) }),
		h.g.Settings.Subscribe(func() { q.mark(SourceSettings) }),
	}

	defer func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	slog.Debug("websocket client connected", "remote", r.RemoteAddr)

	closed := make(chan struct{})

	go readUntilClosed(conn, closed)

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			slog.Debug("websocket client disconnected", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case <-ping.C:
			err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
			if err != nil {
				return
			}
		case <-q.signal:
			for _, source := range q.take() {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))

				err = conn.WriteJSON(changeEvent{Source: source})
				if err != nil {
					slog.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}

// readUntilClosed discards client messages so control frames get handled,
// and closes done once the connection is gone.
func readUntilClosed(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			return
		}
	}
}
