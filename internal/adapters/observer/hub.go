package observer

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/homestead-go/internal/domain/event"
)

const (
	writeWait  = 5 * time.Second
	readWait   = 60 * time.Second
	sendBuffer = 256
)

type subscriber struct {
	id      uint64
	actor   string
	houseID *int64
	out     chan []byte
}

func (s *subscriber) wants(e *event.Event) bool {
	if s.actor != "" && s.actor != e.Actor {
		return false
	}
	if s.houseID != nil && (e.HouseID == nil || *e.HouseID != *s.houseID) {
		return false
	}
	return true
}

// Hub fans committed events out to websocket observers. A slow observer loses events
// rather than stalling the game.
type Hub struct {
	upgrader websocket.Upgrader
	nextID   atomic.Uint64
	onChange func(n int)

	mu   sync.RWMutex
	subs map[uint64]*subscriber
}

var _ event.Publisher = (*Hub)(nil)

// NewHub creates a hub. onChange, if set, receives the observer count whenever it changes.
func NewHub(onChange func(n int)) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		onChange: onChange,
		subs:     make(map[uint64]*subscriber),
	}
}

// Count returns the number of connected observers
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Publish queues each event as one JSON text message for every matching observer
func (h *Hub) Publish(_ context.Context, events []*event.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.subs) == 0 {
		return nil
	}

	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		for _, s := range h.subs {
			if !s.wants(e) {
				continue
			}
			select {
			case s.out <- b:
			default:
			}
		}
	}
	return nil
}

// Handler upgrades the request to a websocket and streams events until the peer goes away.
// The optional actor and house query parameters narrow the stream.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		sub := &subscriber{actor: r.URL.Query().Get("actor"), out: make(chan []byte, sendBuffer)}
		if raw := r.URL.Query().Get("house"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(rw, "invalid house id", http.StatusBadRequest)
				return
			}
			sub.houseID = &id
		}

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		h.add(sub)
		defer h.remove(sub)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		writeErr := make(chan error, 1)
		go func() {
			for {
				select {
				case <-ctx.Done():
					writeErr <- ctx.Err()
					return
				case b := <-sub.out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						writeErr <- err
						return
					}
				}
			}
		}()

		// Observers only listen; reading detects the close.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		cancel()
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		select {
		case <-writeErr:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (h *Hub) add(s *subscriber) {
	s.id = h.nextID.Add(1)
	h.mu.Lock()
	h.subs[s.id] = s
	n := len(h.subs)
	h.mu.Unlock()
	h.changed(n)
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	delete(h.subs, s.id)
	n := len(h.subs)
	h.mu.Unlock()
	h.changed(n)
}

func (h *Hub) changed(n int) {
	if h.onChange != nil {
		h.onChange(n)
	}
}
