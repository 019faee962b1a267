// Package spectate streams the event log of every round to websocket subscribers.
//
// Each batch of frames the game appends is forwarded as one binary message laid out like a
// server datagram: the game id followed by the frames. A subscriber joining mid-round first
// receives everything logged so far in that round, NEW_GAME included. Subscribers that fall
// behind lose messages instead of slowing the game down.
package spectate

import (
	"net/http"
	"sync"
	"time"

	"kurve/internal/pkg/codec"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

const (
	// DefaultBacklog is the number of messages buffered per subscriber.
	DefaultBacklog = 64
	writeTimeout   = 5 * time.Second
	readTimeout    = 60 * time.Second
	pingPeriod     = readTimeout * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type subscriber struct {
	id   uuid.UUID
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans observed frames out to its subscribers. It is safe for concurrent use.
type Hub struct {
	mu          sync.Mutex
	backlog     int
	subscribers map[uuid.UUID]*subscriber
	// history holds the frames of the round being observed.
	gameID  uint32
	history []byte
}

// NewHub creates a Hub buffering backlog messages per subscriber.
func NewHub(backlog int) *Hub {
	if backlog <= 0 {
		backlog = DefaultBacklog
	}
	return &Hub{
		backlog:     backlog,
		subscribers: make(map[uuid.UUID]*subscriber),
	}
}

// Len returns the number of subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Observe implements game.Observer.
func (h *Hub) Observe(gameID uint32, frames []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if f, err := codec.DecodeFrame(frames, 0); gameID != h.gameID || (err == nil && f.EventNo == 0) {
		h.history = h.history[:0]
	}
	h.gameID = gameID
	h.history = append(h.history, frames...)

	msg := message(gameID, frames)
	for _, s := range h.subscribers {
		select {
		case s.send <- msg:
		default:
			logger.WithField("subscriber", s.id.String()).Debug("spectator lagging, dropping frames")
		}
	}
}

func message(gameID uint32, frames []byte) []byte {
	msg := make([]byte, 0, codec.GameIDSize+len(frames))
	msg = codec.AppendUint32(msg, gameID)
	return append(msg, frames...)
}

// ServeHTTP upgrades the request to a websocket and subscribes it until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("spectator upgrade failed")
		return
	}
	s := &subscriber{
		id:   uuid.New(),
		ws:   ws,
		send: make(chan []byte, h.backlog),
	}
	h.mu.Lock()
	if len(h.history) > 0 {
		s.send <- message(h.gameID, h.history)
	}
	h.subscribers[s.id] = s
	h.mu.Unlock()
	logger.WithField("subscriber", s.id.String()).Info("spectator joined")

	go s.writePump()
	s.readPump()

	h.mu.Lock()
	delete(h.subscribers, s.id)
	close(s.send)
	h.mu.Unlock()
	logger.WithField("subscriber", s.id.String()).Info("spectator left")
}

// writePump writes queued messages and keepalive pings until the send channel is closed
// or a write fails.
func (s *subscriber) writePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	defer s.ws.Close()
	for {
		select {
		case msg, ok := <-s.send:
			if !ok {
				_ = s.ws.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeTimeout))
				return
			}
			if err := s.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				return
			}
			if err := s.ws.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				logger.WithError(errors.Wrap(err, "write spectator message failed")).
					WithField("subscriber", s.id.String()).Debug("dropping spectator")
				return
			}
		case <-ping.C:
			if err := s.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound messages and returns once the peer goes away.
func (s *subscriber) readPump() {
	defer s.ws.Close()
	s.ws.SetReadLimit(512)
	_ = s.ws.SetReadDeadline(time.Now().Add(readTimeout))
	s.ws.SetPongHandler(func(string) error {
		return s.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		if _, _, err := s.ws.ReadMessage(); err != nil {
			return
		}
	}
}
