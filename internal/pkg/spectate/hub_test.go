package spectate

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kurve/internal/pkg/codec"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func subscribe(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)
	return ws
}

func TestObserveForwardsFrames(t *testing.T) {
	h := NewHub(0)
	ws := subscribe(t, h)
	defer ws.Close()

	h.Observe(7, []byte{0xAA, 0xBB})
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(time.Second)))
	kind, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, kind)
	require.Equal(t, []byte{0, 0, 0, 7, 0xAA, 0xBB}, msg)
}

func TestObserveDropsWhenLagging(t *testing.T) {
	h := NewHub(1)
	s := &subscriber{id: uuid.New(), send: make(chan []byte, 1)}
	h.subscribers[s.id] = s
	h.Observe(1, nil)
	h.Observe(2, nil)
	require.Len(t, s.send, 1)
	require.Equal(t, []byte{0, 0, 0, 1}, <-s.send)
}

func TestUnsubscribeOnDisconnect(t *testing.T) {
	h := NewHub(0)
	ws := subscribe(t, h)
	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestLateSubscriberReceivesRoundSoFar(t *testing.T) {
	h := NewHub(0)
	start := append(codec.EncodeFrame(0, []byte{0xA0}), codec.EncodeFrame(1, []byte{0xA1})...)
	more := codec.EncodeFrame(2, []byte{0xA2})
	h.Observe(7, start)
	h.Observe(7, more)

	ws := subscribe(t, h)
	defer ws.Close()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	want := append(codec.AppendUint32(nil, 7), start...)
	require.Equal(t, append(want, more...), msg)

	// live batches follow the replay
	h.Observe(7, codec.EncodeFrame(3, []byte{0xA3}))
	_, msg, err = ws.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, append(codec.AppendUint32(nil, 7), codec.EncodeFrame(3, []byte{0xA3})...), msg)
}

func TestHistoryResetsOnNewRound(t *testing.T) {
	h := NewHub(0)
	h.Observe(7, codec.EncodeFrame(0, []byte{0xA0}))
	h.Observe(7, codec.EncodeFrame(1, []byte{0xA1}))
	next := codec.EncodeFrame(0, []byte{0xB0})
	h.Observe(7, next)
	require.Equal(t, next, h.history)

	h.Observe(9, codec.EncodeFrame(0, []byte{0xC0}))
	require.Equal(t, uint32(9), h.gameID)
	require.Equal(t, codec.EncodeFrame(0, []byte{0xC0}), h.history)
}
