package client

import (
	"context"
	"net"
	"testing"
	"time"

	"kurve/internal/pkg/codec"

	"github.com/stretchr/testify/require"
)

func datagram(t *testing.T, gameID uint32, first uint32, events ...codec.Event) []byte {
	t.Helper()
	b := codec.AppendUint32(nil, gameID)
	for i, e := range events {
		payload, err := e.MarshalBinary()
		require.NoError(t, err)
		b = append(b, codec.EncodeFrame(first+uint32(i), payload)...)
	}
	return b
}

var newGame = codec.NewGame{MaxX: 10, MaxY: 10, Names: []string{"a", "b"}}

func TestHandleDatagram(t *testing.T) {
	c, err := NewClient(WithPlayerName("a"))
	require.NoError(t, err)

	// frames of a round never announced are ignored
	c.handleDatagram(datagram(t, 5, 1, codec.Pixel{Player: 0, X: 1, Y: 1}))
	require.Empty(t, c.Events())

	c.handleDatagram(datagram(t, 5, 0, newGame, codec.Pixel{Player: 0, X: 1, Y: 1}))
	require.Equal(t, uint32(5), c.GameID())
	require.Equal(t, uint32(2), c.nextMessage().NextExpectedEventNo)

	// gap: event 3 arrives before event 2
	c.handleDatagram(datagram(t, 5, 3, codec.GameOver{}))
	require.Equal(t, uint32(2), c.nextMessage().NextExpectedEventNo)

	c.handleDatagram(datagram(t, 5, 2, codec.PlayerEliminated{Player: 1}, codec.GameOver{}))
	require.Equal(t, uint32(4), c.nextMessage().NextExpectedEventNo)
	require.Equal(t, []codec.Event{
		newGame,
		codec.Pixel{Player: 0, X: 1, Y: 1},
		codec.PlayerEliminated{Player: 1},
		codec.GameOver{},
	}, c.Events())
	require.Equal(t, 1, c.finished)

	// a new round resets the stream
	c.handleDatagram(datagram(t, 9, 0, newGame))
	require.Equal(t, uint32(9), c.GameID())
	require.Equal(t, []codec.Event{newGame}, c.Events())
}

func TestHandleDatagramKeepsFramesBeforeCorruption(t *testing.T) {
	c, err := NewClient()
	require.NoError(t, err)
	b := datagram(t, 5, 0, newGame, codec.GameOver{})
	b[len(b)-1] ^= 0xFF
	c.handleDatagram(b)
	require.Equal(t, []codec.Event{newGame}, c.Events())
}

func TestNewClientValidates(t *testing.T) {
	_, err := NewClient(WithPlayerName("has space"))
	require.ErrorIs(t, err, ErrInvalidPlayerName)
	_, err = NewClient(WithTurnDirection(2))
	require.ErrorIs(t, err, ErrInvalidTurnDirection)
	_, err = NewClient(WithInterval(0))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	srv, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer srv.Close()

	c, err := NewClient(
		WithServerAddr(srv.LocalAddr().String()),
		WithPlayerName("bob"),
		WithTurnDirection(-1),
		WithInterval(5*time.Millisecond),
		WithRounds(1),
	)
	require.NoError(t, err)
	require.ErrorIs(t, c.Run(context.Background()), ErrNotConnected)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	buf := make([]byte, codec.MaxClientDatagramSize)
	require.NoError(t, srv.SetReadDeadline(time.Now().Add(time.Second)))
	n, addr, err := srv.ReadFromUDP(buf)
	require.NoError(t, err)
	msg, err := codec.ParseClientMessage(buf[:n])
	require.NoError(t, err)
	require.Equal(t, "bob", msg.PlayerName)
	require.Equal(t, int8(-1), msg.TurnDirection)
	require.Equal(t, uint32(0), msg.NextExpectedEventNo)
	require.NotZero(t, msg.SessionID)

	_, err = srv.WriteToUDP(datagram(t, 3, 0, newGame, codec.GameOver{}), addr)
	require.NoError(t, err)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("client did not finish")
	}
	require.Equal(t, uint32(3), c.GameID())
	require.Len(t, c.Events(), 2)
}
