package session

import (
	"fmt"
	"net/netip"
	"testing"
	"time"

	"kurve/internal/pkg/codec"

	"github.com/stretchr/testify/require"
)

var (
	epoch = time.Unix(1000, 0)
	addrA = netip.MustParseAddrPort("10.0.0.1:4000")
	addrB = netip.MustParseAddrPort("10.0.0.2:4000")
)

func newRegistry(t *testing.T, cfgs ...Cfg) *Registry {
	t.Helper()
	r, err := New(cfgs...)
	require.NoError(t, err)
	return r
}

func msg(session uint64, turn int8, expected uint32, name string) codec.ClientMessage {
	return codec.ClientMessage{SessionID: session, TurnDirection: turn, NextExpectedEventNo: expected, PlayerName: name}
}

func TestAdmitCreatesLurker(t *testing.T) {
	r := newRegistry(t)
	p, outcome, err := r.AdmitOrUpdate(msg(5, 0, 3, "alice"), addrA, epoch)
	require.NoError(t, err)
	require.Equal(t, Created, outcome)
	require.Equal(t, "alice", p.Name)
	require.Equal(t, uint32(3), p.ExpectedNo)
	require.True(t, p.Lurking)
	require.False(t, p.PressedArrow)
	require.Equal(t, 1, r.Len())

	got, ok := r.Get(p.Token)
	require.True(t, ok)
	require.Same(t, p, got)
}

func TestUpdateSameSession(t *testing.T) {
	r := newRegistry(t)
	p, _, err := r.AdmitOrUpdate(msg(5, 0, 0, "alice"), addrA, epoch)
	require.NoError(t, err)

	got, outcome, err := r.AdmitOrUpdate(msg(5, 1, 9, "alice"), addrA, epoch.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, Updated, outcome)
	require.Same(t, p, got)
	require.Equal(t, uint32(9), p.ExpectedNo)
	require.Equal(t, int8(1), p.Turn)
	require.True(t, p.PressedArrow)
	require.Equal(t, epoch.Add(time.Second), p.LastContact)

	// pressing stays recorded once released
	_, _, err = r.AdmitOrUpdate(msg(5, 0, 9, "alice"), addrA, epoch.Add(time.Second))
	require.NoError(t, err)
	require.True(t, p.PressedArrow)
	require.Equal(t, int8(0), p.Turn)
}

func TestNewerSessionReplacesPlayer(t *testing.T) {
	r := newRegistry(t)
	old, _, err := r.AdmitOrUpdate(msg(5, 1, 0, "alice"), addrA, epoch)
	require.NoError(t, err)
	old.Lurking = false

	p, outcome, err := r.AdmitOrUpdate(msg(6, 0, 0, "alice"), addrA, epoch)
	require.NoError(t, err)
	require.Equal(t, Replaced, outcome)
	require.NotEqual(t, old.Token, p.Token)
	require.True(t, p.Lurking)
	require.False(t, p.PressedArrow)
	require.Equal(t, 1, r.Len())
	_, ok := r.Get(old.Token)
	require.False(t, ok)
}

func TestOlderSessionIsNoop(t *testing.T) {
	r := newRegistry(t)
	p, _, err := r.AdmitOrUpdate(msg(5, 1, 4, "alice"), addrA, epoch)
	require.NoError(t, err)
	before := *p

	got, outcome, err := r.AdmitOrUpdate(msg(4, -1, 0, "bob"), addrA, epoch.Add(time.Second))
	require.ErrorIs(t, err, ErrStaleSession)
	require.Equal(t, Ignored, outcome)
	require.Nil(t, got)
	require.Equal(t, before, *p)
	require.Equal(t, 1, r.Len())
}

func TestNameReservation(t *testing.T) {
	r := newRegistry(t)
	_, _, err := r.AdmitOrUpdate(msg(1, 0, 0, "alice"), addrA, epoch)
	require.NoError(t, err)

	_, outcome, err := r.AdmitOrUpdate(msg(1, 0, 0, "alice"), addrB, epoch)
	require.ErrorIs(t, err, ErrNameTaken)
	require.Equal(t, Ignored, outcome)
	require.Equal(t, 1, r.Len())

	// lurkers never collide
	_, _, err = r.AdmitOrUpdate(msg(1, 0, 0, ""), addrB, epoch)
	require.NoError(t, err)
	_, _, err = r.AdmitOrUpdate(msg(1, 0, 0, ""), netip.MustParseAddrPort("10.0.0.3:1"), epoch)
	require.NoError(t, err)

	// replacing the owner releases the name for the new session
	_, outcome, err = r.AdmitOrUpdate(msg(2, 0, 0, "carol"), addrA, epoch)
	require.NoError(t, err)
	require.Equal(t, Replaced, outcome)
	_, outcome, err = r.AdmitOrUpdate(msg(1, 0, 0, "alice"), netip.MustParseAddrPort("10.0.0.4:1"), epoch)
	require.NoError(t, err)
	require.Equal(t, Created, outcome)
}

func TestNewerSessionWithTakenNameKeepsOldPlayer(t *testing.T) {
	r := newRegistry(t)
	_, _, err := r.AdmitOrUpdate(msg(1, 0, 0, "alice"), addrA, epoch)
	require.NoError(t, err)
	old, _, err := r.AdmitOrUpdate(msg(1, 1, 0, "bob"), addrB, epoch)
	require.NoError(t, err)

	got, outcome, err := r.AdmitOrUpdate(msg(2, 0, 0, "alice"), addrB, epoch.Add(time.Second))
	require.ErrorIs(t, err, ErrNameTaken)
	require.Equal(t, Ignored, outcome)
	require.Nil(t, got)
	require.Equal(t, 2, r.Len())
	kept, ok := r.Get(old.Token)
	require.True(t, ok)
	require.Equal(t, "bob", kept.Name)
	require.Equal(t, uint64(1), kept.SessionID)

	// bob's name is still reserved
	_, _, err = r.AdmitOrUpdate(msg(1, 0, 0, "bob"), netip.MustParseAddrPort("10.0.0.3:1"), epoch)
	require.ErrorIs(t, err, ErrNameTaken)
}

func TestCapacity(t *testing.T) {
	r := newRegistry(t)
	for i := 0; i < MaxPlayers; i++ {
		addr := netip.MustParseAddrPort(fmt.Sprintf("10.0.1.%d:5000", i))
		_, _, err := r.AdmitOrUpdate(msg(1, 0, 0, fmt.Sprintf("p%d", i)), addr, epoch)
		require.NoError(t, err)
	}
	_, outcome, err := r.AdmitOrUpdate(msg(1, 0, 0, ""), addrA, epoch)
	require.ErrorIs(t, err, ErrCapacityExhausted)
	require.Equal(t, Ignored, outcome)
	require.Equal(t, MaxPlayers, r.Len())

	_, err = New(WithCapacity(0))
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestEvictInactive(t *testing.T) {
	r := newRegistry(t, WithInactivityTolerance(2*time.Second))
	a, _, err := r.AdmitOrUpdate(msg(1, 0, 0, "alice"), addrA, epoch)
	require.NoError(t, err)
	b, _, err := r.AdmitOrUpdate(msg(1, 0, 0, "bob"), addrB, epoch.Add(time.Second))
	require.NoError(t, err)

	require.Empty(t, r.EvictInactive(epoch.Add(1999*time.Millisecond)))

	evicted := r.EvictInactive(epoch.Add(2 * time.Second))
	require.Equal(t, []*Player{a}, evicted)
	require.Equal(t, []*Player{b}, r.Players())

	// the name is free again
	_, outcome, err := r.AdmitOrUpdate(msg(1, 0, 0, "alice"), netip.MustParseAddrPort("10.0.0.9:9"), epoch.Add(2*time.Second))
	require.NoError(t, err)
	require.Equal(t, Created, outcome)
}
