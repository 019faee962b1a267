package delivery

import (
	"net/netip"

	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/round"
	"kurve/internal/pkg/session"

	"github.com/pkg/errors"
)

// Directory resolves queued tokens to registered players.
type Directory interface {
	Get(token uint64) (*session.Player, bool)
}

// Datagram is an assembled server datagram.
type Datagram struct {
	Addr    netip.AddrPort
	Payload []byte
	// Events is the number of whole frames in Payload.
	Events int
}

type cursor struct {
	inProgress bool
	token      uint64
	next       int
}

// Queue holds the players waiting for events. It is not safe for concurrent use.
type Queue struct {
	fifo    []uint64
	members map[uint64]struct{}
	cursor  cursor
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{members: make(map[uint64]struct{})}
}

// Notify queues token unless it is already waiting.
func (q *Queue) Notify(token uint64) {
	if _, ok := q.members[token]; ok {
		return
	}
	q.members[token] = struct{}{}
	q.fifo = append(q.fifo, token)
}

// Reset empties the queue and drops the cursor.
func (q *Queue) Reset() {
	q.fifo = nil
	q.members = make(map[uint64]struct{})
	q.cursor = cursor{}
}

// Len returns the number of waiting players.
func (q *Queue) Len() int {
	return len(q.fifo)
}

// Next assembles the next datagram of round gameID for the player at the front.
// It reports false when nobody is waiting for events of log.
func (q *Queue) Next(dir Directory, gameID uint32, log *round.EventLog) (Datagram, bool, error) {
	for len(q.fifo) > 0 {
		front := q.fifo[0]
		p, ok := dir.Get(front)
		if !ok {
			q.pop()
			continue
		}
		if !q.cursor.inProgress || q.cursor.token != front {
			q.cursor = cursor{inProgress: true, token: front, next: int(p.ExpectedNo)}
		}
		if q.cursor.next >= log.Len() {
			q.pop()
			continue
		}
		payload, n, err := assemble(gameID, log, q.cursor.next)
		if err != nil {
			return Datagram{}, false, err
		}
		return Datagram{Addr: p.Addr, Payload: payload, Events: n}, true, nil
	}
	return Datagram{}, false, nil
}

// MarkSent moves the cursor past count events of a log holding logLen events.
func (q *Queue) MarkSent(count, logLen int) {
	if !q.cursor.inProgress {
		return
	}
	q.cursor.next += count
	if q.cursor.next >= logLen {
		q.pop()
	}
}

func (q *Queue) pop() {
	delete(q.members, q.fifo[0])
	q.fifo = q.fifo[1:]
	q.cursor = cursor{}
}

func assemble(gameID uint32, log *round.EventLog, from int) ([]byte, int, error) {
	payload := codec.AppendUint32(make([]byte, 0, codec.MaxServerDatagramSize), gameID)
	buf := log.Bytes()
	n := 0
	for i := from; i < log.Len(); i++ {
		offset := log.Offset(i)
		f, err := codec.DecodeFrame(buf, offset)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "decode event %d failed", i)
		}
		if len(payload)+f.Size > codec.MaxServerDatagramSize {
			break
		}
		payload = append(payload, buf[offset:offset+f.Size]...)
		n++
	}
	if n == 0 {
		return nil, 0, errors.Wrapf(ErrFrameTooLarge, "event %d", from)
	}
	return payload, n, nil
}
