package handler

import (
	"context"
	"net/netip"
	"time"

	"kurve/internal/pkg/delivery"
	"kurve/internal/pkg/game"
	"kurve/internal/pkg/log"
	"kurve/internal/pkg/metrics"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// ErrWouldBlock is returned by a Sender that cannot take a datagram right now.
var ErrWouldBlock = errors.New("send would block")

// Datagram is a datagram received by the transport.
type Datagram struct {
	Payload []byte
	Addr    netip.AddrPort
	At      time.Time
}

// Sender sends assembled datagrams.
type Sender interface {
	Send(dg delivery.Datagram) error
}

// Ticker delivers simulation ticks while started. C returns nil while stopped.
type Ticker interface {
	Start()
	Stop()
	C() <-chan time.Time
}

type handler struct {
	game     *game.Game
	sender   Sender
	ticker   Ticker
	armed    bool
	counters *metrics.Counters
}

// HandlerCfg configures a handler.
type HandlerCfg func(*handler) error

// WithGame sets the game the handler drives.
func WithGame(g *game.Game) HandlerCfg {
	return func(h *handler) error {
		h.game = g
		return nil
	}
}

// WithSender sets the sender of outbound datagrams.
func WithSender(s Sender) HandlerCfg {
	return func(h *handler) error {
		h.sender = s
		return nil
	}
}

// WithTicker sets the source of simulation ticks.
func WithTicker(t Ticker) HandlerCfg {
	return func(h *handler) error {
		h.ticker = t
		return nil
	}
}

// WithCounters sets the counters the handler reports to.
func WithCounters(c *metrics.Counters) HandlerCfg {
	return func(h *handler) error {
		h.counters = c
		return nil
	}
}

// NewHandler creates a new handler.
func NewHandler(cfgs ...HandlerCfg) (*handler, error) {
	h := &handler{counters: &metrics.Counters{}}
	for _, cfg := range cfgs {
		if err := cfg(h); err != nil {
			return nil, errors.Wrap(err, "apply handler cfg failed")
		}
	}
	if h.game == nil || h.sender == nil || h.ticker == nil {
		return nil, errors.New("handler needs a game, a sender and a ticker")
	}
	return h, nil
}

func (h *handler) handleDatagram(dg Datagram) {
	h.game.HandleDatagram(dg.Payload, dg.Addr, dg.At)
	h.syncTicker()
}

func (h *handler) handleTick() {
	h.game.Tick()
	h.syncTicker()
}

// syncTicker keeps ticks flowing only while a round is in progress.
func (h *handler) syncTicker() {
	active := h.game.Active()
	switch {
	case active && !h.armed:
		h.ticker.Start()
		h.armed = true
	case !active && h.armed:
		h.ticker.Stop()
		h.armed = false
	}
}

// write makes one attempt at sending the next datagram.
func (h *handler) write() error {
	dg, ok, err := h.game.NextDatagram()
	if err != nil {
		return errors.Wrap(err, "next datagram failed")
	}
	if !ok {
		return nil
	}
	if err := h.sender.Send(dg); err != nil {
		if errors.Is(err, ErrWouldBlock) {
			h.counters.SendsDeferred.Add(1)
			return nil
		}
		return errors.Wrap(err, "send datagram failed")
	}
	h.game.MarkSent(dg.Events)
	logger.WithFields(log.DatagramToFields(dg)).Trace("sent datagram")
	return nil
}

// Run runs the handler until ctx is done or in is closed.
func (h *handler) Run(ctx context.Context, in <-chan Datagram) error {
	defer h.ticker.Stop()
	for {
		if h.game.WantToWrite() {
			select {
			case <-ctx.Done():
				return nil
			case dg, ok := <-in:
				if !ok {
					return nil
				}
				h.handleDatagram(dg)
			case <-h.ticker.C():
				h.handleTick()
			default:
				if err := h.write(); err != nil {
					return err
				}
			}
			continue
		}
		select {
		case <-ctx.Done():
			return nil
		case dg, ok := <-in:
			if !ok {
				return nil
			}
			h.handleDatagram(dg)
		case <-h.ticker.C():
			h.handleTick()
		}
	}
}
