package server

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"time"

	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/delivery"
	"kurve/internal/pkg/game"
	"kurve/internal/pkg/handler"
	"kurve/internal/pkg/metrics"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

const (
	// DefaultWriteTimeout bounds a send attempt before it counts as blocked.
	DefaultWriteTimeout = 10 * time.Millisecond
	inboundBacklog      = 256
)

// Server serves a Game over UDP.
type Server struct {
	listenAddr   string
	conn         *net.UDPConn
	writeTimeout time.Duration
	game         *game.Game
	counters     *metrics.Counters
}

// Cfg configures a Server.
type Cfg func(*Server) error

// WithPort listens on every interface at port p.
func WithPort(p uint16) Cfg {
	return func(s *Server) error {
		s.listenAddr = fmt.Sprintf(":%d", p)
		return nil
	}
}

// WithListenAddr listens on addr.
func WithListenAddr(addr string) Cfg {
	return func(s *Server) error {
		s.listenAddr = addr
		return nil
	}
}

// WithGame sets the game served.
func WithGame(g *game.Game) Cfg {
	return func(s *Server) error {
		s.game = g
		return nil
	}
}

// WithCounters sets the counters the server reports to.
func WithCounters(c *metrics.Counters) Cfg {
	return func(s *Server) error {
		s.counters = c
		return nil
	}
}

// WithWriteTimeout sets how long a send may block.
func WithWriteTimeout(d time.Duration) Cfg {
	return func(s *Server) error {
		if d <= 0 {
			return errors.New("write timeout must be positive")
		}
		s.writeTimeout = d
		return nil
	}
}

// NewServer creates a new Server with the given configuration and binds its socket.
func NewServer(cfgs ...Cfg) (*Server, error) {
	s := &Server{
		writeTimeout: DefaultWriteTimeout,
		counters:     &metrics.Counters{},
	}
	for _, cfg := range cfgs {
		if err := cfg(s); err != nil {
			return nil, errors.Wrap(err, "apply Server cfg failed")
		}
	}
	if s.game == nil {
		return nil, errors.New("server needs a game")
	}
	if s.game.Board().GameSpeed == 0 {
		return nil, errors.Wrap(game.ErrInvalidBoard, "game speed must be positive")
	}
	addr, err := net.ResolveUDPAddr("udp", s.listenAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s failed", s.listenAddr)
	}
	s.conn, err = net.ListenUDP("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen on %s failed", s.listenAddr)
	}
	return s, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() net.Addr {
	return s.conn.LocalAddr()
}

// Send implements handler.Sender.
func (s *Server) Send(dg delivery.Datagram) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return errors.Wrap(err, "set write deadline failed")
	}
	_, err := s.conn.WriteToUDPAddrPort(dg.Payload, dg.Addr)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return handler.ErrWouldBlock
	}
	return errors.Wrapf(err, "write to %s failed", dg.Addr)
}

// Run serves until ctx is done. It closes the socket before returning.
func (s *Server) Run(ctx context.Context) error {
	defer s.conn.Close()
	period := time.Second / time.Duration(s.game.Board().GameSpeed)
	h, err := handler.NewHandler(
		handler.WithGame(s.game),
		handler.WithSender(s),
		handler.WithTicker(handler.NewClock(period)),
		handler.WithCounters(s.counters),
	)
	if err != nil {
		return errors.Wrap(err, "new handler failed")
	}
	logger.WithFields(logrus.Fields{
		"addr":   s.Addr().String(),
		"period": period,
	}).Info("server listening")

	in := make(chan handler.Datagram, inboundBacklog)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(in)
		return s.read(gctx, in)
	})
	g.Go(func() error {
		// closing the socket unblocks the reader
		defer s.conn.Close()
		return errors.Wrap(h.Run(gctx, in), "run handler failed")
	})
	return g.Wait()
}

func (s *Server) read(ctx context.Context, in chan<- handler.Datagram) error {
	buf := make([]byte, codec.MaxClientDatagramSize+1)
	for {
		n, addr, err := s.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "read datagram failed")
		}
		at := time.Now()
		if n > codec.MaxClientDatagramSize {
			s.counters.DatagramsIn.Add(1)
			s.counters.DatagramsDropped.Add(1)
			logger.WithField("addr", addr.String()).Debug("dropping oversized datagram")
			continue
		}
		dg := handler.Datagram{
			Payload: append([]byte(nil), buf[:n]...),
			Addr:    netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()),
			At:      at,
		}
		select {
		case in <- dg:
		case <-ctx.Done():
			return nil
		}
	}
}
