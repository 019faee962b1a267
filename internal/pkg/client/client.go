package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// DefaultInterval is how often the client reports to the server.
const DefaultInterval = 30 * time.Millisecond

// Client implements the client behaviour of the kurve protocol.
type Client struct {
	serverAddr string
	name       string
	turn       int8
	interval   time.Duration
	rounds     int
	sessionID  uint64
	uuid       uuid.UUID

	conn *net.UDPConn

	gameID   uint32
	inRound  bool
	expected uint32
	events   []codec.Event
	finished int
}

// Cfg configures a Client.
type Cfg func(*Client) error

// WithServerAddr sets the server address as host:port.
func WithServerAddr(addr string) Cfg {
	return func(c *Client) error {
		c.serverAddr = addr
		return nil
	}
}

// WithServerPort sets the server port to connect to on localhost.
func WithServerPort(p uint16) Cfg {
	return func(c *Client) error {
		c.serverAddr = fmt.Sprintf("localhost:%d", p)
		return nil
	}
}

// WithPlayerName sets the player name. An empty name makes the client a lurker.
func WithPlayerName(name string) Cfg {
	return func(c *Client) error {
		if len(name) > codec.MaxPlayerNameLength || !codec.ValidName(name) {
			return errors.Wrap(ErrInvalidPlayerName, name)
		}
		c.name = name
		return nil
	}
}

// WithTurnDirection sets the turn direction reported on every message.
func WithTurnDirection(d int8) Cfg {
	return func(c *Client) error {
		if d < -1 || d > 1 {
			return errors.Wrapf(ErrInvalidTurnDirection, "%d", d)
		}
		c.turn = d
		return nil
	}
}

// WithInterval sets how often the client reports to the server.
func WithInterval(d time.Duration) Cfg {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("interval must be positive")
		}
		c.interval = d
		return nil
	}
}

// WithRounds makes Run return once n rounds ended. Zero means run until cancelled.
func WithRounds(n int) Cfg {
	return func(c *Client) error {
		c.rounds = n
		return nil
	}
}

// NewClient creates a new Client with the given configuration.
func NewClient(cfgs ...Cfg) (*Client, error) {
	client := &Client{interval: DefaultInterval}
	for _, cfg := range cfgs {
		if err := cfg(client); err != nil {
			return nil, errors.Wrap(err, "apply Client cfg failed")
		}
	}
	client.sessionID = uint64(time.Now().UnixMicro())
	client.uuid = uuid.New()
	return client, nil
}

// Connect dials the server.
func (c *Client) Connect(_ context.Context) error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return errors.Wrap(err, "close client connection failed")
		}
	}
	addr, err := net.ResolveUDPAddr("udp", c.serverAddr)
	if err != nil {
		return errors.Wrapf(err, "resolve %s failed", c.serverAddr)
	}
	c.conn, err = net.DialUDP("udp", nil, addr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s failed", c.serverAddr)
	}
	return nil
}

// GameID returns the id of the round the client follows.
func (c *Client) GameID() uint32 {
	return c.gameID
}

// Events returns the contiguous events received for the current round.
func (c *Client) Events() []codec.Event {
	return c.events
}

// nextMessage prepares the next message to send to the server based on the current client state.
func (c *Client) nextMessage() codec.ClientMessage {
	return codec.ClientMessage{
		SessionID:           c.sessionID,
		TurnDirection:       c.turn,
		NextExpectedEventNo: c.expected,
		PlayerName:          c.name,
	}
}

// handleDatagram updates the client state using a datagram from the server.
func (c *Client) handleDatagram(b []byte) {
	gameID, frames, err := codec.ParseServerDatagram(b)
	if err != nil {
		logger.WithError(err).WithField("game_id", gameID).Debug("datagram truncated at corrupt frame")
	}
	for _, f := range frames {
		c.handleFrame(gameID, f)
	}
}

func (c *Client) handleFrame(gameID uint32, f codec.Frame) {
	if !c.inRound || gameID != c.gameID {
		if f.EventNo != 0 || len(f.Payload) == 0 || codec.EventType(f.Payload[0]) != codec.EventNewGame {
			return
		}
		c.gameID = gameID
		c.inRound = true
		c.expected = 0
		c.events = nil
	}
	if f.EventNo != c.expected {
		return
	}
	event, err := codec.ParseEvent(f.Payload)
	if err != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"game_id":  gameID,
			"event_no": f.EventNo,
		}).Warn("skipping undecodable event")
		return
	}
	c.events = append(c.events, event)
	c.expected++
	logger.WithFields(logrus.Fields{
		"uuid":     c.uuid.String(),
		"game_id":  gameID,
		"event_no": f.EventNo,
		"event":    fmt.Sprintf("%+v", event),
	}).Debugf("received %s", event.Type())
	if event.Type() == codec.EventGameOver {
		c.finished++
		logger.WithFields(logrus.Fields{
			"uuid":    c.uuid.String(),
			"game_id": gameID,
			"events":  len(c.events),
		}).Info("round over")
	}
}

func (c *Client) send() error {
	msg := c.nextMessage()
	b, err := msg.MarshalBinary()
	if err != nil {
		return errors.Wrap(err, "marshal client message failed")
	}
	if _, err := c.conn.Write(b); err != nil {
		return errors.Wrap(err, "send client message failed")
	}
	logger.WithFields(log.ClientMessageToFields(msg)).Trace("sent message")
	return nil
}

// report sends the next message. Failures are logged, the next tick tries again.
func (c *Client) report() {
	if err := c.send(); err != nil {
		logger.WithError(err).Debug("report to server failed")
	}
}

// recv reads datagrams from the server and sends them on the returned channel
// until the connection is closed.
func (c *Client) recv() chan []byte {
	out := make(chan []byte)
	go func() {
		defer close(out)
		buf := make([]byte, codec.MaxServerDatagramSize)
		for {
			n, err := c.conn.Read(buf)
			if errors.Is(err, net.ErrClosed) {
				return
			}
			if err != nil {
				// ICMP errors surface here while the server is not up yet
				logger.WithError(err).Debug("read datagram failed")
				continue
			}
			out <- append([]byte(nil), buf[:n]...)
		}
	}()
	return out
}

// Run runs the client until ctx is done or the configured number of rounds ended.
func (c *Client) Run(ctx context.Context) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	in := c.recv()
	defer func() {
		_ = c.conn.Close()
		for range in {
		}
	}()
	logger.WithFields(logrus.Fields{
		"uuid":    c.uuid.String(),
		"server":  c.serverAddr,
		"name":    c.name,
		"session": c.sessionID,
	}).Info("client started")

	c.report()
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-in:
			if !ok {
				return nil
			}
			c.handleDatagram(b)
			if c.rounds > 0 && c.finished >= c.rounds {
				return nil
			}
		case <-ticker.C:
			c.report()
		}
	}
}
