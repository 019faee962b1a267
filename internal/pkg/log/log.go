// Package log add logging utilities.
package log

import (
	"io"
	"os"
	"strings"
	"time"

	"kurve/internal/pkg/codec"
	"kurve/internal/pkg/delivery"
	"kurve/internal/pkg/session"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetLogger sets the default logger's level.
func SetLogger(level string) {
	logrus.SetLevel(logrus.ErrorLevel)
	customFormatter := new(logrus.TextFormatter)
	customFormatter.TimestampFormat = time.RFC3339
	logrus.SetFormatter(customFormatter)
	customFormatter.FullTimestamp = true
	switch strings.ToLower(level) {
	case "trace":
		logrus.SetLevel(logrus.TraceLevel)
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

// SetOutput sends the default logger's output to a rotating file at path,
// or to stderr when path is empty. The returned closer releases the file.
func SetOutput(path string) io.Closer {
	if path == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	logrus.SetOutput(lj)
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func ClientMessageToFields(msg codec.ClientMessage) logrus.Fields {
	return logrus.Fields{
		"session":  msg.SessionID,
		"turn":     msg.TurnDirection,
		"expected": msg.NextExpectedEventNo,
		"name":     msg.PlayerName,
	}
}

func PlayerToFields(p *session.Player) logrus.Fields {
	return logrus.Fields{
		"token":    p.Token,
		"addr":     p.Addr.String(),
		"session":  p.SessionID,
		"name":     p.Name,
		"expected": p.ExpectedNo,
		"lurking":  p.Lurking,
	}
}

func DatagramToFields(dg delivery.Datagram) logrus.Fields {
	return logrus.Fields{
		"addr":   dg.Addr.String(),
		"events": dg.Events,
		"size":   len(dg.Payload),
	}
}
