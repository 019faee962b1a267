// Package metrics keeps the server's counters. Every method is safe for concurrent use.
package metrics

import "sync/atomic"

// Counters records what the control loop did since startup.
type Counters struct {
	DatagramsIn      atomic.Int64
	DatagramsDropped atomic.Int64
	DatagramsOut     atomic.Int64
	SendsDeferred    atomic.Int64
	RoundsStarted    atomic.Int64
	Ticks            atomic.Int64
	EventsEmitted    atomic.Int64
	Players          atomic.Int64
}

// Snapshot returns a point-in-time copy suitable for JSON encoding.
func (c *Counters) Snapshot() map[string]any {
	return map[string]any{
		"datagrams_in":      c.DatagramsIn.Load(),
		"datagrams_dropped": c.DatagramsDropped.Load(),
		"datagrams_out":     c.DatagramsOut.Load(),
		"sends_deferred":    c.SendsDeferred.Load(),
		"rounds_started":    c.RoundsStarted.Load(),
		"ticks":             c.Ticks.Load(),
		"events_emitted":    c.EventsEmitted.Load(),
		"players":           c.Players.Load(),
	}
}
