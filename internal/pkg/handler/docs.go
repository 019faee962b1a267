// Package handler implements the control loop of the server.
//
// All game state is owned by a single goroutine running handler.Run, which waits for:
// 	1. A datagram from the transport's reader, handed to the game together with its
// 	   arrival time.
// 	2. A tick, delivered only while a round is in progress. The ticker is started when a
// 	   round starts and stopped as soon as it finishes.
// 	3. Room to write, whenever the game has a player waiting for events. One datagram is
// 	   attempted per iteration, so reads and ticks are never starved by a long backlog.
//
// A send that would block is retried on a later iteration. Any other send failure ends
// the loop with an error. Cancelling the context ends the loop after the event in hand.
package handler
