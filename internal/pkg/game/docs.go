// Package game composes the player registry, the round simulation and the delivery queue.
//
// A Game reacts to three things, one at a time:
// 	1. A datagram arrives: it is validated, silent players are evicted, the sender is
// 	   admitted or updated and queued for delivery, and a new round starts if every
// 	   named player has pressed an arrow and there are at least two of them.
// 	2. A tick fires: the active round advances one step and, if it logged events,
// 	   every player is queued for delivery.
// 	3. The socket can take a datagram: the queue assembles the next one.
//
// A Game is not safe for concurrent use; the handler loop owns it.
package game
