// Package server implements the UDP transport of the kurve server.
//
// The server performs the following steps:
// 	1. Binds a UDP socket on the configured address.
// 	2. Runs a reader goroutine that stamps every datagram with its arrival time and hands
// 	   it to the control loop. Datagrams longer than a client message are dropped here.
// 	3. Runs the control loop (see package handler), which owns the game and uses the
// 	   server as its Sender. A send that does not complete within the write timeout is
// 	   reported as handler.ErrWouldBlock and retried later.
// 	4. Stops both goroutines when the context is cancelled or either of them fails.
//
// The transport does not retransmit anything. Clients keep asking for the first event
// they are missing, and the next datagram for them starts there.
package server
