// Package client implements a headless client of the kurve protocol.
//
// The client performs the following steps:
// 	1. Dial the server over UDP. The session id is the current time in microseconds.
// 	2. Every interval, send a client message carrying the player name, the configured turn
// 	   direction and the number of the first event not yet received.
// 	3. Decode every server datagram. A NEW_GAME event numbered 0 with an unknown game id
// 	   switches the client to that round; frames of any other round are ignored.
// 	4. Accept only the frame numbered exactly as expected, so the expected number advances
// 	   over contiguous events. Everything else is dropped and asked for again.
// 	5. Stop when the context is cancelled, or after the configured number of rounds ended.
//
// An instance of Client captures the events of the current round in memory.
//
// An empty player name makes the client a lurker: it watches rounds without playing.
package client
