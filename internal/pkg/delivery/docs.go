// Package delivery streams a round's event log to players in size-bounded datagrams.
//
// Players with events they have not been sent wait in a FIFO, each at most once. Only
// the player at the front is served:
// 	1. Entries of players that have left are discarded.
// 	2. A read cursor is started at the event number the player last asked for.
// 	3. Whole frames are packed after the game id until the next one would not fit in
// 	   a 512 byte datagram.
// 	4. Once the datagram is sent, the cursor moves past its frames; the player leaves
// 	   the queue when the cursor reaches the end of the log.
//
// The cursor belongs to the queue, not to the player. A player who is queued again
// later starts over from the event number it last acknowledged. Lost datagrams are
// recovered the same way, as clients keep asking for the first event they miss.
package delivery
