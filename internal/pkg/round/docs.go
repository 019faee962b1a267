// Package round implements the simulation of a single round.
//
// A round is created with its roster and immediately logs NEW_GAME followed by one
// placement event per snake. Every Tick then:
// 	1. Turns each live snake by its last turn intent times the board's turning speed.
// 	2. Moves it one unit along its heading.
// 	3. Logs nothing if it is still in the same cell.
// 	4. Eliminates it if the new cell is off the board or already taken, and ends the
// 	   round with GAME_OVER once at most one snake is left.
// 	5. Otherwise takes the cell and logs a PIXEL.
//
// Events are serialized into frames as they happen and appended to the round's EventLog.
// The log is never rewritten, so frame n can be handed out by offset at any time.
// A finished round stays readable until the next round replaces it.
package round
