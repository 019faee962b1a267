// Package session implements the registry of connected players.
//
// Datagrams carry no connection, so a player is identified by the address it sends from.
// The session id the client picks when it starts disambiguates restarts behind the
// same address:
// 	1. A message from an unknown address registers a new lurking player, unless every slot
// 	   is taken or the name it asks for is reserved.
// 	2. A message with a newer session id replaces the player with a fresh one.
// 	3. A message with the same session id refreshes the player's contact time, its
// 	   acknowledged event number and its turn intent.
// 	4. A message with an older session id is a late duplicate and is ignored.
//
// Players that stay silent longer than the inactivity tolerance are evicted, checked
// whenever a message arrives. Evicting or replacing a player releases its name.
package session
