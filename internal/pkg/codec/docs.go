// Package codec implements the kurve wire format.
//
// Every integer travels in network byte order. A client sends a fixed layout datagram:
//	session_id (8) | turn_direction (1, signed) | next_expected_event_no (4) | player_name (0..64)
//
// The server answers with datagrams of at most 512 bytes:
//	game_id (4) | frame | frame | ...
//
// A frame serializes one event:
//	length (4) | event_no (4) | event_type (1) | event_data | crc32 (4)
//
// where length counts event_no, event_type and event_data, and the CRC-32 covers
// every byte before it. A datagram never carries a partial frame.
package codec
