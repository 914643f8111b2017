package protocol

// Inbound payloads coming in from the client.

// Answer is a player's submission during their answer window. Ordinal names
// the question it is meant for; Option is one of "A".."D".
type Answer struct {
	Ordinal int    `json:"ordinal"`
	Option  string `json:"option"`
}
