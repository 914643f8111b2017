package protocol

import (
	"encoding/json"
)

// Envelope tags for the reliable channel. Server -> client unless noted.
const (
	MsgQuestion    = "question"
	MsgEligibility = "eligibility"
	MsgAck         = "ack"
	MsgNack        = "nack"
	MsgCorrect     = "correct"
	MsgWrong       = "wrong"
	MsgTimeout     = "timeout"
	MsgScoreUpdate = "score_update"
	MsgGameOver    = "game_over"
	MsgKill        = "kill"
	MsgAnswer      = "answer" // client -> server
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes, empty for signal-only tags
}
