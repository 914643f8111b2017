package protocol

// QuestionPayload is the wire shape of one question. The correct option is
// never sent to clients.
type QuestionPayload struct {
	Ordinal int      `json:"ordinal"`
	Text    string   `json:"text"`
	Options []string `json:"options"` // always 4, indexed A..D
}

type ScoreUpdate struct {
	Score int `json:"score"`
}
