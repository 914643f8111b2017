package game

// Outcome is a round's terminal result.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeTimeout
	OutcomeNoBuzz
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeNoBuzz:
		return "no_buzz"
	}
	return "none"
}

// Round is the mutable unit of game state: one question's lifecycle from
// broadcast to scored outcome. Exactly one round is live at a time and only
// the coordinator touches it.
type Round struct {
	Question Question
	Eligible map[int]struct{} // player ids broadcast to at round start
	Holding  int              // winner granted the answer window, 0 if none
	Outcome  Outcome
}

func NewRound(q Question, eligible []int) *Round {
	r := &Round{
		Question: q,
		Eligible: make(map[int]struct{}, len(eligible)),
	}
	for _, id := range eligible {
		r.Eligible[id] = struct{}{}
	}
	return r
}

// IsEligible reports whether the player was registered when the round opened.
// Players that connect mid-round sit the round out.
func (r *Round) IsEligible(playerID int) bool {
	_, ok := r.Eligible[playerID]
	return ok
}

// Score resolves a submitted answer against this round's question and returns
// the point delta. A submission for a stale ordinal scores as wrong, it is not
// rejected.
func (r *Round) Score(ordinal int, option string) (Outcome, int) {
	if ordinal == r.Question.Ordinal && r.Question.IsCorrect(option) {
		return OutcomeCorrect, CorrectPoints
	}
	return OutcomeWrong, WrongPoints
}
