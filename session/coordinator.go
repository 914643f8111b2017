package session

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"trivia/game"
	"trivia/protocol"
	"trivia/score"
)

// Arbiter is what the coordinator needs from the buzz arbitrator: pop the
// first buzzed player and reset the queue between rounds.
type Arbiter interface {
	First() (int, bool)
	Clear()
}

// QuestionSource is an ordered, exhaustible sequence of questions.
type QuestionSource interface {
	Next() (game.Question, bool)
}

// Coordinator runs the game loop. It is the single writer of round state;
// everything it shares with the handlers and the arbitrator goes through the
// registry, the buzz queue and the ledger.
type Coordinator struct {
	registry *Registry
	arb      Arbiter
	ledger   *score.Ledger
	bank     QuestionSource

	clock        clockwork.Clock
	buzzWindow   time.Duration
	answerWindow time.Duration
}

func NewCoordinator(registry *Registry, arb Arbiter, ledger *score.Ledger, bank QuestionSource) *Coordinator {
	return &Coordinator{
		registry:     registry,
		arb:          arb,
		ledger:       ledger,
		bank:         bank,
		clock:        clockwork.NewRealClock(),
		buzzWindow:   game.BuzzWindow,
		answerWindow: game.AnswerWindow,
	}
}

// Run drives rounds until the question source is exhausted or ctx is
// cancelled. No per-player failure stops the loop; a failing player's
// contribution is dropped and the game continues for everyone else.
func (c *Coordinator) Run(ctx context.Context) error {
	for {
		q, ok := c.bank.Next()
		if !ok {
			c.gameOver()
			return nil
		}

		round := c.broadcast(q)

		// The buzz window always runs its full length, even if the first
		// buzz lands immediately. Everyone gets the same window.
		if !c.sleep(ctx, c.buzzWindow) {
			return ctx.Err()
		}

		winnerID, ok := c.arbitrate(round)
		if !ok {
			round.Outcome = game.OutcomeNoBuzz
			log.Info().Int("question", q.Ordinal).Msg("nobody buzzed, moving on")
			continue
		}

		winner, ok := c.registry.Get(winnerID)
		if !ok {
			// Winner disconnected between buzzing and arbitration: scored
			// like a timeout, round advances.
			c.scoreTimeout(round, winnerID, nil)
			c.arb.Clear()
			continue
		}

		c.hold(round, winner)
		if err := c.answerWait(ctx, round, winner); err != nil {
			return err
		}
		c.arb.Clear()
	}
}

// broadcast opens a round: eligibility then the question to every registered
// player, and a fresh buzz queue.
func (c *Coordinator) broadcast(q game.Question) *game.Round {
	// Fresh queue before anyone can see the question, so a leftover buzz
	// from the previous round can never win this one.
	c.arb.Clear()

	clients := c.registry.Snapshot()
	eligible := make([]int, 0, len(clients))

	payload := protocol.QuestionPayload{
		Ordinal: q.Ordinal,
		Text:    q.Text,
		Options: q.Options[:],
	}
	for _, cl := range clients {
		if err := cl.SendEligibility(); err != nil {
			log.Warn().Err(err).Int("client_id", cl.ID()).Msg("eligibility send failed")
			continue
		}
		if err := cl.SendQuestion(payload); err != nil {
			log.Warn().Err(err).Int("client_id", cl.ID()).Msg("question send failed")
			continue
		}
		eligible = append(eligible, cl.ID())
	}

	log.Info().Int("question", q.Ordinal).Int("players", len(eligible)).Msg("round open")
	return game.NewRound(q, eligible)
}

// arbitrate pops winners until one is eligible for this round. Mid-round
// joiners are skipped.
func (c *Coordinator) arbitrate(round *game.Round) (int, bool) {
	for {
		id, ok := c.arb.First()
		if !ok {
			return 0, false
		}
		if round.IsEligible(id) {
			return id, true
		}
		log.Warn().Int("client_id", id).Msg("buzz from ineligible player, skipping")
	}
}

// hold grants the winner the answer window: ACK to them, NACK to the rest.
func (c *Coordinator) hold(round *game.Round, winner *Client) {
	round.Holding = winner.ID()
	winner.ClearAnswer()
	if err := winner.SendAck(); err != nil {
		log.Warn().Err(err).Int("client_id", winner.ID()).Msg("ack send failed")
	}
	for _, cl := range c.registry.Snapshot() {
		if cl.ID() == winner.ID() {
			continue
		}
		if err := cl.SendNack(); err != nil {
			log.Warn().Err(err).Int("client_id", cl.ID()).Msg("nack send failed")
		}
	}
	log.Info().Int("client_id", winner.ID()).Int("question", round.Question.Ordinal).Msg("answer window granted")
}

// answerWait ends on the first of: an answer lands, the winner drops, the
// window elapses.
func (c *Coordinator) answerWait(ctx context.Context, round *game.Round, winner *Client) error {
	timer := c.clock.NewTimer(c.answerWindow)
	defer stopAndDrainTimer(timer)

	select {
	case <-winner.AnswerReady():
		a, ok := winner.Answer()
		if !ok {
			// Slot raced empty; treat like no answer.
			c.scoreTimeout(round, winner.ID(), winner)
			return nil
		}
		c.scoreAnswer(round, winner, a)
	case <-winner.Done():
		c.scoreTimeout(round, winner.ID(), nil)
	case <-timer.Chan():
		c.scoreTimeout(round, winner.ID(), winner)
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (c *Coordinator) scoreAnswer(round *game.Round, winner *Client, a protocol.Answer) {
	outcome, delta := round.Score(a.Ordinal, a.Option)
	round.Outcome = outcome
	total := c.ledger.Apply(winner.ID(), delta)

	var err error
	if outcome == game.OutcomeCorrect {
		err = winner.SendCorrect()
	} else {
		err = winner.SendWrong()
	}
	if err == nil {
		err = winner.SendScoreUpdate(total)
	}
	if err != nil {
		log.Warn().Err(err).Int("client_id", winner.ID()).Msg("result send failed")
	}
	winner.ClearAnswer()

	log.Info().
		Int("client_id", winner.ID()).
		Int("question", round.Question.Ordinal).
		Str("outcome", outcome.String()).
		Int("score", total).
		Msg("round scored")
}

// scoreTimeout applies the no-answer penalty. winner may be nil when the
// player is already gone; the penalty still lands in the ledger.
func (c *Coordinator) scoreTimeout(round *game.Round, winnerID int, winner *Client) {
	round.Outcome = game.OutcomeTimeout
	total := c.ledger.Apply(winnerID, game.TimeoutPoints)
	if winner != nil {
		if err := winner.SendTimeout(); err == nil {
			_ = winner.SendScoreUpdate(total)
		}
		winner.ClearAnswer()
	}
	log.Info().
		Int("client_id", winnerID).
		Int("question", round.Question.Ordinal).
		Int("score", total).
		Msg("answer window timed out")
}

func (c *Coordinator) gameOver() {
	for _, cl := range c.registry.Snapshot() {
		if err := cl.SendGameOver(); err != nil {
			log.Warn().Err(err).Int("client_id", cl.ID()).Msg("game over send failed")
		}
	}
	finals := c.ledger.Snapshot()
	for id, total := range finals {
		log.Info().Int("client_id", id).Int("score", total).Msg("final score")
	}
	log.Info().Int("players", len(finals)).Msg("game over")
}

// sleep waits the full duration on the injected clock; false if ctx won.
func (c *Coordinator) sleep(ctx context.Context, d time.Duration) bool {
	timer := c.clock.NewTimer(d)
	defer stopAndDrainTimer(timer)
	select {
	case <-timer.Chan():
		return true
	case <-ctx.Done():
		return false
	}
}

// stopAndDrainTimer stops a timer and drains its channel so an abandoned
// timer never leaves a stale tick behind.
func stopAndDrainTimer(t clockwork.Timer) {
	if !t.Stop() {
		select {
		case <-t.Chan():
		default:
		}
	}
}
