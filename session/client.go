package session

import (
	"sync"

	"github.com/rs/zerolog/log"

	"trivia/protocol"
)

// Conn is the reliable duplex channel to one player. The network layer backs
// it with a websocket; tests use fakes.
type Conn interface {
	Send([]byte) error
	Recv() ([]byte, error)
	Close() error
}

// Client is the per-player session handler. It pumps inbound answer
// submissions into a single-slot cell and exposes one send operation per
// envelope tag. ID and origin address are fixed at construction.
type Client struct {
	id       int
	addr     string
	conn     Conn
	registry *Registry

	mu     sync.Mutex
	answer *protocol.Answer
	ready  chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id int, addr string, conn Conn, registry *Registry) *Client {
	return &Client{
		id:       id,
		addr:     addr,
		conn:     conn,
		registry: registry,
		ready:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (c *Client) ID() int      { return c.id }
func (c *Client) Addr() string { return c.addr }

// Done is closed when the receive loop has exited and the player is gone.
func (c *Client) Done() <-chan struct{} { return c.done }

// Run is the perpetual receive loop. On any failure the handler unregisters
// itself and terminates; there is no reconnect.
func (c *Client) Run() {
	defer c.teardown()

	for {
		b, err := c.conn.Recv()
		if err != nil {
			log.Info().Err(err).Int("client_id", c.id).Msg("client disconnected")
			return
		}
		env, err := protocol.DecodeEnvelope(b)
		if err != nil {
			log.Warn().Err(err).Int("client_id", c.id).Msg("dropping undecodable client message")
			continue
		}
		c.handleEnvelope(env)
	}
}

func (c *Client) handleEnvelope(env protocol.Envelope) {
	switch env.T {
	case protocol.MsgAnswer:
		a, err := protocol.DecodePayload[protocol.Answer](env)
		if err != nil {
			log.Warn().Err(err).Int("client_id", c.id).Msg("dropping bad answer payload")
			return
		}
		c.setAnswer(a)
	default:
		log.Warn().Str("tag", env.T).Int("client_id", c.id).Msg("unexpected client message")
	}
}

func (c *Client) teardown() {
	c.closeOnce.Do(func() {
		c.registry.Remove(c.id)
		_ = c.conn.Close()
		close(c.done)
	})
}

// setAnswer overwrites the latest-answer slot. Only one submission per round
// is honored; a second one before consumption simply replaces the first.
func (c *Client) setAnswer(a protocol.Answer) {
	c.mu.Lock()
	c.answer = &a
	c.mu.Unlock()
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// Answer reads the latest-answer slot without consuming it.
func (c *Client) Answer() (protocol.Answer, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.answer == nil {
		return protocol.Answer{}, false
	}
	return *c.answer, true
}

// ClearAnswer empties the slot and drains any pending ready signal. The
// coordinator calls it when granting the answer window and after scoring.
func (c *Client) ClearAnswer() {
	c.mu.Lock()
	c.answer = nil
	c.mu.Unlock()
	select {
	case <-c.ready:
	default:
	}
}

// AnswerReady fires once when a submission lands in an empty slot.
func (c *Client) AnswerReady() <-chan struct{} { return c.ready }

func (c *Client) send(tag string, payload any) error {
	b, err := protocol.Encode(tag, payload)
	if err != nil {
		return err
	}
	return c.conn.Send(b)
}

func (c *Client) SendQuestion(q protocol.QuestionPayload) error {
	return c.send(protocol.MsgQuestion, q)
}

func (c *Client) SendScoreUpdate(total int) error {
	return c.send(protocol.MsgScoreUpdate, protocol.ScoreUpdate{Score: total})
}

func (c *Client) SendEligibility() error { return c.send(protocol.MsgEligibility, nil) }
func (c *Client) SendAck() error         { return c.send(protocol.MsgAck, nil) }
func (c *Client) SendNack() error        { return c.send(protocol.MsgNack, nil) }
func (c *Client) SendCorrect() error     { return c.send(protocol.MsgCorrect, nil) }
func (c *Client) SendWrong() error       { return c.send(protocol.MsgWrong, nil) }
func (c *Client) SendTimeout() error     { return c.send(protocol.MsgTimeout, nil) }
func (c *Client) SendGameOver() error    { return c.send(protocol.MsgGameOver, nil) }
func (c *Client) SendKill() error        { return c.send(protocol.MsgKill, nil) }
