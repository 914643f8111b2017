package buzz

import (
	"context"
	"errors"
	"net"

	"github.com/rs/zerolog/log"

	"trivia/protocol"
)

// Run drains the shared unreliable socket until ctx is cancelled. Malformed
// datagrams are dropped and logged, never fatal. Takes ownership of conn.
func (a *Arbitrator) Run(ctx context.Context, conn net.PacketConn) error {
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	buf := make([]byte, 512)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		sig, err := protocol.DecodeBuzz(buf[:n])
		if err != nil {
			log.Warn().Err(err).Stringer("from", from).Msg("dropping undecodable buzz datagram")
			continue
		}
		a.Accept(sig)
	}
}
