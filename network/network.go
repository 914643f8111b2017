// Package network binds the two channels the game runs on: the reliable
// per-player websocket stream and the shared unreliable buzz socket.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"trivia/buzz"
	"trivia/score"
	"trivia/session"
)

const (
	readLimit    = 1 << 20
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 25 * time.Second
)

type Server struct {
	host    string
	tcpPort int
	udpPort int

	registry *session.Registry
	ledger   *score.Ledger
	arb      *buzz.Arbitrator

	upgrader websocket.Upgrader
	httpSrv  *http.Server
	tcpLn    net.Listener
	udpConn  net.PacketConn
}

func NewServer(host string, tcpPort, udpPort int, registry *session.Registry, ledger *score.Ledger, arb *buzz.Arbitrator) *Server {
	s := &Server{
		host:     host,
		tcpPort:  tcpPort,
		udpPort:  udpPort,
		registry: registry,
		ledger:   ledger,
		arb:      arb,
		upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Handler: mux}
	return s
}

// Bind opens both sockets. If either fails the other is released and the
// error is fatal to startup; the game cannot run on one channel.
func (s *Server) Bind() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.tcpPort))
	if err != nil {
		return fmt.Errorf("bind reliable channel: %w", err)
	}
	udp, err := net.ListenPacket("udp", fmt.Sprintf("%s:%d", s.host, s.udpPort))
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("bind unreliable channel: %w", err)
	}
	s.tcpLn = ln
	s.udpConn = udp
	log.Info().
		Str("host", s.host).
		Int("tcp_port", s.tcpPort).
		Int("udp_port", s.udpPort).
		Msg("channels bound")
	return nil
}

// Run serves both channels until ctx is cancelled. Bind must have succeeded.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() { errCh <- s.arb.Run(ctx, s.udpConn) }()
	go func() {
		err := s.httpSrv.Serve(s.tcpLn)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		<-ctx.Done()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.httpSrv.Shutdown(shutdownCtx)
	return nil
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	// Basic timeouts + pong handling keeps connections healthy.
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	wc := newWSConn(conn)
	cl := s.registry.Add(wc, host)
	s.ledger.Init(cl.ID())
	_ = cl.SendScoreUpdate(0)

	go wc.pingLoop(cl.Done())

	// The handler goroutine is the client's receive loop.
	cl.Run()
}
