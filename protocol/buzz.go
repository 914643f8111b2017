package protocol

import (
	"encoding/binary"
	"fmt"
)

// BuzzSignal is the content of one buzz datagram on the unreliable channel:
// the client's send time in milliseconds since epoch plus the origin address
// it registered under. Datagrams carry no other identity.
type BuzzSignal struct {
	Timestamp int64
	Addr      string
}

// buzzHeaderLen is the fixed 8-byte big-endian timestamp prefix.
const buzzHeaderLen = 8

func EncodeBuzz(s BuzzSignal) []byte {
	b := make([]byte, buzzHeaderLen+len(s.Addr))
	binary.BigEndian.PutUint64(b, uint64(s.Timestamp))
	copy(b[buzzHeaderLen:], s.Addr)
	return b
}

func DecodeBuzz(b []byte) (BuzzSignal, error) {
	if len(b) <= buzzHeaderLen {
		return BuzzSignal{}, fmt.Errorf("%w: buzz datagram of %d bytes", ErrMalformed, len(b))
	}
	return BuzzSignal{
		Timestamp: int64(binary.BigEndian.Uint64(b)),
		Addr:      string(b[buzzHeaderLen:]),
	}, nil
}
