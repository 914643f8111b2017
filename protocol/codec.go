package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks input that could not be decoded. Callers on the
// receive path drop the message and keep going; it is never fatal.
var ErrMalformed = errors.New("malformed message")

// Encode wraps payload in an envelope with the given tag. A nil payload
// produces a signal-only envelope.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("encode: empty envelope tag")
	}
	var e = Envelope{T: t}
	if payload != nil {
		pb, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		e.P = pb
	}
	return json.Marshal(e)
}

// EncodeSignal builds an envelope carrying nothing but its tag.
func EncodeSignal(t string) ([]byte, error) {
	return Encode(t, nil)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("%w: empty envelope", ErrMalformed)
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if e.T == "" {
		return Envelope{}, fmt.Errorf("%w: envelope without tag", ErrMalformed)
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	// Zero value of whatever T is, so decode errors return something usable.
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w: empty payload for tag %q", ErrMalformed, env.T)
	}
	if err := json.Unmarshal(env.P, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}
