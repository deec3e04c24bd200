package base

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
)

const (
	// frameHeaderSize is the length prefix in front of every payload: the
	// payload byte count as a fixed-width unsigned integer in network byte
	// order.
	frameHeaderSize = 4

	// DefaultMaxPayloadBytes bounds a single frame payload when the
	// configuration leaves MaxPayloadBytes unset.
	DefaultMaxPayloadBytes = 8 << 20 // 8 MiB
)

// Transport error taxonomy. Every framing failure wraps one of these
// sentinels with context; match with errors.Is. A clean peer close before
// the first byte of a new frame is not part of the taxonomy and surfaces as
// plain io.EOF.
var (
	// ErrTransport means the send or receive call itself failed
	ErrTransport = errors.New("transport: i/o failure")

	// ErrConnectionClosed means the peer closed the connection after a frame
	// had started but before it completed
	ErrConnectionClosed = errors.New("transport: connection closed mid-frame")

	// ErrPayloadTooLarge means a declared or outgoing payload length exceeds
	// the configured maximum
	ErrPayloadTooLarge = errors.New("transport: payload exceeds configured maximum")

	// ErrTimeout means a configured read or write deadline expired
	ErrTimeout = errors.New("transport: i/o timeout")
)

// writeFrame writes a frame to the connection with the format:
// - 4 bytes: payload length (uint32, big endian)
// - N bytes: payload
// Oversized payloads are refused before any byte hits the wire. The
// net.Buffers write loops internally until header and payload are fully
// transferred.
func writeFrame(conn net.Conn, data []byte, maxPayload uint64) error {
	if uint64(len(data)) > maxPayload {
		return fmt.Errorf("%w: payload is %d bytes, maximum is %d", ErrPayloadTooLarge, len(data), maxPayload)
	}

	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint32(header, uint32(len(data)))

	b := net.Buffers{header, data}
	if _, err := b.WriteTo(conn); err != nil {
		return classifyIOError(err)
	}
	return nil
}

// readFrame reads one frame from the connection. Both reads loop until the
// exact expected byte count arrived (io.ReadFull). The payload buffer is
// allocated sized exactly to the declared length, after the bound check, so
// an oversized header is rejected without reading or allocating its payload.
//
// A clean peer close before the first header byte returns plain io.EOF; a
// close after that maps to ErrConnectionClosed.
func readFrame(conn net.Conn, maxPayload uint64) ([]byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(conn, header[:]); err != nil {
		if err == io.EOF {
			// No frame had started, clean end of stream
			return nil, io.EOF
		}
		return nil, classifyIOError(err)
	}

	length := uint64(binary.BigEndian.Uint32(header[:]))
	if length > maxPayload {
		return nil, fmt.Errorf("%w: peer declared %d bytes, maximum is %d", ErrPayloadTooLarge, length, maxPayload)
	}

	if length == 0 {
		return []byte{}, nil
	}

	data := make([]byte, length)
	if _, err := io.ReadFull(conn, data); err != nil {
		return nil, classifyIOError(err)
	}
	return data, nil
}

// classifyIOError maps raw socket errors onto the transport taxonomy. EOF at
// this point is always mid-frame (the clean-close case is handled before the
// header is parsed).
func classifyIOError(err error) error {
	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}
