package base

import (
	"fmt"
	"io"
	"net"
	"time"

	"github.com/klind25/teller/rpc/common"
	"github.com/klind25/teller/rpc/serializer"
)

// Channel wraps one connected stream socket and speaks the framed
// request/response protocol over it: every exchange is exactly one request
// frame followed by exactly one response frame, with no pipelining. The
// client side walks IDLE -> AWAITING_RESPONSE -> IDLE; the server side
// IDLE -> AWAITING_REQUEST_HANDLING -> IDLE.
//
// A Channel is not safe for concurrent use. All operations block, so callers
// must serialize access (the pooled client transport guards each channel
// with a mutex, the server runs one goroutine per channel).
type Channel struct {
	conn       net.Conn
	serializer serializer.IRPCSerializer
	maxPayload uint64
	timeout    time.Duration
}

// NewChannel wraps an established connection. A maxPayloadBytes of zero
// applies DefaultMaxPayloadBytes; a timeout of zero disables read/write
// deadlines.
func NewChannel(conn net.Conn, s serializer.IRPCSerializer, maxPayloadBytes uint64, timeout time.Duration) (*Channel, error) {
	if conn == nil {
		return nil, fmt.Errorf("%w: nil connection", ErrTransport)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: nil serializer", ErrTransport)
	}
	if maxPayloadBytes == 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &Channel{
		conn:       conn,
		serializer: s,
		maxPayload: maxPayloadBytes,
		timeout:    timeout,
	}, nil
}

// SendRequest performs the client half of one exchange: encode the request,
// frame and send it, then block until the complete response frame arrived
// and decode it. On any error the channel state is unknown and the channel
// must be re-established before further calls.
func (c *Channel) SendRequest(req *common.Request) (*common.Response, error) {
	payload, err := c.serializer.SerializeRequest(*req)
	if err != nil {
		return nil, err
	}

	if err := c.setWriteDeadline(); err != nil {
		return nil, err
	}
	if err := writeFrame(c.conn, payload, c.maxPayload); err != nil {
		return nil, err
	}

	if err := c.setReadDeadline(); err != nil {
		return nil, err
	}
	respPayload, err := readFrame(c.conn, c.maxPayload)
	if err != nil {
		if err == io.EOF {
			// A request is in flight, so even a clean close is a broken
			// exchange from the client's point of view
			return nil, fmt.Errorf("%w: peer closed before responding", ErrConnectionClosed)
		}
		return nil, err
	}

	var resp common.Response
	if err := c.serializer.DeserializeResponse(respPayload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReceiveRequest performs the first server half of one exchange: block until
// a complete request frame arrived and decode it. A clean peer close before
// any frame byte surfaces as plain io.EOF so the caller can tell a departed
// client from a broken exchange.
func (c *Channel) ReceiveRequest() (*common.Request, error) {
	if err := c.setReadDeadline(); err != nil {
		return nil, err
	}
	payload, err := readFrame(c.conn, c.maxPayload)
	if err != nil {
		return nil, err
	}

	var req common.Request
	if err := c.serializer.DeserializeRequest(payload, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// SendResponse performs the second server half of one exchange: encode the
// response, frame and send it.
func (c *Channel) SendResponse(resp *common.Response) error {
	payload, err := c.serializer.SerializeResponse(*resp)
	if err != nil {
		return err
	}

	if err := c.setWriteDeadline(); err != nil {
		return err
	}
	return writeFrame(c.conn, payload, c.maxPayload)
}

// PeerAddress returns the remote endpoint of the channel ("host:port" for
// tcp, the socket path for unix).
func (c *Channel) PeerAddress() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}

// Close tears down the underlying connection. Closing is the only
// cancellation mechanism: any blocked read or write on the channel unblocks
// with an error.
func (c *Channel) Close() error {
	return c.conn.Close()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

func (c *Channel) setReadDeadline() error {
	if c.timeout <= 0 {
		return nil
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("%w: set read deadline: %v", ErrTransport, err)
	}
	return nil
}

func (c *Channel) setWriteDeadline() error {
	if c.timeout <= 0 {
		return nil
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("%w: set write deadline: %v", ErrTransport, err)
	}
	return nil
}
