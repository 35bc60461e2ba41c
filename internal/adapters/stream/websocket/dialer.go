package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	closeWriteTimeout       = time.Second
	maxMessageBytes         = 1 << 20
)

// Dialer opens the receive-only sensor stream.
type Dialer struct {
	URL              string
	HandshakeTimeout time.Duration
	Header           http.Header
}

func (d Dialer) Dial(ctx context.Context) (ports.StreamConn, error) {
	if d.URL == "" {
		return nil, errors.New("stream url is required")
	}

	timeout := d.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: timeout,
		Proxy:            http.ProxyFromEnvironment,
	}

	conn, resp, err := dialer.DialContext(ctx, d.URL, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("websocket dial %s: status %d: %w", d.URL, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("websocket dial %s: %w", d.URL, err)
	}
	conn.SetReadLimit(maxMessageBytes)

	return &Conn{conn: conn}, nil
}

// Conn adapts a gorilla connection to ports.StreamConn.
type Conn struct {
	conn *websocket.Conn

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// ReadMessage returns the next data frame. A normal or going-away closure,
// from either side, is reported as domain.ErrStreamClosed.
func (c *Conn) ReadMessage() ([]byte, error) {
	_, message, err := c.conn.ReadMessage()
	if err == nil {
		return message, nil
	}

	if c.closed.Load() {
		return nil, fmt.Errorf("%w: closed locally", domain.ErrStreamClosed)
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return nil, fmt.Errorf("%w: %w", domain.ErrStreamClosed, err)
	}
	return nil, fmt.Errorf("websocket read: %w", err)
}

// Close sends a close frame and releases the socket. It is safe to call more
// than once and concurrently with ReadMessage.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(closeWriteTimeout),
		)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
