package ports

import "context"

// StreamDialer opens the receive-only live data connection.
type StreamDialer interface {
	Dial(ctx context.Context) (StreamConn, error)
}

// StreamConn is a single live connection. ReadMessage blocks until a message
// arrives; it returns an error wrapping domain.ErrStreamClosed on a normal
// closure and any other error on transport failure. Close unblocks a pending
// ReadMessage.
type StreamConn interface {
	ReadMessage() ([]byte, error)
	Close() error
}
