package application

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/stretchr/testify/mock"
)

const testABI = `[{"type":"function","name":"accessPrice","inputs":[],"outputs":[{"type":"uint256"}]},{"type":"function","name":"purchaseAccess","inputs":[],"stateMutability":"payable"}]`

func testDescriptorJSON(address string) []byte {
	return []byte(fmt.Sprintf(`{"address":%q,"abi":%s}`, address, testABI))
}

var fixedNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return fixedNow
}

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func sensorPayload(seq int) []byte {
	return []byte(fmt.Sprintf(`{"timestamp":%d,"sensor_id":"SHT20-%02d","temperature_celsius":27.5}`, seq, seq))
}

// fakeConn is an in-memory stream connection driven by the test.
type fakeConn struct {
	messages chan []byte
	failures chan error
	closed   chan struct{}

	closeOnce  sync.Once
	closeCalls atomic.Int32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		messages: make(chan []byte, 64),
		failures: make(chan error, 1),
		closed:   make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() ([]byte, error) {
	select {
	case <-c.closed:
		return nil, fmt.Errorf("read: %w", domain.ErrStreamClosed)
	default:
	}

	select {
	case msg := <-c.messages:
		return msg, nil
	case err := <-c.failures:
		return nil, err
	case <-c.closed:
		return nil, fmt.Errorf("read: %w", domain.ErrStreamClosed)
	}
}

func (c *fakeConn) Close() error {
	c.closeCalls.Add(1)
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) send(payloads ...[]byte) {
	for _, payload := range payloads {
		c.messages <- payload
	}
}

func (c *fakeConn) fail(err error) {
	c.failures <- err
}

func (c *fakeConn) closeRemote() {
	c.failures <- fmt.Errorf("peer said goodbye: %w", domain.ErrStreamClosed)
}

// fakeDialer hands out queued connections in order. onDial runs inside
// every dial, before the connection is handed out; it ignores ctx.
type fakeDialer struct {
	mu     sync.Mutex
	conns  []*fakeConn
	err    error
	dials  int
	onDial func()
}

func (d *fakeDialer) Dial(ctx context.Context) (ports.StreamConn, error) {
	d.mu.Lock()
	d.dials++
	hook := d.onDial
	d.mu.Unlock()

	if hook != nil {
		hook()
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return nil, d.err
	}
	if len(d.conns) == 0 {
		return nil, fmt.Errorf("no connection queued")
	}
	conn := d.conns[0]
	d.conns = d.conns[1:]
	return conn, nil
}

func (d *fakeDialer) setOnDial(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.onDial = fn
}

func (d *fakeDialer) queue(conns ...*fakeConn) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.conns = append(d.conns, conns...)
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.dials
}
