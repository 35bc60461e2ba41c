package cmd

import (
	"sync"

	"github.com/bnema/sensor-access-cli/internal/application"
)

// viewFeed forwards orchestrator snapshots to one consumer. A lagging
// consumer loses the oldest pending snapshot, never the newest.
type viewFeed struct {
	mu       sync.Mutex
	updates  chan application.SessionView
	closed   bool
	limit    uint64
	onLimit  func()
	limitHit bool
}

// newViewFeed calls onLimit once when a stream has delivered limit records;
// zero disables the limit.
func newViewFeed(size int, limit uint64, onLimit func()) *viewFeed {
	return &viewFeed{
		updates: make(chan application.SessionView, size),
		limit:   limit,
		onLimit: onLimit,
	}
}

func (f *viewFeed) Updates() <-chan application.SessionView {
	return f.updates
}

func (f *viewFeed) push(view application.SessionView) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	select {
	case f.updates <- view:
	default:
		select {
		case <-f.updates:
		default:
		}
		f.updates <- view
	}

	hit := f.limit > 0 && !f.limitHit && view.RecordsReceived >= f.limit
	if hit {
		f.limitHit = true
	}
	f.mu.Unlock()

	if hit && f.onLimit != nil {
		f.onLimit()
	}
}

func (f *viewFeed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	close(f.updates)
}
