package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/metrics"
	"github.com/bnema/sensor-access-cli/internal/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type StreamEventKind string

const (
	StreamEventStatus StreamEventKind = "status"
	StreamEventRecord StreamEventKind = "record"
)

// StreamEvent reports a status change or an accepted record. Events of one
// connection are delivered in order from a single goroutine.
type StreamEvent struct {
	Kind     StreamEventKind
	StreamID string
	Status   domain.StreamStatus
	Record   domain.SensorRecord
	Err      error
}

// StreamHandle refers to one opened connection.
type StreamHandle struct {
	id      string
	session *StreamSession
	done    <-chan struct{}
}

func (h *StreamHandle) ID() string {
	return h.id
}

// Done is closed once the connection's read loop has exited.
func (h *StreamHandle) Done() <-chan struct{} {
	return h.done
}

func (h *StreamHandle) Close() error {
	return h.session.closeStream(h.id)
}

// StreamSession owns the live connection and the LiveBuffer. Only the read
// loop of the current connection writes to the buffer.
type StreamSession struct {
	dialer  ports.StreamDialer
	metrics *metrics.Collectors
	log     *logrus.Entry

	mu       sync.Mutex
	onEvent  func(StreamEvent)
	id       string
	status   domain.StreamStatus
	buffer   *domain.LiveBuffer
	received uint64
	conn     ports.StreamConn
	err      error
	loopDone chan struct{}
}

func NewStreamSession(dialer ports.StreamDialer, collectors *metrics.Collectors, log *logrus.Entry) *StreamSession {
	return &StreamSession{
		dialer:  dialer,
		metrics: collectors,
		log:     logging.Component(log, "stream"),
		status:  domain.StreamIdle,
		buffer:  domain.NewLiveBuffer(),
	}
}

// OnEvent registers the single event consumer. It must not block for long:
// it runs on the read loop.
func (s *StreamSession) OnEvent(fn func(StreamEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onEvent = fn
}

func (s *StreamSession) Status() domain.StreamStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *StreamSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Records returns a copy of the live buffer, newest first.
func (s *StreamSession) Records() []domain.SensorRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buffer.Snapshot()
}

// Snapshot returns the buffer copy together with the number of records
// accepted since the stream connected, read atomically.
func (s *StreamSession) Snapshot() ([]domain.SensorRecord, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buffer.Snapshot(), s.received
}

// Open dials the stream for a granted session. ctx bounds the dial only; the
// connection lives until Close, a remote close or a transport error.
func (s *StreamSession) Open(ctx context.Context, grant domain.AccessGrant) (*StreamHandle, error) {
	if !grant.Granted {
		return nil, fmt.Errorf("%w: no active access grant", domain.ErrAccessDenied)
	}
	if s.dialer == nil {
		return nil, fmt.Errorf("%w: no stream dialer", domain.ErrTransportError)
	}

	s.mu.Lock()
	if s.status == domain.StreamConnecting || s.status == domain.StreamConnected {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: stream already open", domain.ErrActionInProgress)
	}
	id := uuid.NewString()
	s.id = id
	s.status = domain.StreamConnecting
	s.err = nil
	s.conn = nil
	s.loopDone = make(chan struct{})
	loopDone := s.loopDone
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{"stream_id": id, "tx_hash": grant.TxHash})
	s.emit(StreamEvent{Kind: StreamEventStatus, StreamID: id, Status: domain.StreamConnecting})
	log.Info("connecting to stream")

	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		close(loopDone)
		s.onTransportError(id, err)
		return nil, fmt.Errorf("%w: dial: %w", domain.ErrTransportError, err)
	}

	s.mu.Lock()
	if s.id != id || s.status != domain.StreamConnecting {
		s.mu.Unlock()
		close(loopDone)
		_ = conn.Close()
		return nil, fmt.Errorf("%w: closed while connecting", domain.ErrStreamClosed)
	}
	s.conn = conn
	s.mu.Unlock()

	s.onConnected(id)
	go s.readLoop(id, conn, loopDone)

	return &StreamHandle{id: id, session: s, done: loopDone}, nil
}

// Close releases the current connection. Closing an idle or already closed
// session is a no-op.
func (s *StreamSession) Close() error {
	s.mu.Lock()
	id := s.id
	s.mu.Unlock()

	return s.closeStream(id)
}

func (s *StreamSession) closeStream(id string) error {
	s.mu.Lock()
	if s.id != id || s.status == domain.StreamIdle || s.status.Terminal() {
		s.mu.Unlock()
		return nil
	}
	conn := s.conn
	s.conn = nil
	s.status = domain.StreamClosed
	s.mu.Unlock()

	var err error
	if conn != nil {
		if closeErr := conn.Close(); closeErr != nil {
			err = fmt.Errorf("close stream: %w", closeErr)
		}
	}

	s.log.WithField("stream_id", id).Info("stream closed")
	s.emit(StreamEvent{Kind: StreamEventStatus, StreamID: id, Status: domain.StreamClosed})
	return err
}

func (s *StreamSession) readLoop(id string, conn ports.StreamConn, loopDone chan struct{}) {
	defer close(loopDone)

	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			if errors.Is(err, domain.ErrStreamClosed) {
				s.onClosed(id)
			} else {
				s.onTransportError(id, err)
			}
			return
		}
		s.onMessage(id, raw)
	}
}

// onConnected clears the buffer so no records carry over between sessions.
func (s *StreamSession) onConnected(id string) {
	s.mu.Lock()
	if s.id != id || s.status != domain.StreamConnecting {
		s.mu.Unlock()
		return
	}
	s.status = domain.StreamConnected
	s.buffer.Reset()
	s.received = 0
	s.mu.Unlock()

	s.log.WithField("stream_id", id).Info("stream connected")
	s.emit(StreamEvent{Kind: StreamEventStatus, StreamID: id, Status: domain.StreamConnected})
}

func (s *StreamSession) onMessage(id string, raw []byte) {
	record, err := domain.ParseSensorRecord(raw)
	if err != nil {
		s.metrics.RecordDropped()
		s.log.WithError(err).WithFields(logrus.Fields{
			"stream_id": id,
			"bytes":     len(raw),
		}).Warn("dropping malformed stream payload")
		return
	}

	s.mu.Lock()
	if s.id != id || s.status != domain.StreamConnected {
		s.mu.Unlock()
		return
	}
	s.buffer.Push(record)
	s.received++
	s.mu.Unlock()

	s.metrics.RecordAccepted()
	s.emit(StreamEvent{Kind: StreamEventRecord, StreamID: id, Status: domain.StreamConnected, Record: record})
}

func (s *StreamSession) onTransportError(id string, cause error) {
	err := fmt.Errorf("%w: %w", domain.ErrTransportError, cause)
	if !s.finish(id, domain.StreamError, err) {
		return
	}

	s.log.WithError(cause).WithField("stream_id", id).Error("stream transport error")
	s.emit(StreamEvent{Kind: StreamEventStatus, StreamID: id, Status: domain.StreamError, Err: err})
}

func (s *StreamSession) onClosed(id string) {
	if !s.finish(id, domain.StreamClosed, nil) {
		return
	}

	s.log.WithField("stream_id", id).Info("stream closed by remote")
	s.emit(StreamEvent{Kind: StreamEventStatus, StreamID: id, Status: domain.StreamClosed})
}

// finish moves a live connection to a terminal status and releases it. It
// reports false when the connection was already finished or replaced.
func (s *StreamSession) finish(id string, status domain.StreamStatus, err error) bool {
	s.mu.Lock()
	if s.id != id || s.status == domain.StreamIdle || s.status.Terminal() {
		s.mu.Unlock()
		return false
	}
	conn := s.conn
	s.conn = nil
	s.status = status
	s.err = err
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	return true
}

func (s *StreamSession) emit(event StreamEvent) {
	s.mu.Lock()
	fn := s.onEvent
	s.mu.Unlock()

	if fn != nil {
		fn(event)
	}
}
