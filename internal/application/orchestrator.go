package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/logging"
	"github.com/bnema/sensor-access-cli/internal/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const streamReleaseGrace = 2 * time.Second

// Components are the lifecycle steps the orchestrator sequences.
type Components struct {
	Config   *ConfigLoader
	Wallet   *WalletSession
	Purchase *PurchaseFlow
	Verifier *AccessVerifier
	Stream   *StreamSession
}

type Option func(*AccessOrchestrator)

// WithOnChange registers fn to receive a snapshot after every state change.
// fn may run on the stream read loop and must not call back into actions.
func WithOnChange(fn func(SessionView)) Option {
	return func(o *AccessOrchestrator) {
		o.onChange = fn
	}
}

func WithHistory(history *PurchaseHistory) Option {
	return func(o *AccessOrchestrator) {
		o.history = history
	}
}

func WithMetrics(collectors *metrics.Collectors) Option {
	return func(o *AccessOrchestrator) {
		o.metrics = collectors
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(o *AccessOrchestrator) {
		o.baseLog = log
	}
}

// AccessOrchestrator owns the session phase and sequences the purchase,
// verification and streaming steps. One user action runs at a time.
type AccessOrchestrator struct {
	config   *ConfigLoader
	wallet   *WalletSession
	purchase *PurchaseFlow
	verifier *AccessVerifier
	stream   *StreamSession
	history  *PurchaseHistory
	metrics  *metrics.Collectors
	onChange func(SessionView)
	baseLog  *logrus.Entry
	log      *logrus.Entry

	id   string
	busy atomic.Bool

	// notifyMu keeps snapshots delivered in the order they were taken.
	notifyMu sync.Mutex

	mu           sync.Mutex
	phase        domain.Phase
	descriptor   domain.ContractDescriptor
	account      domain.Address
	receipt      *domain.PurchaseReceipt
	unverified   bool
	grant        *domain.AccessGrant
	lastErr      *domain.SessionError
	streamID     string
	handle       *StreamHandle
	cancelAction context.CancelFunc
	closed       bool
}

func NewAccessOrchestrator(components Components, opts ...Option) *AccessOrchestrator {
	o := &AccessOrchestrator{
		config:   components.Config,
		wallet:   components.Wallet,
		purchase: components.Purchase,
		verifier: components.Verifier,
		stream:   components.Stream,
		id:       uuid.NewString(),
		phase:    domain.PhaseUnconfigured,
	}
	for _, opt := range opts {
		opt(o)
	}

	o.log = logging.Component(o.baseLog, "orchestrator").WithField("session_id", o.id)
	o.stream.OnEvent(o.handleStreamEvent)

	return o
}

func (o *AccessOrchestrator) ID() string {
	return o.id
}

// Start loads the contract descriptor. A failure is final for the session.
func (o *AccessOrchestrator) Start(ctx context.Context) error {
	ctx, end, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	defer end()

	o.mu.Lock()
	phase := o.phase
	o.mu.Unlock()

	switch phase {
	case domain.PhaseUnconfigured:
	case domain.PhaseFailed:
		_, err := o.config.Load(ctx)
		if err == nil {
			err = fmt.Errorf("%w: session failed", domain.ErrConfigUnavailable)
		}
		o.fail(err)
		return err
	default:
		return nil
	}

	descriptor, err := o.config.Load(ctx)
	if err != nil {
		o.settle(domain.PhaseFailed, err)
		return err
	}

	o.mu.Lock()
	o.descriptor = descriptor
	err = o.moveLocked(domain.PhaseReady)
	o.mu.Unlock()
	o.notify()

	return err
}

// ConnectWallet asks the provider for account access. It is a no-op once a
// wallet is connected.
func (o *AccessOrchestrator) ConnectWallet(ctx context.Context) error {
	ctx, end, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	defer end()

	o.mu.Lock()
	switch o.phase {
	case domain.PhaseWalletConnected, domain.PhaseStreaming, domain.PhaseDenied:
		o.mu.Unlock()
		return nil
	}
	if err := o.moveLocked(domain.PhaseWalletConnecting); err != nil {
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	descriptor := o.descriptor
	o.mu.Unlock()
	o.notify()

	identity, err := o.wallet.Connect(ctx, descriptor)
	if err != nil {
		o.settle(domain.PhaseReady, err)
		return err
	}

	o.mu.Lock()
	o.account = identity.Account
	err = o.moveLocked(domain.PhaseWalletConnected)
	o.mu.Unlock()
	o.notify()

	return err
}

// Purchase buys access, verifies it with the backend and opens the stream.
// Any stream from an earlier grant is closed first.
func (o *AccessOrchestrator) Purchase(ctx context.Context) error {
	ctx, end, err := o.begin(ctx, true)
	if err != nil {
		return err
	}
	defer end()

	o.mu.Lock()
	if err := o.moveLocked(domain.PhasePurchasing); err != nil {
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	descriptor := o.descriptor
	o.receipt = nil
	o.unverified = false
	o.grant = nil
	o.mu.Unlock()

	if err := o.releaseStream(); err != nil {
		o.log.WithError(err).Warn("closing previous stream")
	}
	o.notify()

	identity, _ := o.wallet.Identity()
	receipt, err := o.purchase.Purchase(ctx, identity, descriptor)
	if err != nil {
		o.settle(domain.PhaseWalletConnected, err)
		return err
	}

	if o.history != nil {
		if err := o.history.RecordConfirmed(ctx, identity.Account, descriptor.Address, receipt); err != nil {
			o.log.WithError(err).WithField("tx_hash", receipt.TxHash).Warn("recording purchase")
		}
	}

	o.mu.Lock()
	o.receipt = &receipt
	o.unverified = true
	err = o.moveLocked(domain.PhaseVerifying)
	o.mu.Unlock()
	o.notify()
	if err != nil {
		return err
	}

	return o.verifyAndOpen(ctx, receipt)
}

// RetryVerification verifies the last confirmed receipt again after the
// verification endpoint was unreachable. It is refused after a denial.
func (o *AccessOrchestrator) RetryVerification(ctx context.Context) error {
	ctx, end, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	defer end()

	o.mu.Lock()
	if o.receipt == nil || !o.unverified {
		err := fmt.Errorf("%w: no unverified purchase to verify", domain.ErrInvalidTransition)
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	if err := o.moveLocked(domain.PhaseVerifying); err != nil {
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	receipt := *o.receipt
	o.mu.Unlock()
	o.notify()

	return o.verifyAndOpen(ctx, receipt)
}

// OpenStream reopens the stream under the current grant.
func (o *AccessOrchestrator) OpenStream(ctx context.Context) error {
	ctx, end, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	defer end()

	o.mu.Lock()
	if o.grant == nil || !o.grant.Granted {
		err := fmt.Errorf("%w: no active access grant, purchase required", domain.ErrAccessDenied)
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	if o.phase != domain.PhaseStreaming {
		err := fmt.Errorf("%w: cannot open stream in phase %s", domain.ErrInvalidTransition, o.phase)
		o.lastErr = domain.NewSessionError(err)
		o.mu.Unlock()
		o.notify()
		return err
	}
	grant := *o.grant
	o.mu.Unlock()

	return o.openStream(ctx, grant)
}

// Disconnect closes the stream, drops the grant and returns to the connected
// wallet. A grant covers one stream session, so streaming again needs a new
// purchase.
func (o *AccessOrchestrator) Disconnect() error {
	_, end, err := o.begin(context.Background(), false)
	if err != nil {
		return err
	}
	defer end()

	closeErr := o.releaseStream()

	o.mu.Lock()
	o.grant = nil
	if o.phase == domain.PhaseStreaming || o.phase == domain.PhaseDenied {
		o.receipt = nil
		o.unverified = false
		err = o.moveLocked(domain.PhaseWalletConnected)
	}
	o.mu.Unlock()
	o.notify()

	return errors.Join(closeErr, err)
}

// Shutdown cancels the running action and releases the stream from any phase.
// Calling it again is a no-op.
func (o *AccessOrchestrator) Shutdown() error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	cancel := o.cancelAction
	handle := o.handle
	o.streamID = ""
	o.handle = nil
	o.grant = nil
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	err := o.stream.Close()
	if handle != nil {
		waitReleased(handle, o.log)
	}

	o.log.Info("session shut down")
	o.notify()
	return err
}

func (o *AccessOrchestrator) verifyAndOpen(ctx context.Context, receipt domain.PurchaseReceipt) error {
	grant, err := o.verifier.Verify(ctx, receipt.TxHash)
	if err != nil {
		o.settle(domain.PhaseWalletConnected, err)
		return err
	}

	if o.history != nil {
		if err := o.history.RecordVerdict(ctx, grant); err != nil {
			o.log.WithError(err).WithField("tx_hash", grant.TxHash).Warn("recording verification")
		}
	}

	if !grant.Granted {
		err := deniedError(grant)
		o.mu.Lock()
		o.unverified = false
		o.settleLocked(domain.PhaseDenied, err)
		o.mu.Unlock()
		o.notify()
		return err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return domain.ErrSessionClosed
	}
	o.unverified = false
	o.grant = &grant
	err = o.moveLocked(domain.PhaseStreaming)
	o.mu.Unlock()
	o.notify()
	if err != nil {
		return err
	}

	return o.openStream(ctx, grant)
}

func (o *AccessOrchestrator) openStream(ctx context.Context, grant domain.AccessGrant) error {
	handle, err := o.stream.Open(ctx, grant)
	if err != nil {
		if errors.Is(err, domain.ErrStreamClosed) && o.isClosed() {
			return domain.ErrSessionClosed
		}
		// transport errors reach LastError through the stream event
		if !errors.Is(err, domain.ErrTransportError) {
			o.fail(err)
		}
		return err
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		// Shutdown ran while dialing and found nothing to release.
		closeErr := handle.Close()
		waitReleased(handle, o.log)
		return errors.Join(domain.ErrSessionClosed, closeErr)
	}
	o.handle = handle
	o.mu.Unlock()

	return nil
}

// releaseStream closes the stream on the caller's behalf; its closing event
// is not treated as a remote close.
func (o *AccessOrchestrator) releaseStream() error {
	o.mu.Lock()
	o.streamID = ""
	o.handle = nil
	o.mu.Unlock()

	return o.stream.Close()
}

func (o *AccessOrchestrator) handleStreamEvent(event StreamEvent) {
	o.mu.Lock()
	switch {
	case event.Kind == StreamEventRecord:
	case event.Status == domain.StreamConnecting:
		if !o.closed {
			o.streamID = event.StreamID
		}
	case event.StreamID != o.streamID:
		o.mu.Unlock()
		return
	case event.Status == domain.StreamError:
		o.streamID = ""
		o.handle = nil
		o.grant = nil
		o.lastErr = domain.NewSessionError(event.Err)
		o.log.WithError(event.Err).Warn("stream failed, access grant revoked")
	case event.Status == domain.StreamClosed:
		o.streamID = ""
		o.handle = nil
		o.grant = nil
		o.receipt = nil
		if o.phase == domain.PhaseStreaming {
			if err := o.moveLocked(domain.PhaseWalletConnected); err != nil {
				o.log.WithError(err).Error("leaving streaming after remote close")
			}
		}
		o.log.Info("stream closed by remote, access grant released")
	}
	o.mu.Unlock()

	o.notify()
}

func (o *AccessOrchestrator) View() SessionView {
	o.mu.Lock()
	view := SessionView{
		SessionID:            o.id,
		Phase:                o.phase,
		Contract:             o.descriptor.Address,
		Account:              o.account,
		CanRetryVerification: o.unverified && o.phase == domain.PhaseWalletConnected,
		Busy:                 o.busy.Load(),
	}
	if o.receipt != nil {
		receipt := *o.receipt
		view.Receipt = &receipt
	}
	if o.grant != nil {
		grant := *o.grant
		view.Grant = &grant
	}
	if o.lastErr != nil {
		lastErr := *o.lastErr
		view.LastError = &lastErr
	}
	o.mu.Unlock()

	view.StreamStatus = o.stream.Status()
	view.Records, view.RecordsReceived = o.stream.Snapshot()
	return view
}

// begin claims the single action slot and clears the previous error.
func (o *AccessOrchestrator) begin(ctx context.Context, purchase bool) (context.Context, func(), error) {
	if !o.busy.CompareAndSwap(false, true) {
		if purchase {
			return nil, nil, domain.ErrPurchaseInProgress
		}
		return nil, nil, domain.ErrActionInProgress
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		o.busy.Store(false)
		return nil, nil, domain.ErrSessionClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	o.cancelAction = cancel
	o.lastErr = nil
	o.mu.Unlock()

	end := func() {
		cancel()
		o.mu.Lock()
		o.cancelAction = nil
		o.mu.Unlock()
		o.busy.Store(false)
	}
	return ctx, end, nil
}

func (o *AccessOrchestrator) moveLocked(to domain.Phase) error {
	from := o.phase
	if err := checkTransition(from, to); err != nil {
		return err
	}

	o.phase = to
	o.metrics.Transition(string(from), string(to))
	o.log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("phase transition")
	return nil
}

func (o *AccessOrchestrator) settleLocked(to domain.Phase, cause error) {
	if err := o.moveLocked(to); err != nil {
		o.log.WithError(err).Error("settling failed action")
	}
	o.lastErr = domain.NewSessionError(cause)
	o.log.WithError(cause).WithField("phase", o.phase).Warn("action failed")
}

func (o *AccessOrchestrator) settle(to domain.Phase, cause error) {
	o.mu.Lock()
	o.settleLocked(to, cause)
	o.mu.Unlock()
	o.notify()
}

func (o *AccessOrchestrator) fail(cause error) {
	o.mu.Lock()
	o.lastErr = domain.NewSessionError(cause)
	o.mu.Unlock()
	o.log.WithError(cause).Warn("action failed")
	o.notify()
}

func (o *AccessOrchestrator) notify() {
	if o.onChange == nil {
		return
	}

	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	o.onChange(o.View())
}

func (o *AccessOrchestrator) isClosed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.closed
}

func waitReleased(handle *StreamHandle, log *logrus.Entry) {
	select {
	case <-handle.Done():
	case <-time.After(streamReleaseGrace):
		log.Warn("stream read loop did not exit in time")
	}
}

func deniedError(grant domain.AccessGrant) error {
	if grant.Reason == "" {
		return domain.ErrAccessDenied
	}
	return fmt.Errorf("%w: %s", domain.ErrAccessDenied, grant.Reason)
}
