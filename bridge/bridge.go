// Package bridge turns the event feed and payment table of an external
// Lightning node into the payment processor contract the mint consumes:
// a cancellable stream of completed incoming payments, bounded-time
// resolution of outgoing payments, fee-reserve quoting and the start/stop
// lifecycle tying it all together.
package bridge

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/btcsuite/btcd/chaincfg"
	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
	"github.com/cashubtc/mintpayd/money"
)

// Defaults for the outgoing payment poller. Both are policy parameters and
// overridable through Config.
const (
	DefaultPollTimeout  = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Config carries the static settings of a Bridge.
type Config struct {
	FeeReserve lightning.FeeReserve
	Network    lightning.Network
	// PollTimeout bounds how long MakePayment waits for a terminal payment
	// state before handing back Pending. Zero means DefaultPollTimeout.
	PollTimeout time.Duration
	// PollInterval is the pause between payment status polls. Zero means
	// DefaultPollInterval.
	PollInterval time.Duration
}

// Bridge implements lightning.Processor on top of a node.Node.
//
// It owns three independent cancellation tokens: one for the event
// ingestion loop, one for the management service, and one for the active
// wait-invoice subscription. All teardown happens in the explicit Stop
// call; there is no finalizer-driven cleanup.
type Bridge struct {
	node        node.Node
	feeReserve  lightning.FeeReserve
	chainParams *chaincfg.Params

	pollTimeout  time.Duration
	pollInterval time.Duration
	clock        clock.Clock

	notifications *broadcaster

	// waitActive mirrors whether a wait-invoice subscription is live. It is
	// written only by WaitAnyIncomingPayment and the cancellation path.
	waitActive atomic.Bool
	waitCtx    context.Context
	cancelWait context.CancelFunc

	eventsCtx    context.Context
	cancelEvents context.CancelFunc

	mgmtCtx    context.Context
	cancelMgmt context.CancelFunc

	started atomic.Bool
	stopped atomic.Bool
}

var _ lightning.Processor = (*Bridge)(nil)

// New creates a Bridge for the given node. The node is not started yet;
// call Start.
func New(n node.Node, cfg Config) (*Bridge, error) {
	params := lightning.ToChainCfgNetwork(cfg.Network)
	if params == nil {
		return nil, fmt.Errorf("unknown network %q", cfg.Network)
	}

	if cfg.PollTimeout == 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	waitCtx, cancelWait := context.WithCancel(context.Background())
	eventsCtx, cancelEvents := context.WithCancel(context.Background())
	mgmtCtx, cancelMgmt := context.WithCancel(context.Background())

	return &Bridge{
		node:          n,
		feeReserve:    cfg.FeeReserve,
		chainParams:   params,
		pollTimeout:   cfg.PollTimeout,
		pollInterval:  cfg.PollInterval,
		clock:         clock.New(),
		notifications: newBroadcaster(),
		waitCtx:       waitCtx,
		cancelWait:    cancelWait,
		eventsCtx:     eventsCtx,
		cancelEvents:  cancelEvents,
		mgmtCtx:       mgmtCtx,
		cancelMgmt:    cancelMgmt,
	}, nil
}

// Start starts the external node and the event ingestion loop.
func (b *Bridge) Start(ctx context.Context) error {
	if b.started.Swap(true) {
		return fmt.Errorf("bridge already started")
	}

	if err := b.node.Start(ctx); err != nil {
		return fmt.Errorf("starting node: %w", err)
	}

	log.Info("Node started, starting event handler")
	go b.runEvents(b.eventsCtx)

	return nil
}

// ManagementContext is the cancellation token of the management service.
// A server bound to it shuts down when the bridge stops.
func (b *Bridge) ManagementContext() context.Context {
	return b.mgmtCtx
}

// StopManagementService signals the management service to shut down. It is
// idempotent.
func (b *Bridge) StopManagementService() {
	log.Info("Stopping management service")
	b.cancelMgmt()
}

// Stop tears the bridge down: the event loop, the management service, any
// active wait-invoice stream and finally the node itself. Every step is
// best effort; a failing step is logged and the remaining steps still run.
// Stop is idempotent and is the only sanctioned teardown path.
func (b *Bridge) Stop() error {
	if b.stopped.Swap(true) {
		log.Info("Bridge already stopped")

		return nil
	}

	log.Info("Stopping bridge")

	log.Info("Cancelling event handler")
	b.cancelEvents()

	b.StopManagementService()

	if b.IsWaitInvoiceActive() {
		log.Info("Cancelling wait invoice stream")
	}
	// Cancelled unconditionally so a subscription racing Stop can never
	// leave the active flag set: its watcher sees the cancelled token.
	b.cancelWait()

	b.notifications.close()

	log.Info("Stopping node")
	if err := b.node.Stop(); err != nil {
		log.WithError(err).Error("failed to stop node")

		return fmt.Errorf("stopping node: %w", err)
	}

	log.Info("Bridge stopped")

	return nil
}

// Settings reports the static capabilities of this backend.
func (b *Bridge) Settings() lightning.Settings {
	return lightning.Settings{
		MPP:                false,
		Unit:               money.Sat,
		InvoiceDescription: true,
		Amountless:         false,
	}
}

// IsWaitInvoiceActive reports whether a wait-invoice stream is live.
func (b *Bridge) IsWaitInvoiceActive() bool {
	return b.waitActive.Load()
}

// CancelWaitInvoice cancels the active wait-invoice stream.
func (b *Bridge) CancelWaitInvoice() {
	b.cancelWait()
}

// WaitAnyIncomingPayment subscribes to completed incoming payments. The
// returned channel carries every payment notification published after the
// subscription was created and is closed when the wait-invoice token fires
// or the caller's context ends. Fails once the bridge has stopped.
func (b *Bridge) WaitAnyIncomingPayment(ctx context.Context) (<-chan lightning.WaitPaymentResponse, error) {
	if b.stopped.Load() {
		return nil, fmt.Errorf("bridge stopped")
	}

	log.Info("Starting incoming payment stream")

	b.waitActive.Store(true)

	id, ch := b.notifications.subscribe()

	go func() {
		select {
		case <-b.waitCtx.Done():
			log.Info("wait invoice stream cancelled")
		case <-ctx.Done():
			log.Info("wait invoice caller context ended")
		}
		b.waitActive.Store(false)
		b.notifications.unsubscribe(id)
	}()

	return ch, nil
}
