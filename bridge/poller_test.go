package bridge

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
)

type pollResult struct {
	record *node.PaymentRecord
	state  lightning.QuoteState
	err    error
}

// runPoll starts pollPayment on a mock clock and advances time in interval
// steps until the poller returns.
func runPoll(t *testing.T, b *Bridge, mock *clock.Mock, id node.PaymentID) pollResult {
	t.Helper()

	done := make(chan pollResult, 1)
	go func() {
		record, state, err := b.pollPayment(context.Background(), id)
		done <- pollResult{record: record, state: state, err: err}
	}()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case result := <-done:
			return result
		case <-deadline:
			t.Fatal("poller did not finish")
		default:
			time.Sleep(time.Millisecond)
			mock.Add(b.pollInterval)
		}
	}
}

func TestPollPayment_SucceedsAfterPending(t *testing.T) {
	fake := newFakeNode()
	b := testBridge(t, fake)
	mock := clock.NewMock()
	b.clock = mock

	id := paymentID(7)
	amount := uint64(5000)
	fake.addPayment(&node.PaymentRecord{
		ID:         id,
		Kind:       node.Bolt11Kind{Hash: hash32(7)},
		Direction:  node.DirectionOutbound,
		AmountMsat: &amount,
	})
	fake.statusID = id
	fake.statusSeq = []node.PaymentStatus{
		node.StatusPending,
		node.StatusPending,
		node.StatusPending,
		node.StatusSucceeded,
	}

	result := runPoll(t, b, mock, id)
	require.NoError(t, result.err)
	require.Equal(t, lightning.StatePaid, result.state)
	require.Equal(t, node.StatusSucceeded, result.record.Status)
}

func TestPollPayment_Failed(t *testing.T) {
	fake := newFakeNode()
	b := testBridge(t, fake)
	mock := clock.NewMock()
	b.clock = mock

	id := paymentID(8)
	fake.addPayment(&node.PaymentRecord{
		ID:        id,
		Kind:      node.Bolt11Kind{Hash: hash32(8)},
		Direction: node.DirectionOutbound,
		Status:    node.StatusFailed,
	})

	result := runPoll(t, b, mock, id)
	require.NoError(t, result.err)
	require.Equal(t, lightning.StateFailed, result.state)
}

func TestPollPayment_PendingAtDeadline(t *testing.T) {
	fake := newFakeNode()
	b := testBridge(t, fake)
	mock := clock.NewMock()
	b.clock = mock

	id := paymentID(9)
	fake.addPayment(&node.PaymentRecord{
		ID:        id,
		Kind:      node.Bolt11Kind{Hash: hash32(9)},
		Direction: node.DirectionOutbound,
		Status:    node.StatusPending,
	})

	result := runPoll(t, b, mock, id)
	require.NoError(t, result.err)
	require.Equal(t, lightning.StatePending, result.state)
	require.NotNil(t, result.record)
}

func TestPollPayment_NotFoundIsFatal(t *testing.T) {
	fake := newFakeNode()
	b := testBridge(t, fake)
	b.clock = clock.NewMock()

	_, _, err := b.pollPayment(context.Background(), paymentID(10))
	require.ErrorIs(t, err, lightning.ErrPaymentNotFound)
}

func TestPollPayment_ContextCancelled(t *testing.T) {
	fake := newFakeNode()
	b := testBridge(t, fake)
	mock := clock.NewMock()
	b.clock = mock

	id := paymentID(11)
	fake.addPayment(&node.PaymentRecord{
		ID:     id,
		Kind:   node.Bolt11Kind{Hash: hash32(11)},
		Status: node.StatusPending,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := b.pollPayment(ctx, id)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not observe cancellation")
	}
}
