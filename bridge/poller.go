package bridge

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
)

// pollPayment polls the node's payment table until the payment reaches a
// terminal status or the deadline passes. A payment the node does not know
// right after sending it is a consistency fault, not a transient state, so
// a lookup miss is fatal. A payment still pending at the deadline is not an
// error: the record and StatePending are returned and the caller reports
// the payment as in flight.
func (b *Bridge) pollPayment(ctx context.Context, id node.PaymentID) (*node.PaymentRecord, lightning.QuoteState, error) {
	deadline := b.clock.Now().Add(b.pollTimeout)

	for {
		record, err := b.node.Payment(ctx, id)
		if err != nil {
			if errors.Is(err, node.ErrPaymentNotFound) {
				return nil, "", fmt.Errorf("%w: %s", lightning.ErrPaymentNotFound, id)
			}

			return nil, "", fmt.Errorf("looking up payment %s: %w", id, err)
		}

		switch record.Status {
		case node.StatusSucceeded:
			return record, lightning.StatePaid, nil
		case node.StatusFailed:
			log.WithField("payment_id", id.String()).Error("outgoing payment failed")

			return record, lightning.StateFailed, nil
		}

		if !b.clock.Now().Before(deadline) {
			log.WithField("payment_id", id.String()).
				Warn("outgoing payment still pending at deadline, no longer waiting")

			return record, lightning.StatePending, nil
		}

		timer := b.clock.Timer(b.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil, "", ctx.Err()
		case <-timer.C:
		}
	}
}
