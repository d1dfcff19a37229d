package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
	"github.com/cashubtc/mintpayd/money"
)

// runEvents is the single consumer of the node's event cursor. It drains
// events until the context is cancelled, publishing a payment notification
// for every settled incoming payment and acknowledging every event it saw,
// handled or not.
func (b *Bridge) runEvents(ctx context.Context) {
	log.Info("Event handler loop started")

	for {
		event, err := b.node.NextEvent(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Event handler cancelled")

				return
			}
			log.WithError(err).Error("failed to retrieve node event")
			b.clock.Sleep(time.Second)

			continue
		}

		switch e := event.(type) {
		case node.PaymentReceivedEvent:
			b.handlePaymentReceived(ctx, e)
		default:
			log.WithField("event", fmt.Sprintf("%T", event)).Debug("ignoring node event")
		}

		// The cursor only advances on ack. A failed ack means the same event
		// comes around again; notifications are therefore at-least-once.
		if err := b.node.EventHandled(); err != nil {
			log.WithError(err).Error("failed to acknowledge node event")
		}
	}
}

func (b *Bridge) handlePaymentReceived(ctx context.Context, event node.PaymentReceivedEvent) {
	logger := log.WithFields(log.Fields{
		"payment_hash": fmt.Sprintf("%x", event.PaymentHash),
		"amount_msat":  event.AmountMsat,
	})
	logger.Info("Received incoming payment")

	if event.PaymentID == nil {
		logger.Warn("received payment without payment id")

		return
	}

	record, err := b.node.Payment(ctx, *event.PaymentID)
	if err != nil {
		logger.WithError(err).
			WithField("payment_id", event.PaymentID.String()).
			Error("could not find record for received payment")

		return
	}

	identifier, paymentID, err := lightning.IdentifyPayment(record.Kind)
	if err != nil {
		if errors.Is(err, lightning.ErrUnexpectedPaymentKind) {
			logger.WithError(err).Warn("received payment of unsupported kind")
		} else {
			logger.WithError(err).Error("could not identify received payment")
		}

		return
	}

	amountSat, err := money.Convert(money.Amount(event.AmountMsat), money.Msat, money.Sat)
	if err != nil {
		logger.WithError(err).Error("could not convert payment amount")

		return
	}

	b.notifications.publish(lightning.WaitPaymentResponse{
		PaymentIdentifier: identifier,
		PaymentAmount:     amountSat,
		Unit:              money.Sat,
		PaymentID:         paymentID,
	})
	logger.WithField("payment_id", paymentID).Info("Published payment notification")
}
