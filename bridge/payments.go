package bridge

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/lightningnetwork/lnd/zpay32"
	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
	"github.com/cashubtc/mintpayd/money"
)

const (
	// defaultInvoiceExpirySecs applies when the caller gives no expiry.
	defaultInvoiceExpirySecs = 36000
	// maxDescriptionBytes is the BOLT11 limit on a direct description.
	maxDescriptionBytes = 639
)

// CreateIncomingPaymentRequest creates an invoice or offer to be paid to
// the mint.
func (b *Bridge) CreateIncomingPaymentRequest(ctx context.Context, unit money.Unit, opts lightning.IncomingPaymentOptions) (*lightning.CreateIncomingPaymentResponse, error) {
	switch {
	case opts.Bolt11 != nil:
		return b.createBolt11Invoice(ctx, unit, *opts.Bolt11)
	case opts.Bolt12 != nil:
		return b.createBolt12Offer(ctx, unit, *opts.Bolt12)
	default:
		return nil, fmt.Errorf("no incoming payment options given")
	}
}

func (b *Bridge) createBolt11Invoice(ctx context.Context, unit money.Unit, opts lightning.Bolt11IncomingOptions) (*lightning.CreateIncomingPaymentResponse, error) {
	amountMsat, err := money.Convert(opts.Amount, unit, money.Msat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lightning.ErrAmountConversion, err)
	}
	if len(opts.Description) > maxDescriptionBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", lightning.ErrInvalidDescription, len(opts.Description), maxDescriptionBytes)
	}

	expirySecs, unixExpiry, err := b.invoiceExpiry(opts.UnixExpiry)
	if err != nil {
		return nil, err
	}

	invoice, err := b.node.Bolt11().Receive(ctx, uint64(amountMsat), opts.Description, expirySecs)
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	log.WithField("payment_hash", fmt.Sprintf("%x", invoice.PaymentHash)).
		Info("Created bolt11 invoice")

	return &lightning.CreateIncomingPaymentResponse{
		RequestLookupID: lightning.NewPaymentHashIdentifier(invoice.PaymentHash),
		Request:         invoice.Bolt11,
		Expiry:          &unixExpiry,
	}, nil
}

func (b *Bridge) createBolt12Offer(ctx context.Context, unit money.Unit, opts lightning.Bolt12IncomingOptions) (*lightning.CreateIncomingPaymentResponse, error) {
	expirySecs, unixExpiry, err := b.invoiceExpiry(opts.UnixExpiry)
	if err != nil {
		return nil, err
	}

	var offer *node.Offer
	if opts.Amount != nil {
		amountMsat, err := money.Convert(*opts.Amount, unit, money.Msat)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", lightning.ErrAmountConversion, err)
		}
		offer, err = b.node.Bolt12().Receive(ctx, uint64(amountMsat), opts.Description, expirySecs)
		if err != nil {
			return nil, fmt.Errorf("creating offer: %w", err)
		}
	} else {
		offer, err = b.node.Bolt12().ReceiveVariableAmount(ctx, opts.Description, expirySecs)
		if err != nil {
			return nil, fmt.Errorf("creating variable amount offer: %w", err)
		}
	}

	log.WithField("offer_id", offer.OfferID).Info("Created bolt12 offer")

	return &lightning.CreateIncomingPaymentResponse{
		RequestLookupID: lightning.NewOfferIdentifier(offer.OfferID),
		Request:         offer.Offer,
		Expiry:          &unixExpiry,
	}, nil
}

// invoiceExpiry turns an optional absolute unix expiry into the relative
// seconds the node wants, plus the absolute expiry reported back to the
// mint. Nil means the default expiry.
func (b *Bridge) invoiceExpiry(unixExpiry *uint64) (uint32, uint64, error) {
	now := uint64(b.clock.Now().Unix())
	secs := uint64(defaultInvoiceExpirySecs)
	if unixExpiry != nil {
		if *unixExpiry <= now {
			return 0, 0, fmt.Errorf("expiry %d is in the past", *unixExpiry)
		}
		secs = *unixExpiry - now
		if secs > math.MaxUint32 {
			return 0, 0, fmt.Errorf("expiry %d is too far in the future", *unixExpiry)
		}
	}

	return uint32(secs), now + secs, nil
}

// GetPaymentQuote returns the amount and fee reserve required to execute an
// outgoing payment.
func (b *Bridge) GetPaymentQuote(_ context.Context, unit money.Unit, opts lightning.OutgoingPaymentOptions) (*lightning.PaymentQuoteResponse, error) {
	switch {
	case opts.Bolt11 != nil:
		return b.quoteBolt11(unit, *opts.Bolt11)
	case opts.Bolt12 != nil:
		return b.quoteBolt12(unit, *opts.Bolt12)
	default:
		return nil, fmt.Errorf("no outgoing payment options given")
	}
}

func (b *Bridge) quoteBolt11(unit money.Unit, opts lightning.Bolt11OutgoingOptions) (*lightning.PaymentQuoteResponse, error) {
	invoice, err := zpay32.Decode(opts.Invoice, b.chainParams)
	if err != nil {
		return nil, fmt.Errorf("decoding invoice: %w", err)
	}

	var amountMsat money.Amount
	switch {
	case opts.Melt != nil:
		amountMsat = opts.Melt.AmountMsat()
	case invoice.MilliSat != nil:
		amountMsat = money.Amount(*invoice.MilliSat)
	default:
		return nil, fmt.Errorf("%w: unknown invoice amount", lightning.ErrAmountConversion)
	}

	amount, err := money.Convert(amountMsat, money.Msat, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lightning.ErrAmountConversion, err)
	}

	return &lightning.PaymentQuoteResponse{
		RequestLookupID: lightning.NewPaymentHashIdentifier(*invoice.PaymentHash),
		Amount:          amount,
		Fee:             b.feeReserve.Fee(amount),
		State:           lightning.StateUnpaid,
	}, nil
}

func (b *Bridge) quoteBolt12(unit money.Unit, opts lightning.Bolt12OutgoingOptions) (*lightning.PaymentQuoteResponse, error) {
	var amountMsat money.Amount
	switch {
	case opts.Melt != nil:
		amountMsat = opts.Melt.AmountMsat()
	case opts.AmountMsat != nil:
		amountMsat = *opts.AmountMsat
	default:
		return nil, fmt.Errorf("%w: unknown offer amount", lightning.ErrAmountConversion)
	}

	amount, err := money.Convert(amountMsat, money.Msat, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", lightning.ErrAmountConversion, err)
	}

	return &lightning.PaymentQuoteResponse{
		RequestLookupID: lightning.NewOfferIdentifier(opts.OfferID),
		Amount:          amount,
		Fee:             b.feeReserve.Fee(amount),
		State:           lightning.StateUnpaid,
	}, nil
}

// MakePayment executes an outgoing payment and waits up to the poll
// deadline for a terminal status. A payment still pending at the deadline
// is reported as pending, not failed.
func (b *Bridge) MakePayment(ctx context.Context, unit money.Unit, opts lightning.OutgoingPaymentOptions) (*lightning.MakePaymentResponse, error) {
	switch {
	case opts.Bolt11 != nil:
		return b.payBolt11(ctx, unit, *opts.Bolt11)
	case opts.Bolt12 != nil:
		return b.payBolt12(ctx, unit, *opts.Bolt12)
	default:
		return nil, fmt.Errorf("no outgoing payment options given")
	}
}

func (b *Bridge) payBolt11(ctx context.Context, unit money.Unit, opts lightning.Bolt11OutgoingOptions) (*lightning.MakePaymentResponse, error) {
	invoice, err := zpay32.Decode(opts.Invoice, b.chainParams)
	if err != nil {
		return nil, fmt.Errorf("decoding invoice: %w", err)
	}

	var sendParams *node.SendParameters
	if opts.MaxFeeAmount != nil {
		maxFeeMsat, err := money.Convert(*opts.MaxFeeAmount, unit, money.Msat)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fee amount: %v", lightning.ErrAmountConversion, err)
		}
		maxFee := uint64(maxFeeMsat)
		sendParams = &node.SendParameters{MaxTotalRoutingFeeMsat: &maxFee}
	}

	var paymentID node.PaymentID
	switch {
	case opts.Melt == nil:
		paymentID, err = b.node.Bolt11().Send(ctx, opts.Invoice, sendParams)
	case opts.Melt.Amountless != nil:
		paymentID, err = b.node.Bolt11().SendUsingAmount(ctx, opts.Invoice, uint64(opts.Melt.Amountless.AmountMsat), sendParams)
	default:
		return nil, fmt.Errorf("%w: multi-path payments not supported", lightning.ErrUnsupportedPaymentOption)
	}
	if err != nil {
		return nil, fmt.Errorf("sending bolt11 payment: %w", err)
	}

	record, state, err := b.pollPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	proof, err := bolt11Proof(record.Kind)
	if err != nil {
		return nil, err
	}

	totalSpent, err := totalSpent(record, unit)
	if err != nil {
		return nil, err
	}

	return &lightning.MakePaymentResponse{
		PaymentLookupID: lightning.NewPaymentHashIdentifier(*invoice.PaymentHash),
		PaymentProof:    proof,
		Status:          state,
		TotalSpent:      totalSpent,
		Unit:            unit,
	}, nil
}

func (b *Bridge) payBolt12(ctx context.Context, unit money.Unit, opts lightning.Bolt12OutgoingOptions) (*lightning.MakePaymentResponse, error) {
	var (
		paymentID node.PaymentID
		err       error
	)
	switch {
	case opts.Melt == nil:
		paymentID, err = b.node.Bolt12().Send(ctx, opts.Offer, "")
	case opts.Melt.Amountless != nil:
		paymentID, err = b.node.Bolt12().SendUsingAmount(ctx, opts.Offer, uint64(opts.Melt.Amountless.AmountMsat))
	default:
		return nil, fmt.Errorf("%w: multi-path payments not supported", lightning.ErrUnsupportedPaymentOption)
	}
	if err != nil {
		return nil, fmt.Errorf("sending bolt12 payment: %w", err)
	}

	record, state, err := b.pollPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	offerKind, ok := record.Kind.(node.Bolt12OfferKind)
	if !ok {
		return nil, fmt.Errorf("%w: %T", lightning.ErrUnexpectedPaymentKind, record.Kind)
	}
	var proof string
	if offerKind.Preimage != nil {
		proof = fmt.Sprintf("%x", *offerKind.Preimage)
	}

	totalSpent, err := totalSpent(record, unit)
	if err != nil {
		return nil, err
	}

	return &lightning.MakePaymentResponse{
		PaymentLookupID: lightning.NewOfferIdentifier(opts.OfferID),
		PaymentProof:    proof,
		Status:          state,
		TotalSpent:      totalSpent,
		Unit:            unit,
	}, nil
}

// CheckIncomingPaymentStatus looks up the state of an incoming payment.
// Offer identifiers are not resolvable here: an offer can be paid many
// times and does not key a single record.
func (b *Bridge) CheckIncomingPaymentStatus(ctx context.Context, id lightning.PaymentIdentifier) ([]lightning.WaitPaymentResponse, error) {
	record, err := b.lookupRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.Direction == node.DirectionOutbound {
		return nil, fmt.Errorf("%w: payment %s is outgoing", lightning.ErrInvalidPaymentDirection, id)
	}

	var amount money.Amount
	if record.Status == node.StatusSucceeded {
		if record.AmountMsat == nil {
			return nil, fmt.Errorf("%w: settled payment has no amount", lightning.ErrAmountConversion)
		}
		amount = money.Amount(*record.AmountMsat)
	}

	return []lightning.WaitPaymentResponse{{
		PaymentIdentifier: id,
		PaymentAmount:     amount,
		Unit:              money.Msat,
		PaymentID:         id.String(),
	}}, nil
}

// CheckOutgoingPayment looks up the state of an outgoing payment. An offer
// identifier cannot be resolved to a single attempt, so its status is
// reported as unknown rather than guessed.
func (b *Bridge) CheckOutgoingPayment(ctx context.Context, id lightning.PaymentIdentifier) (*lightning.MakePaymentResponse, error) {
	if id.Kind() == lightning.IdentifierOfferID {
		return &lightning.MakePaymentResponse{
			PaymentLookupID: id,
			Status:          lightning.StateUnknown,
			Unit:            money.Msat,
		}, nil
	}

	record, err := b.lookupRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.Direction != node.DirectionOutbound {
		return nil, fmt.Errorf("%w: payment %s is incoming", lightning.ErrInvalidPaymentDirection, id)
	}

	proof, err := bolt11Proof(record.Kind)
	if err != nil {
		return nil, err
	}

	totalSpent, err := totalSpent(record, money.Msat)
	if err != nil {
		return nil, err
	}

	return &lightning.MakePaymentResponse{
		PaymentLookupID: id,
		PaymentProof:    proof,
		Status:          quoteState(record.Status),
		TotalSpent:      totalSpent,
		Unit:            money.Msat,
	}, nil
}

// lookupRecord resolves a hash or custom identifier to a payment record.
func (b *Bridge) lookupRecord(ctx context.Context, id lightning.PaymentIdentifier) (*node.PaymentRecord, error) {
	var (
		record *node.PaymentRecord
		err    error
	)
	switch id.Kind() {
	case lightning.IdentifierPaymentHash:
		record, err = b.node.FindPaymentByHash(ctx, id.Hash())
	case lightning.IdentifierCustomID:
		paymentID, perr := node.PaymentIDFromHex(id.ID())
		if perr != nil {
			return nil, perr
		}
		record, err = b.node.Payment(ctx, paymentID)
	default:
		return nil, fmt.Errorf("%w: offer id", lightning.ErrUnsupportedPaymentIdentifier)
	}
	if err != nil {
		if errors.Is(err, node.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: %s", lightning.ErrPaymentNotFound, id)
		}

		return nil, err
	}

	return record, nil
}

func quoteState(status node.PaymentStatus) lightning.QuoteState {
	switch status {
	case node.StatusSucceeded:
		return lightning.StatePaid
	case node.StatusFailed:
		return lightning.StateFailed
	default:
		return lightning.StatePending
	}
}

// bolt11Proof extracts the preimage of a BOLT11 payment record, empty when
// the node does not know it yet.
func bolt11Proof(kind node.PaymentKind) (string, error) {
	bolt11, ok := kind.(node.Bolt11Kind)
	if !ok {
		return "", fmt.Errorf("%w: %T", lightning.ErrUnexpectedPaymentKind, kind)
	}
	if bolt11.Preimage == nil {
		return "", nil
	}

	return fmt.Sprintf("%x", *bolt11.Preimage), nil
}

// totalSpent is the amount plus routing fee of a payment record, converted
// to the requested unit.
func totalSpent(record *node.PaymentRecord, unit money.Unit) (money.Amount, error) {
	if record.AmountMsat == nil {
		return 0, fmt.Errorf("%w: could not get amount spent", lightning.ErrAmountConversion)
	}
	spentMsat := *record.AmountMsat
	if record.FeeMsat != nil {
		spentMsat += *record.FeeMsat
	}

	return money.Convert(money.Amount(spentMsat), money.Msat, unit)
}
