// Package lightning defines the mint-facing payment processor contract: the
// request and response types exchanged with the mint, and the Processor
// interface implemented by the bridge.
package lightning

import (
	"context"

	"github.com/cashubtc/mintpayd/money"
)

// QuoteState is the state of a payment from the mint's point of view.
type QuoteState string

const (
	StateUnpaid  QuoteState = "UNPAID"
	StatePending QuoteState = "PENDING"
	StatePaid    QuoteState = "PAID"
	StateFailed  QuoteState = "FAILED"
	StateUnknown QuoteState = "UNKNOWN"
)

// Terminal reports whether the state can still change.
func (s QuoteState) Terminal() bool {
	return s == StatePaid || s == StateFailed
}

// Settings describes what this payment backend supports.
type Settings struct {
	MPP                bool       `json:"mpp"`
	Unit               money.Unit `json:"unit"`
	InvoiceDescription bool       `json:"invoice_description"`
	Amountless         bool       `json:"amountless"`
}

// WaitPaymentResponse notifies the mint of one successful incoming payment.
// It is produced exactly once per observed payment-received event.
type WaitPaymentResponse struct {
	PaymentIdentifier PaymentIdentifier `json:"payment_identifier"`
	PaymentAmount     money.Amount      `json:"payment_amount"`
	Unit              money.Unit        `json:"unit"`
	// PaymentID is the display string of the underlying payment hash.
	PaymentID string `json:"payment_id"`
}

// CreateIncomingPaymentResponse is returned when a new invoice or offer has
// been created for the mint.
type CreateIncomingPaymentResponse struct {
	RequestLookupID PaymentIdentifier `json:"request_lookup_id"`
	Request         string            `json:"request"`
	Expiry          *uint64           `json:"expiry,omitempty"`
}

// PaymentQuoteResponse quotes the amount and fee reserve for an outgoing
// payment.
type PaymentQuoteResponse struct {
	RequestLookupID PaymentIdentifier `json:"request_lookup_id"`
	Amount          money.Amount      `json:"amount"`
	Fee             money.Amount      `json:"fee"`
	State           QuoteState        `json:"state"`
}

// MakePaymentResponse reports the outcome of an outgoing payment attempt.
// PaymentProof is the preimage when the payment succeeded and it is known.
type MakePaymentResponse struct {
	PaymentLookupID PaymentIdentifier `json:"payment_lookup_id"`
	PaymentProof    string            `json:"payment_proof,omitempty"`
	Status          QuoteState        `json:"status"`
	TotalSpent      money.Amount      `json:"total_spent"`
	Unit            money.Unit        `json:"unit"`
}

// MeltOptions modify how an outgoing payment is executed. At most one field
// may be set.
type MeltOptions struct {
	// Amountless supplies the amount for an invoice that does not carry one.
	Amountless *AmountlessOption
	// MPP requests a multi-path partial payment. Not supported by this
	// backend; requests carrying it fail with ErrUnsupportedPaymentOption.
	MPP *MPPOption
}

// AmountlessOption carries the caller-chosen amount for an amountless invoice.
type AmountlessOption struct {
	AmountMsat money.Amount
}

// MPPOption carries the partial amount of a multi-path payment.
type MPPOption struct {
	AmountMsat money.Amount
}

// AmountMsat returns the amount the melt options ask to pay.
func (m *MeltOptions) AmountMsat() money.Amount {
	switch {
	case m.Amountless != nil:
		return m.Amountless.AmountMsat
	case m.MPP != nil:
		return m.MPP.AmountMsat
	default:
		return 0
	}
}

// Bolt11IncomingOptions requests a BOLT11 invoice.
type Bolt11IncomingOptions struct {
	// Amount in the unit of the request.
	Amount      money.Amount
	Description string
	// UnixExpiry is an absolute expiry time. When nil a default applies.
	UnixExpiry *uint64
}

// Bolt12IncomingOptions requests a BOLT12 offer. A nil Amount creates a
// variable-amount offer.
type Bolt12IncomingOptions struct {
	Amount      *money.Amount
	Description string
	UnixExpiry  *uint64
}

// IncomingPaymentOptions selects the kind of payment request to create.
// Exactly one field must be set.
type IncomingPaymentOptions struct {
	Bolt11 *Bolt11IncomingOptions
	Bolt12 *Bolt12IncomingOptions
}

// Bolt11OutgoingOptions describes a BOLT11 payment to quote or execute.
type Bolt11OutgoingOptions struct {
	Invoice string
	// MaxFeeAmount caps the routing fee, in the unit of the request.
	MaxFeeAmount *money.Amount
	Melt         *MeltOptions
}

// Bolt12OutgoingOptions describes a BOLT12 payment to quote or execute.
// AmountMsat is the amount resolved from the offer by the caller; it is
// required when the melt options do not supply one, since an offer without
// an amount cannot be quoted. OfferID is the caller-resolved id of the
// offer and keys the resulting payment.
type Bolt12OutgoingOptions struct {
	Offer      string
	OfferID    string
	AmountMsat *money.Amount
	Melt       *MeltOptions
}

// OutgoingPaymentOptions selects the kind of payment to quote or execute.
// Exactly one field must be set.
type OutgoingPaymentOptions struct {
	Bolt11 *Bolt11OutgoingOptions
	Bolt12 *Bolt12OutgoingOptions
}

// Processor is the payment contract the mint consumes. The bridge implements
// it on top of an external Lightning node.
type Processor interface {
	// Settings reports the static capabilities of this backend.
	Settings() Settings

	// CreateIncomingPaymentRequest creates an invoice or offer the mint
	// hands out to be paid.
	CreateIncomingPaymentRequest(ctx context.Context, unit money.Unit, opts IncomingPaymentOptions) (*CreateIncomingPaymentResponse, error)

	// GetPaymentQuote returns the amount and fee reserve required to execute
	// an outgoing payment.
	GetPaymentQuote(ctx context.Context, unit money.Unit, opts OutgoingPaymentOptions) (*PaymentQuoteResponse, error)

	// MakePayment executes an outgoing payment and waits a bounded time for
	// it to reach a terminal state.
	MakePayment(ctx context.Context, unit money.Unit, opts OutgoingPaymentOptions) (*MakePaymentResponse, error)

	// WaitAnyIncomingPayment returns a stream of completed incoming
	// payments. The channel is closed when the wait-invoice token is
	// cancelled or the processor stops.
	WaitAnyIncomingPayment(ctx context.Context) (<-chan WaitPaymentResponse, error)

	// IsWaitInvoiceActive reports whether a wait stream is live.
	IsWaitInvoiceActive() bool

	// CancelWaitInvoice tears down the active wait stream, if any.
	CancelWaitInvoice()

	// CheckIncomingPaymentStatus looks up the state of an incoming payment.
	CheckIncomingPaymentStatus(ctx context.Context, id PaymentIdentifier) ([]WaitPaymentResponse, error)

	// CheckOutgoingPayment looks up the state of an outgoing payment.
	CheckOutgoingPayment(ctx context.Context, id PaymentIdentifier) (*MakePaymentResponse, error)
}
