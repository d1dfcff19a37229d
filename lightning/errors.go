package lightning

import "errors"

var (
	// ErrPaymentNotFound is returned when a payment the caller refers to does
	// not exist on the node. For the outgoing payment poller this indicates a
	// consistency bug, not a transient state.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidPaymentDirection is returned when a lookup resolved to a
	// payment going the opposite way than the operation expects.
	ErrInvalidPaymentDirection = errors.New("invalid payment direction")

	// ErrUnexpectedPaymentKind is returned when an identifier resolved to a
	// payment of a kind this bridge cannot interpret. Callers must not retry.
	ErrUnexpectedPaymentKind = errors.New("unexpected payment kind")

	// ErrUnsupportedPaymentOption is returned when the caller requested a
	// payment mode, such as multi-path, that this backend does not support.
	ErrUnsupportedPaymentOption = errors.New("unsupported payment option")

	// ErrUnsupportedPaymentIdentifier is returned when an operation cannot
	// work with the given identifier variant.
	ErrUnsupportedPaymentIdentifier = errors.New("unsupported payment identifier type")

	// ErrMissingPaymentHash is returned for a BOLT12 payment without a
	// payment hash; without a provable hash the payment cannot be correlated.
	ErrMissingPaymentHash = errors.New("bolt12 payment missing hash")

	// ErrAmountConversion is returned when an amount is absent or cannot be
	// expressed in the requested unit.
	ErrAmountConversion = errors.New("amount conversion failed")

	// ErrInvalidDescription is returned for an invoice description that does
	// not fit the BOLT11 limits.
	ErrInvalidDescription = errors.New("invalid description")

	// ErrInvalidAddress is returned for a malformed bitcoin address.
	ErrInvalidAddress = errors.New("invalid address")
)
