package lightning

import (
	"encoding/hex"
	"fmt"

	"github.com/cashubtc/mintpayd/lightning/node"
)

// IdentifierKind tags the variant of a PaymentIdentifier.
type IdentifierKind int

const (
	// IdentifierPaymentHash keys a payment by its 32-byte payment hash.
	IdentifierPaymentHash IdentifierKind = iota
	// IdentifierOfferID keys a payment by the BOLT12 offer it was paid
	// against.
	IdentifierOfferID
	// IdentifierCustomID keys a payment by an opaque backend-specific id.
	IdentifierCustomID
)

// PaymentIdentifier is the canonical correlation key for a payment across
// create, pay and check operations. It is immutable once produced.
type PaymentIdentifier struct {
	kind IdentifierKind
	hash [32]byte
	id   string
}

// NewPaymentHashIdentifier keys a payment by its payment hash.
func NewPaymentHashIdentifier(hash [32]byte) PaymentIdentifier {
	return PaymentIdentifier{kind: IdentifierPaymentHash, hash: hash}
}

// NewOfferIdentifier keys a payment by a BOLT12 offer id.
func NewOfferIdentifier(offerID string) PaymentIdentifier {
	return PaymentIdentifier{kind: IdentifierOfferID, id: offerID}
}

// NewCustomIdentifier keys a payment by an opaque id.
func NewCustomIdentifier(id string) PaymentIdentifier {
	return PaymentIdentifier{kind: IdentifierCustomID, id: id}
}

// PaymentHashIdentifierFromHex parses a hex-encoded payment hash.
func PaymentHashIdentifierFromHex(s string) (PaymentIdentifier, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PaymentIdentifier{}, fmt.Errorf("invalid payment hash: %w", err)
	}
	if len(b) != 32 {
		return PaymentIdentifier{}, fmt.Errorf("invalid payment hash length %d", len(b))
	}
	var hash [32]byte
	copy(hash[:], b)

	return NewPaymentHashIdentifier(hash), nil
}

func (p PaymentIdentifier) Kind() IdentifierKind {
	return p.kind
}

// Hash returns the payment hash of an IdentifierPaymentHash identifier.
func (p PaymentIdentifier) Hash() [32]byte {
	return p.hash
}

// ID returns the string key of an offer or custom identifier.
func (p PaymentIdentifier) ID() string {
	return p.id
}

func (p PaymentIdentifier) String() string {
	if p.kind == IdentifierPaymentHash {
		return hex.EncodeToString(p.hash[:])
	}

	return p.id
}

// MarshalJSON encodes the identifier as its display string.
func (p PaymentIdentifier) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", p.String())), nil
}

// IdentifyPayment resolves a node payment record's kind to the canonical
// identifier used to correlate it, plus the display string of its payment
// hash.
//
// BOLT11 payments are keyed by payment hash. BOLT12 payments are keyed by
// offer id, but only when the record carries a payment hash: without one
// there is nothing provable to correlate, and inventing a key would be
// incorrect. Any other kind is unsupported.
func IdentifyPayment(kind node.PaymentKind) (PaymentIdentifier, string, error) {
	switch k := kind.(type) {
	case node.Bolt11Kind:
		return NewPaymentHashIdentifier(k.Hash), hex.EncodeToString(k.Hash[:]), nil
	case node.Bolt12OfferKind:
		if k.Hash == nil {
			return PaymentIdentifier{}, "", ErrMissingPaymentHash
		}

		return NewOfferIdentifier(k.OfferID), hex.EncodeToString(k.Hash[:]), nil
	default:
		return PaymentIdentifier{}, "", fmt.Errorf("%w: %T", ErrUnexpectedPaymentKind, kind)
	}
}
