// Package node defines the capability set the bridge consumes from an
// external Lightning node runtime. Implementations live in their own
// packages; the bridge only ever talks to these interfaces.
package node

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
)

//go:generate go tool mockgen -destination=mock.go -package=node . Node,Bolt11Payment,Bolt12Payment,OnchainPayment

// ErrPaymentNotFound is returned by payment lookups that found nothing.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentID is the node-internal identifier of a payment attempt.
type PaymentID [32]byte

func (id PaymentID) String() string {
	return hex.EncodeToString(id[:])
}

// PaymentIDFromHex parses a hex string into a PaymentID.
func PaymentIDFromHex(s string) (PaymentID, error) {
	var id PaymentID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid payment id: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("invalid payment id length %d", len(b))
	}
	copy(id[:], b)

	return id, nil
}

// PaymentStatus is the node's view of a payment attempt.
type PaymentStatus int

const (
	StatusPending PaymentStatus = iota
	StatusSucceeded
	StatusFailed
)

func (s PaymentStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PaymentDirection distinguishes payments made by the node from payments
// made to it.
type PaymentDirection int

const (
	DirectionInbound PaymentDirection = iota
	DirectionOutbound
)

// PaymentKind is the closed set of payment kinds a node reports. New kinds
// require explicit handling in the bridge, so the set is sealed.
type PaymentKind interface {
	paymentKind()
}

// Bolt11Kind is a payment against a BOLT11 invoice.
type Bolt11Kind struct {
	Hash     [32]byte
	Preimage *[32]byte
	Secret   *[32]byte
}

// Bolt12OfferKind is a payment resolved from a BOLT12 offer. Hash may be
// absent for offers the node has not yet seen an invoice for.
type Bolt12OfferKind struct {
	Hash      *[32]byte
	Preimage  *[32]byte
	OfferID   string
	PayerNote string
	Quantity  *uint64
}

// OnchainKind is an on-chain transaction tracked by the node's wallet.
type OnchainKind struct {
	Txid string
}

func (Bolt11Kind) paymentKind()      {}
func (Bolt12OfferKind) paymentKind() {}
func (OnchainKind) paymentKind()     {}

// PaymentRecord is the node's full record of one payment attempt.
type PaymentRecord struct {
	ID        PaymentID
	Kind      PaymentKind
	Status    PaymentStatus
	Direction PaymentDirection
	// AmountMsat is nil when the node does not know the amount yet.
	AmountMsat *uint64
	FeeMsat    *uint64
}

// Invoice is the result of creating a BOLT11 payment request.
type Invoice struct {
	Bolt11      string
	PaymentHash [32]byte
}

// Offer is the result of creating a BOLT12 offer.
type Offer struct {
	Offer   string
	OfferID string
}

// SendParameters bound an outgoing payment attempt.
type SendParameters struct {
	MaxTotalRoutingFeeMsat *uint64
}

// Bolt11Payment is the node's BOLT11 sub-capability.
type Bolt11Payment interface {
	// Receive creates an invoice for the given amount.
	Receive(ctx context.Context, amountMsat uint64, description string, expirySecs uint32) (*Invoice, error)
	// Send pays an invoice that carries its own amount.
	Send(ctx context.Context, bolt11 string, params *SendParameters) (PaymentID, error)
	// SendUsingAmount pays an amountless invoice with a caller-chosen amount.
	SendUsingAmount(ctx context.Context, bolt11 string, amountMsat uint64, params *SendParameters) (PaymentID, error)
}

// Bolt12Payment is the node's BOLT12 sub-capability.
type Bolt12Payment interface {
	Receive(ctx context.Context, amountMsat uint64, description string, expirySecs uint32) (*Offer, error)
	ReceiveVariableAmount(ctx context.Context, description string, expirySecs uint32) (*Offer, error)
	Send(ctx context.Context, offer string, payerNote string) (PaymentID, error)
	SendUsingAmount(ctx context.Context, offer string, amountMsat uint64) (PaymentID, error)
}

// OnchainPayment is the node's on-chain wallet sub-capability.
type OnchainPayment interface {
	NewAddress(ctx context.Context) (string, error)
	// SendToAddress sends funds on-chain and returns the txid.
	SendToAddress(ctx context.Context, address string, amountSat uint64) (string, error)
}

// Info is the node's static metadata.
type Info struct {
	NodeID                string
	Alias                 string
	ListeningAddresses    []string
	AnnouncementAddresses []string
	NumPeers              uint64
	NumChannels           uint64
}

// Balances reports the node's funds.
type Balances struct {
	TotalOnchainSat     uint64
	SpendableOnchainSat uint64
	TotalLightningSat   uint64
}

// Channel describes one channel of the node.
type Channel struct {
	ChannelID            string
	CounterpartyNodeID   string
	BalanceMsat          uint64
	OutboundCapacityMsat uint64
	InboundCapacityMsat  uint64
	IsUsable             bool
	IsPublic             bool
	ShortChannelID       string
}

// Peer describes one peer of the node.
type Peer struct {
	NodeID      string
	Address     string
	IsConnected bool
}

// OpenChannelRequest asks the node to open an announced channel.
type OpenChannelRequest struct {
	NodeID                string
	Address               string
	Port                  uint32
	AmountSat             uint64
	PushToCounterpartySat uint64
}

// Node is the full capability set of the external Lightning runtime.
//
// NextEvent must only ever be called from a single goroutine: the event
// cursor is not shareable. The bridge's ingestion loop is that single owner.
// All other operations are safe for concurrent use.
type Node interface {
	Start(ctx context.Context) error
	Stop() error

	// NextEvent blocks until the next node event is available or the context
	// is cancelled.
	NextEvent(ctx context.Context) (Event, error)
	// EventHandled acknowledges the most recently retrieved event. It must
	// be called before the next NextEvent call.
	EventHandled() error

	// Payment looks up a payment record by its internal id. Returns
	// ErrPaymentNotFound when the node has no such payment.
	Payment(ctx context.Context, id PaymentID) (*PaymentRecord, error)
	// FindPaymentByHash looks up a BOLT11 payment record by payment hash.
	FindPaymentByHash(ctx context.Context, hash [32]byte) (*PaymentRecord, error)

	Bolt11() Bolt11Payment
	Bolt12() Bolt12Payment
	Onchain() OnchainPayment

	Info(ctx context.Context) (*Info, error)
	Balances(ctx context.Context) (*Balances, error)
	ListChannels(ctx context.Context) ([]Channel, error)
	ListPeers(ctx context.Context) ([]Peer, error)
	OpenChannel(ctx context.Context, req OpenChannelRequest) (string, error)
	CloseChannel(ctx context.Context, channelID, counterpartyNodeID string) error
}
