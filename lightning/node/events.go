package node

// Event is the closed set of events a node emits. The bridge type-switches
// over it; kinds it does not care about are observed and ignored.
type Event interface {
	isEvent()
}

// PaymentReceivedEvent signals that an incoming payment settled. PaymentID
// may be absent for payments the node cannot attribute to a record.
type PaymentReceivedEvent struct {
	PaymentID   *PaymentID
	PaymentHash [32]byte
	AmountMsat  uint64
}

// PaymentSuccessfulEvent signals that an outgoing payment succeeded.
type PaymentSuccessfulEvent struct {
	PaymentID   *PaymentID
	PaymentHash *[32]byte
	FeePaidMsat *uint64
}

// PaymentFailedEvent signals that an outgoing payment failed for good.
type PaymentFailedEvent struct {
	PaymentID   *PaymentID
	PaymentHash *[32]byte
	Reason      string
}

// ChannelReadyEvent signals a channel becoming usable.
type ChannelReadyEvent struct {
	ChannelID          string
	CounterpartyNodeID string
}

// ChannelClosedEvent signals a channel closing.
type ChannelClosedEvent struct {
	ChannelID          string
	CounterpartyNodeID string
	Reason             string
}

func (PaymentReceivedEvent) isEvent()   {}
func (PaymentSuccessfulEvent) isEvent() {}
func (PaymentFailedEvent) isEvent()     {}
func (ChannelReadyEvent) isEvent()      {}
func (ChannelClosedEvent) isEvent()     {}
