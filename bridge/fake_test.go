package bridge

import (
	"context"
	"sync"

	"github.com/cashubtc/mintpayd/lightning/node"
)

// fakeNode is an in-memory node.Node for bridge tests. Events are fed
// through a channel, payment records live in maps and the sub-capabilities
// hand back scripted results.
type fakeNode struct {
	mu sync.Mutex

	events chan node.Event
	acks   int
	ackErr error

	payments map[node.PaymentID]*node.PaymentRecord
	byHash   map[[32]byte]*node.PaymentRecord

	// statusSeq, when set for statusID, overrides the record status served
	// by successive Payment lookups. The last entry is sticky.
	statusID    node.PaymentID
	statusSeq   []node.PaymentStatus
	statusCalls int

	startErr error
	stopErr  error
	stopped  bool

	bolt11  *fakeBolt11
	bolt12  *fakeBolt12
	onchain *fakeOnchain
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		events:   make(chan node.Event, 16),
		payments: make(map[node.PaymentID]*node.PaymentRecord),
		byHash:   make(map[[32]byte]*node.PaymentRecord),
		bolt11:   &fakeBolt11{},
		bolt12:   &fakeBolt12{},
		onchain:  &fakeOnchain{},
	}
}

func (f *fakeNode) addPayment(record *node.PaymentRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments[record.ID] = record
}

func (f *fakeNode) addPaymentByHash(hash [32]byte, record *node.PaymentRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byHash[hash] = record
}

func (f *fakeNode) ackCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.acks
}

func (f *fakeNode) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.stopped
}

func (f *fakeNode) Start(context.Context) error {
	return f.startErr
}

func (f *fakeNode) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true

	return f.stopErr
}

func (f *fakeNode) NextEvent(ctx context.Context) (node.Event, error) {
	select {
	case event := <-f.events:
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *fakeNode) EventHandled() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acks++

	return f.ackErr
}

func (f *fakeNode) Payment(_ context.Context, id node.PaymentID) (*node.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.payments[id]
	if !ok {
		return nil, node.ErrPaymentNotFound
	}

	if id == f.statusID && len(f.statusSeq) > 0 {
		idx := f.statusCalls
		if idx >= len(f.statusSeq) {
			idx = len(f.statusSeq) - 1
		}
		f.statusCalls++

		copied := *record
		copied.Status = f.statusSeq[idx]

		return &copied, nil
	}

	return record, nil
}

func (f *fakeNode) FindPaymentByHash(_ context.Context, hash [32]byte) (*node.PaymentRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.byHash[hash]
	if !ok {
		return nil, node.ErrPaymentNotFound
	}

	return record, nil
}

func (f *fakeNode) Bolt11() node.Bolt11Payment   { return f.bolt11 }
func (f *fakeNode) Bolt12() node.Bolt12Payment   { return f.bolt12 }
func (f *fakeNode) Onchain() node.OnchainPayment { return f.onchain }

func (f *fakeNode) Info(context.Context) (*node.Info, error) {
	return &node.Info{NodeID: "02fake"}, nil
}

func (f *fakeNode) Balances(context.Context) (*node.Balances, error) {
	return &node.Balances{}, nil
}

func (f *fakeNode) ListChannels(context.Context) ([]node.Channel, error) {
	return nil, nil
}

func (f *fakeNode) ListPeers(context.Context) ([]node.Peer, error) {
	return nil, nil
}

func (f *fakeNode) OpenChannel(context.Context, node.OpenChannelRequest) (string, error) {
	return "chan", nil
}

func (f *fakeNode) CloseChannel(context.Context, string, string) error {
	return nil
}

type fakeBolt11 struct {
	mu sync.Mutex

	invoice    *node.Invoice
	receiveErr error

	sendID  node.PaymentID
	sendErr error

	lastAmountMsat uint64
	lastExpirySecs uint32
	lastParams     *node.SendParameters
}

func (f *fakeBolt11) Receive(_ context.Context, amountMsat uint64, _ string, expirySecs uint32) (*node.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAmountMsat = amountMsat
	f.lastExpirySecs = expirySecs

	return f.invoice, f.receiveErr
}

func (f *fakeBolt11) Send(_ context.Context, _ string, params *node.SendParameters) (node.PaymentID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastParams = params

	return f.sendID, f.sendErr
}

func (f *fakeBolt11) SendUsingAmount(_ context.Context, _ string, amountMsat uint64, params *node.SendParameters) (node.PaymentID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAmountMsat = amountMsat
	f.lastParams = params

	return f.sendID, f.sendErr
}

type fakeBolt12 struct {
	mu sync.Mutex

	offer      *node.Offer
	receiveErr error

	sendID  node.PaymentID
	sendErr error

	lastAmountMsat uint64
	lastExpirySecs uint32
	variableAmount bool
}

func (f *fakeBolt12) Receive(_ context.Context, amountMsat uint64, _ string, expirySecs uint32) (*node.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAmountMsat = amountMsat
	f.lastExpirySecs = expirySecs

	return f.offer, f.receiveErr
}

func (f *fakeBolt12) ReceiveVariableAmount(_ context.Context, _ string, expirySecs uint32) (*node.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variableAmount = true
	f.lastExpirySecs = expirySecs

	return f.offer, f.receiveErr
}

func (f *fakeBolt12) Send(_ context.Context, _ string, _ string) (node.PaymentID, error) {
	return f.sendID, f.sendErr
}

func (f *fakeBolt12) SendUsingAmount(_ context.Context, _ string, amountMsat uint64) (node.PaymentID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAmountMsat = amountMsat

	return f.sendID, f.sendErr
}

type fakeOnchain struct {
	address string
	txid    string
}

func (f *fakeOnchain) NewAddress(context.Context) (string, error) {
	return f.address, nil
}

func (f *fakeOnchain) SendToAddress(context.Context, string, uint64) (string, error) {
	return f.txid, nil
}
