package bridge

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
)

// subscriberBuffer bounds how many pending notifications a subscriber may
// accumulate before it starts missing messages.
const subscriberBuffer = 8

// broadcaster fans payment notifications out to any number of subscribers.
// Every subscriber receives every message published after it subscribed; a
// message published with no subscribers is simply not observed. Publishing
// never blocks: a subscriber that falls behind its buffer misses the
// message, because the publisher is the event ingestion loop and must keep
// draining node events.
type broadcaster struct {
	mu     sync.Mutex
	subs   map[uint64]chan lightning.WaitPaymentResponse
	nextID uint64
	closed bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{
		subs: make(map[uint64]chan lightning.WaitPaymentResponse),
	}
}

// subscribe registers a new subscriber and returns its id and channel. The
// channel is closed on unsubscribe or when the broadcaster shuts down.
func (b *broadcaster) subscribe() (uint64, <-chan lightning.WaitPaymentResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan lightning.WaitPaymentResponse, subscriberBuffer)
	if b.closed {
		close(ch)

		return 0, ch
	}

	b.nextID++
	id := b.nextID
	b.subs[id] = ch

	return id, ch
}

func (b *broadcaster) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// publish delivers the notification to all current subscribers without
// blocking on any of them.
func (b *broadcaster) publish(msg lightning.WaitPaymentResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		select {
		case ch <- msg:
		default:
			log.WithField("subscriber", id).
				Warn("payment notification subscriber lagging, dropping message")
		}
	}
}

// close tears down all subscriptions. Further publishes are no-ops and
// further subscribes return an already-closed channel.
func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
