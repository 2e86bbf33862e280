package session

import (
	"sync"

	"github.com/jg-phare/esl/pkg/frame"
)

// defaultSubscriberBuffer bounds how far a subscriber may lag before
// its oldest unread message is dropped in favor of the newest one
// (spec.md §5: "slow consumers may lag — receiver must tolerate lag
// signals").
const defaultSubscriberBuffer = 64

// broadcaster fans inbound messages out to any number of subscribers,
// in strict wire order per subscriber (spec.md §5). It is the
// channel-of-subscribers idiom this codebase reaches for instead of a
// pub/sub library — there is no broadcast-channel package in common
// use; every consumer that needs this hand-rolls it the same way.
type broadcaster struct {
	mu   sync.Mutex
	subs map[uint64]*Subscription
	next uint64
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[uint64]*Subscription)}
}

// Subscription is one subscriber's view of the inbound broadcast.
type Subscription struct {
	id     uint64
	ch     chan *frame.Message
	b      *broadcaster
	lagged uint64 // guarded by b.mu
}

// C returns the channel new inbound messages arrive on.
func (s *Subscription) C() <-chan *frame.Message { return s.ch }

// Lagged reports how many messages this subscriber has missed because
// it fell behind and its buffer filled (spec.md §5 lag signal).
func (s *Subscription) Lagged() uint64 {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	return s.lagged
}

// Unsubscribe removes this subscription from the broadcaster. Safe to
// call more than once.
func (s *Subscription) Unsubscribe() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	delete(s.b.subs, s.id)
}

func (b *broadcaster) subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	sub := &Subscription{id: b.next, ch: make(chan *frame.Message, buffer), b: b}
	b.subs[sub.id] = sub
	return sub
}

// publish delivers msg to every current subscriber in the order
// publish is called (spec.md §5: "messages are published on the
// inbound broadcast in strict wire order"). A subscriber whose buffer
// is full has its oldest queued message dropped to make room, and its
// lag counter incremented, rather than blocking the publisher.
func (b *broadcaster) publish(msg *frame.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- msg:
		default:
			select {
			case <-sub.ch:
				sub.lagged++
			default:
			}
			select {
			case sub.ch <- msg:
			default:
				sub.lagged++
			}
		}
	}
}

// closeAll closes every subscriber channel so ranging consumers
// observe EOF once the session is torn down.
func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, sub := range b.subs {
		close(sub.ch)
		delete(b.subs, id)
	}
}
