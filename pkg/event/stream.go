package event

import (
	"sync"

	"github.com/colintheshots/RxFsm/pkg/domain"
)

// Stream is a named, in-memory event source. Subscribers registered via
// Subscribe receive every subsequent Emit, in registration order.
//
// Cancellation is synchronous: a subscription cancelled while an Emit is
// in flight (including from inside another handler) is skipped for the
// remainder of that Emit. This is the property the engine relies on to
// tear down listeners before running any exit hook.
//
// The mutex only protects the subscriber list; occurrence delivery itself
// is expected on a single logical thread of control. Producers on other
// goroutines must serialize their emissions (see adapters).
type Stream struct {
	name string

	mu   sync.Mutex
	subs []*streamSub
}

type streamSub struct {
	stream  *Stream
	handler domain.Handler
	active  bool
}

// New creates an empty stream for the given event name.
func New(name string) *Stream {
	return &Stream{name: name}
}

// Name returns the event name the stream was created for.
func (s *Stream) Name() string { return s.name }

// Subscribe registers a handler and returns its cancellation handle.
func (s *Stream) Subscribe(h domain.Handler) domain.Subscription {
	sub := &streamSub{stream: s, handler: h, active: true}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub
}

// Emit delivers occ to every live subscriber and returns the first
// handler error, if any.
func (s *Stream) Emit(occ domain.Occurrence) error {
	s.mu.Lock()
	snapshot := make([]*streamSub, len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	var firstErr error
	for _, sub := range snapshot {
		s.mu.Lock()
		alive := sub.active
		s.mu.Unlock()
		if !alive {
			continue
		}
		if err := sub.handler(occ); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Send emits an occurrence targeting the given state path.
func (s *Stream) Send(target string) error {
	return s.Emit(domain.NewOccurrence(target))
}

// SendInternal emits a payload-less occurrence (internal transition).
func (s *Stream) SendInternal() error {
	return s.Emit(domain.NewInternalOccurrence())
}

// SubscriberCount reports the number of live subscriptions.
func (s *Stream) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Unsubscribe cancels the registration. It is idempotent.
func (sub *streamSub) Unsubscribe() {
	s := sub.stream
	s.mu.Lock()
	defer s.mu.Unlock()
	if !sub.active {
		return
	}
	sub.active = false
	for i, cur := range s.subs {
		if cur == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			break
		}
	}
}
