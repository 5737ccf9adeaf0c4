package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async -mock_names=InternalBroker=MockInternalBroker

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker fans messages out to in-process subscribers. Publish never
// blocks the caller; delivery happens on a separate goroutine.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	mu           sync.Mutex
	once         sync.Once
	active       bool
	done         chan struct{}
	inflight     sync.WaitGroup
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	subscription := Subscription{ID: uuid.NewString(), Receiver: make(chan BrokerMessage)}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptors[topic] = append(b.subscriptors[topic], &subscriptor{
		subscription: subscription,
		active:       true,
		done:         make(chan struct{}),
	})

	return subscription, nil
}

// Unsubscribe stops delivery to subscription and drops it from topic. The
// topic itself stays known once it has had a subscriber.
func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		b.mu.Unlock()
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		b.mu.Unlock()
		return ErrSubscriptorNotFound
	}

	removed := subscriptors[index]
	b.subscriptors[topic] = slices.Delete(slices.Clone(subscriptors), index, index+1)
	b.mu.Unlock()

	removed.safeClose()

	return nil
}

// Subscribers returns the number of live subscriptions on topic.
func (b *LocalBroker) Subscribers(topic BrokerTopicName) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscriptors[topic])
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	topicSubscriptors, ok := b.subscriptors[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	go b.publish(slices.Clone(topicSubscriptors), msg)

	return nil
}

func (b *LocalBroker) publish(topicSubscriptors []*subscriptor, msg BrokerMessage) {
	for _, s := range topicSubscriptors {
		s.deliver(msg)
	}
}

func (b *LocalBroker) Stop() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

func (s *subscriptor) deliver(msg BrokerMessage) {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()
	defer s.inflight.Done()

	select {
	case s.subscription.Receiver <- msg:
	case <-s.done:
	}
}

// safeClose stops delivery and closes the receiver once every in-flight
// send has given up.
func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		s.mu.Lock()
		s.active = false
		close(s.done)
		s.mu.Unlock()

		go func() {
			s.inflight.Wait()
			close(s.subscription.Receiver)
		}()
	})
}
