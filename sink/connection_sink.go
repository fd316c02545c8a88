package sink

import (
	"fmt"
	"sync"
	"time"

	"courier/domain"
)

// ConnectionSink buffers messages pushed to a single live connection.
// The transport's write pump drains Events and puts them on the wire.
type ConnectionSink struct {
	Events chan domain.Message

	timeout   time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

func NewConnectionSink(bufferSize int, deliveryTimeout time.Duration) *ConnectionSink {
	return &ConnectionSink{
		Events:  make(chan domain.Message, bufferSize),
		timeout: deliveryTimeout,
		done:    make(chan struct{}),
	}
}

// Push hands the message to the connection's write pump. A full buffer that
// does not drain within the delivery timeout counts as a failed delivery so
// the router can report it instead of blocking the hot path.
func (s *ConnectionSink) Push(message domain.Message) error {
	select {
	case s.Events <- message:
		return nil
	case <-s.done:
		return fmt.Errorf("connection closed")
	case <-time.After(s.timeout):
		return fmt.Errorf("delivery timed out after %s", s.timeout)
	}
}

// Close releases pending and future pushers. Safe to call more than once.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Done is closed once the sink has been shut down.
func (s *ConnectionSink) Done() <-chan struct{} {
	return s.done
}
