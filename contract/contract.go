package contract

import "courier/domain"

// EventSink is one live connection's inbox. The transport layer drains it
// and writes the events to the wire.
type EventSink interface {
	Push(message domain.Message) error
}

// PushObserver is notified when a best-effort push towards a receiver could
// not be completed. Delivery is a side effect of sending: its failure never
// changes the outcome of the triggering operation, so this hook is the only
// place where it becomes visible.
type PushObserver func(receiverID string, err error)
