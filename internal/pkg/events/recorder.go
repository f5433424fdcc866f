package events

import (
	"context"
	"sync"
)

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	Events []Recorded
	Err    error
}

type Recorded struct {
	RoutingKey string
	Event      any
}

func (r *Recorder) Publish(_ context.Context, routingKey string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Events = append(r.Events, Recorded{RoutingKey: routingKey, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Snapshot returns a copy of the recorded events.
func (r *Recorder) Snapshot() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.Events...)
}
