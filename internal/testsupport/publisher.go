package testsupport

import (
	"context"
	"sync"

	"github.com/iliyamo/cinetour/internal/queue"
)

// Publisher records published events.  Setting Err makes every publish
// fail after recording nothing.
type Publisher struct {
	mu     sync.Mutex
	events []queue.ActivityEvent
	Err    error
}

func (p *Publisher) Publish(_ context.Context, ev queue.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, ev)
	return nil
}

// Events returns a copy of what has been published so far.
func (p *Publisher) Events() []queue.ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.ActivityEvent(nil), p.events...)
}

// Types lists the published event types in order.
func (p *Publisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
