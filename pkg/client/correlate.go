package client

import (
	"sync"

	"github.com/jg-phare/esl/pkg/frame"
)

// jobCorrelator matches an asynchronous BACKGROUND_JOB event back to
// the bigapi call that spawned it, by Job-UUID (spec.md §D "Job-UUID
// correlation"), through a pending map keyed by a generated UUID rather
// than by reply ordering. Generalized from StdioTransport's
// pending/pendMu pair, from an int request id to a string Job-UUID.
type jobCorrelator struct {
	mu      sync.Mutex
	pending map[string]chan *frame.Message
}

func newJobCorrelator() *jobCorrelator {
	return &jobCorrelator{pending: make(map[string]chan *frame.Message)}
}

// register opens a slot for id before the bigapi command is sent, so a
// BACKGROUND_JOB event that arrives before the enclosing call reaches
// its own wait-point is never missed.
func (c *jobCorrelator) register(id string) chan *frame.Message {
	ch := make(chan *frame.Message, 1)
	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	return ch
}

// resolve delivers msg to the pending caller for its Job-UUID, if any
// is waiting. Called from the dispatch loop for every BACKGROUND_JOB
// event observed on the inbound broadcast.
func (c *jobCorrelator) resolve(id string, msg *frame.Message) bool {
	c.mu.Lock()
	ch, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	c.mu.Unlock()
	if !ok {
		return false
	}
	ch <- msg
	return true
}

// cancel removes id's slot without delivering anything, used when a
// bigapi call gives up waiting (context canceled, session closed).
func (c *jobCorrelator) cancel(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}
