// Package signal provides a minimal destruction-notification primitive:
// a Signal that callbacks can be connected to, and a Resource base type
// implementing maid.Watchable so a Maid can be linked to it.
package signal

import (
	"sync"

	"github.com/arthur-debert/maid/pkg/maid"
)

// Signal is a broadcast point for zero-argument callbacks. The zero value
// is ready to use. Fire invokes the callbacks connected at that moment in
// connection order, skipping any that have disconnected.
type Signal struct {
	mu    sync.Mutex
	conns []*Connection
}

// Connection is a single subscription to a Signal. It satisfies
// maid.Disconnectable, so it can be given to a Maid directly.
type Connection struct {
	mu        sync.Mutex
	fn        func()
	connected bool
}

// Connect registers fn and returns the handle for cancelling the
// subscription.
func (s *Signal) Connect(fn func()) *Connection {
	c := &Connection{fn: fn, connected: true}
	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
	return c
}

// Fire invokes the connected callbacks in connection order. Callbacks run
// outside the Signal's lock, so they may connect or disconnect freely;
// connections made during a fire are not invoked by that fire.
func (s *Signal) Fire() {
	s.mu.Lock()
	conns := make([]*Connection, len(s.conns))
	copy(conns, s.conns)
	s.mu.Unlock()

	for _, c := range conns {
		c.invoke()
	}
}

// Disconnect cancels the subscription. It is idempotent and safe to call
// during a fire; the callback will not run again.
func (c *Connection) Disconnect() {
	c.mu.Lock()
	c.connected = false
	c.fn = nil
	c.mu.Unlock()
}

// Connected reports whether the subscription is still active
func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Connection) invoke() {
	c.mu.Lock()
	fn := c.fn
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Resource is a destroyable value that announces its destruction. It
// implements maid.Watchable and may be embedded to give a type linkable
// lifetime semantics. The zero value is usable; NewResource attaches an
// optional teardown hook that runs after the destroying signal fires.
type Resource struct {
	mu         sync.Mutex
	destroyed  bool
	destroying Signal
	teardown   func()
}

// NewResource creates a Resource whose teardown hook runs once, after the
// destroying signal has fired. A nil teardown is allowed.
func NewResource(teardown func()) *Resource {
	return &Resource{teardown: teardown}
}

// OnDestroying subscribes fn to the start of this resource's destruction
func (r *Resource) OnDestroying(fn func()) maid.Disconnectable {
	return r.destroying.Connect(fn)
}

// Destroy begins destruction: it fires the destroying signal, then runs
// the teardown hook. Calls after the first are no-ops.
func (r *Resource) Destroy() {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	r.destroyed = true
	r.mu.Unlock()

	r.destroying.Fire()

	if r.teardown != nil {
		r.teardown()
	}
}

// Destroyed reports whether Destroy has been called
func (r *Resource) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}
