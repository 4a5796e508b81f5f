package maid

import (
	"io"

	"github.com/arthur-debert/maid/pkg/errors"
)

// Task is a unit of deferred cleanup work. Any value may be given to a
// Maid; its shape is inspected at disposal time, not at ingestion time.
// Recognized shapes, in precedence order: Disconnectable, Terminable,
// Destroyable (or io.Closer), func(), func() error. A value matching none
// of these produces a malformed-task error when the cleanup pass reaches it.
type Task = any

// Disconnectable is a cancellable connection, such as an event
// subscription. Disconnect must be safe to call once per registration.
type Disconnectable interface {
	Disconnect()
}

// Destroyable is a resource with ownership semantics. A nested *Maid is
// destroyable: its Destroy runs its own cleanup pass.
type Destroyable interface {
	Destroy()
}

// Terminable is a suspended execution context. Terminate must stop it
// immediately and irreversibly without resuming it.
type Terminable interface {
	Terminate()
}

// Watchable is a destroyable resource that announces its own destruction.
// OnDestroying registers a callback invoked once when destruction begins
// and returns the handle for cancelling that subscription.
type Watchable interface {
	Destroyable
	OnDestroying(fn func()) Disconnectable
}

// dispose classifies a task and invokes its release operation. The case
// order is the precedence contract: a value that is both a connection and
// a resource is disconnected, never destroyed. Panics are contained and
// surfaced as disposal errors so one bad task cannot abandon the rest of
// a cleanup pass.
func dispose(task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrDisposal, "task panicked: %v", r)
		}
	}()

	switch v := task.(type) {
	case nil:
		return errors.New(errors.ErrMalformedTask, "nil task")
	case Disconnectable:
		v.Disconnect()
	case Terminable:
		v.Terminate()
	case Destroyable:
		v.Destroy()
	case io.Closer:
		return v.Close()
	case func():
		v()
	case func() error:
		return v()
	default:
		return errors.Newf(errors.ErrMalformedTask,
			"task of type %T matches no disposable shape and is not callable", task)
	}

	return nil
}
