package maid

import (
	stderrors "errors"
	"sync"

	"github.com/arthur-debert/maid/pkg/errors"
	"github.com/arthur-debert/maid/pkg/logging"
)

// Maid is a deferred-cleanup task registry. The zero value is not usable;
// create one with New. A Maid is safe for concurrent use: ingestion and
// cleanup are serialized around the internal task sequence, and tasks are
// disposed outside the lock so they may re-enter the Maid freely.
type Maid struct {
	mu    sync.Mutex
	tasks []taskEntry
}

// taskEntry holds one registered task. Keyed entries come from SetTask and
// keep their sequence position across replacement; unkeyed entries have an
// empty key.
type taskEntry struct {
	key  string
	task Task
}

// New creates a new empty Maid
func New() *Maid {
	return &Maid{}
}

// GiveTask appends a task to the registry. The task is not validated here;
// classification happens during the cleanup pass that disposes it. Tasks
// given while a cleanup pass is running are deferred to the next pass.
func (m *Maid) GiveTask(task Task) {
	m.mu.Lock()
	m.tasks = append(m.tasks, taskEntry{task: task})
	m.mu.Unlock()
}

// GiveTasks appends tasks in argument order, equivalent to calling
// GiveTask for each.
func (m *Maid) GiveTasks(tasks ...Task) {
	m.mu.Lock()
	for _, task := range tasks {
		m.tasks = append(m.tasks, taskEntry{task: task})
	}
	m.mu.Unlock()
}

// SetTask registers a task under a key. If the key is already occupied,
// the previous occupant is disposed immediately and the new task takes
// over its position in the sequence. Setting a nil task disposes and
// removes the occupant. The returned error reports a disposal failure of
// the replaced task, or invalid input for an empty key.
func (m *Maid) SetTask(key string, task Task) error {
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "task key cannot be empty")
	}

	var old Task
	found := false

	m.mu.Lock()
	for i := range m.tasks {
		if m.tasks[i].key == key {
			old = m.tasks[i].task
			found = true
			if task == nil {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			} else {
				m.tasks[i].task = task
			}
			break
		}
	}
	if !found && task != nil {
		m.tasks = append(m.tasks, taskEntry{key: key, task: task})
	}
	m.mu.Unlock()

	if !found {
		return nil
	}

	if err := dispose(old); err != nil {
		return errors.Wrapf(err, errors.ErrDisposal, "disposing replaced task %q", key)
	}
	return nil
}

// TaskCount returns the number of tasks currently registered
func (m *Maid) TaskCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// LinkToResource ties this Maid's lifetime to a resource's. It registers
// the resource itself as a destroy-task and a subscription to the
// resource's destruction notification whose callback runs DoCleaning, so
// a cleanup pass releases both no matter whether it was triggered by the
// event or called directly.
//
// The resource is owned, not merely observed: a manual DoCleaning destroys
// it. The destruction callback re-entering DoCleaning while a pass is
// already disposing the resource observes an empty sequence and is a no-op,
// so nothing is disposed twice.
func (m *Maid) LinkToResource(r Watchable) {
	conn := r.OnDestroying(func() {
		if err := m.DoCleaning(); err != nil {
			logger := logging.GetLogger("maid")
			logger.Error().Err(err).Msg("Cleanup triggered by resource destruction failed")
		}
	})

	m.GiveTask(r)
	m.GiveTask(conn)
}

// DoCleaning disposes every task registered before the call, in insertion
// order, and leaves the Maid empty and reusable. The task sequence is
// snapshotted and replaced under the lock before any task is disposed, so
// tasks registered by the disposals themselves land in the next pass and a
// re-entrant DoCleaning is a harmless no-op.
//
// A failing or panicking task does not stop the pass: its error is
// collected and the remaining tasks are still disposed. The returned error
// joins one coded error per failed task, or is nil when every disposal
// succeeded.
func (m *Maid) DoCleaning() error {
	m.mu.Lock()
	tasks := m.tasks
	m.tasks = nil
	m.mu.Unlock()

	if len(tasks) == 0 {
		return nil
	}

	logger := logging.GetLogger("maid")
	logger.Debug().Int("tasks", len(tasks)).Msg("Cleanup pass started")

	var errs []error
	for i, e := range tasks {
		if err := dispose(e.task); err != nil {
			logger.Debug().Err(err).Int("index", i).Msg("Task disposal failed")
			errs = append(errs, errors.Wrapf(err, errors.ErrDisposal,
				"disposing task %d", i).WithDetail("index", i))
		}
	}

	logger.Debug().Int("tasks", len(tasks)).Int("failed", len(errs)).Msg("Cleanup pass finished")

	return stderrors.Join(errs...)
}

// Disconnect is an alias for DoCleaning so a Maid can be given to another
// Maid as a cancellable connection. Errors from the pass are logged, not
// returned.
func (m *Maid) Disconnect() {
	if err := m.DoCleaning(); err != nil {
		logger := logging.GetLogger("maid")
		logger.Error().Err(err).Msg("Cleanup pass failed")
	}
}

// Destroy is an alias for DoCleaning, mirroring Disconnect for the
// destroyable shape.
func (m *Maid) Destroy() {
	m.Disconnect()
}
