// Package forms implements the admin content-CRUD workflow as one
// parametric controller: load a cached list, edit an independent draft,
// validate, submit, refetch. Events, services and page content all run
// through the same instance so retry and refresh semantics are identical
// everywhere.
// File: forms/controller.go
package forms

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"ambica-decor/logger"
)

// Workflow errors.
var (
	// ErrBusy: the same operation is already in flight; duplicate
	// submissions are refused rather than queued.
	ErrBusy = errors.New("operation already in progress")
	// ErrNoDraft: Submit was called without BeginCreate/BeginEdit.
	ErrNoDraft = errors.New("no draft in progress")
	// ErrNotConfirmed: Remove requires explicit user confirmation.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// ValidationError lists the required fields left empty in a draft.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required fields missing: %s", strings.Join(e.Missing, ", "))
}

// Ops binds a controller to one entity type's backend operations.
// The server is the source of truth; the controller never patches its
// cache, it always refetches through List.
type Ops[T any] struct {
	List   func() ([]T, error)
	Create func(T) error
	Update func(id string, item T) error
	Delete func(id string) error

	// ID extracts the server-assigned identifier, "" for unsaved drafts.
	ID func(T) string
	// Missing returns the names of required fields that are empty.
	Missing func(T) []string
}

// Draft is an entity's in-memory, unsaved copy. EditingID is "" when
// the draft creates a new entity. DraftID tells concurrent form
// instances apart; it never reaches the backend.
type Draft[T any] struct {
	DraftID   string
	EditingID string
	Value     T
}

// Controller is the generic content-CRUD form controller.
type Controller[T any] struct {
	mu    sync.Mutex
	ops   Ops[T]
	cache []T
	draft *Draft[T]

	loading   bool
	saving    bool
	uploading bool
}

// New builds a controller over the given operations.
func New[T any](ops Ops[T]) *Controller[T] {
	return &Controller[T]{ops: ops}
}

// Load refetches the authoritative list. A failed load keeps the
// previous cache untouched and returns the error for notification.
func (c *Controller[T]) Load() error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.mu.Unlock()

	items, err := c.ops.List()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		logger.Warn.Printf("forms: load failed, keeping previous list: %v", err)
		return err
	}
	c.cache = items
	return nil
}

// Items returns a copy of the last successfully loaded list.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.cache))
	copy(out, c.cache)
	return out
}

// BeginCreate starts a fresh draft from the given empty value.
func (c *Controller[T]) BeginCreate(empty T) Draft[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = &Draft[T]{DraftID: uuid.NewString(), Value: empty}
	return *c.draft
}

// BeginEdit copies an existing entity into a mutable draft. The draft
// is independent of the cached list until Submit reconciles it.
func (c *Controller[T]) BeginEdit(item T) Draft[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = &Draft[T]{DraftID: uuid.NewString(), EditingID: c.ops.ID(item), Value: item}
	return *c.draft
}

// Draft returns the current draft, if any.
func (c *Controller[T]) Draft() (Draft[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		var zero Draft[T]
		return zero, false
	}
	return *c.draft, true
}

// SetDraft mutates only the in-memory draft; no network call. The
// mutate callback runs under the controller lock.
func (c *Controller[T]) SetDraft(mutate func(*T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoDraft
	}
	mutate(&c.draft.Value)
	return nil
}

// DiscardDraft abandons the draft without saving.
func (c *Controller[T]) DiscardDraft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
}

// Submit validates the draft and reconciles it with the server: update
// when editing, create otherwise. On success the draft is discarded and
// the list refetched; on failure the draft is preserved for retry.
func (c *Controller[T]) Submit() error {
	c.mu.Lock()
	if c.saving || c.uploading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.draft == nil {
		c.mu.Unlock()
		return ErrNoDraft
	}
	draft := *c.draft
	c.saving = true
	c.mu.Unlock()

	if missing := c.ops.Missing(draft.Value); len(missing) > 0 {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
		return &ValidationError{Missing: missing}
	}

	var err error
	if draft.EditingID != "" {
		err = c.ops.Update(draft.EditingID, draft.Value)
	} else {
		err = c.ops.Create(draft.Value)
	}

	// the draft must vanish in the same critical section that releases
	// the saving flag; a retry slipping between the two would submit the
	// same draft twice
	c.mu.Lock()
	c.saving = false
	if err == nil {
		c.draft = nil
	}
	c.mu.Unlock()

	if err != nil {
		logger.Warn.Printf("forms: submit failed, draft preserved: %v", err)
		return err
	}

	// refresh is best-effort: the mutation already succeeded, a failed
	// refetch just leaves the previous known-good list on screen
	if err := c.Load(); err != nil && !errors.Is(err, ErrBusy) {
		return err
	}
	return nil
}

// Remove deletes an entity after explicit user confirmation. On success
// the list is refetched; on failure it is left untouched.
func (c *Controller[T]) Remove(id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrBusy
	}
	c.saving = true
	c.mu.Unlock()

	err := c.ops.Delete(id)

	c.mu.Lock()
	c.saving = false
	c.mu.Unlock()

	if err != nil {
		logger.Warn.Printf("forms: delete failed for %s, list untouched: %v", id, err)
		return err
	}
	if err := c.Load(); err != nil && !errors.Is(err, ErrBusy) {
		return err
	}
	return nil
}

// SetUploading flips the uploading busy flag; while set, Submit is
// refused so a form cannot be saved with uploads still in flight.
func (c *Controller[T]) SetUploading(uploading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploading = uploading
}

// Busy reports the per-operation busy flags (loading, saving, uploading).
func (c *Controller[T]) Busy() (bool, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading, c.saving, c.uploading
}
