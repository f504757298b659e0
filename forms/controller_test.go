// file: forms/controller_test.go
package forms

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct {
	ID    string
	Title string
}

// fakeBackend records calls and fails on demand.
type fakeBackend struct {
	items      []widget
	listErr    error
	createErr  error
	updateErr  error
	deleteErr  error
	listCalls  int
	created    []widget
	updated    map[string]widget
	deletedIDs []string
}

func newFakeBackend(items ...widget) *fakeBackend {
	return &fakeBackend{items: items, updated: map[string]widget{}}
}

func (f *fakeBackend) ops() Ops[widget] {
	return Ops[widget]{
		List: func() ([]widget, error) {
			f.listCalls++
			if f.listErr != nil {
				return nil, f.listErr
			}
			out := make([]widget, len(f.items))
			copy(out, f.items)
			return out, nil
		},
		Create: func(w widget) error {
			if f.createErr != nil {
				return f.createErr
			}
			f.created = append(f.created, w)
			f.items = append(f.items, w)
			return nil
		},
		Update: func(id string, w widget) error {
			if f.updateErr != nil {
				return f.updateErr
			}
			f.updated[id] = w
			return nil
		},
		Delete: func(id string) error {
			if f.deleteErr != nil {
				return f.deleteErr
			}
			f.deletedIDs = append(f.deletedIDs, id)
			return nil
		},
		ID: func(w widget) string { return w.ID },
		Missing: func(w widget) []string {
			if w.Title == "" {
				return []string{"title"}
			}
			return nil
		},
	}
}

// Test: load populates the cache; Items returns an independent copy
func TestController_Load(t *testing.T) {
	backend := newFakeBackend(widget{ID: "1", Title: "one"})
	c := New(backend.ops())

	assert.NoError(t, c.Load())
	items := c.Items()
	assert.Len(t, items, 1)

	items[0].Title = "mutated"
	assert.Equal(t, "one", c.Items()[0].Title)
}

// Test: a failed load keeps the previous cache
func TestController_LoadFailureKeepsCache(t *testing.T) {
	backend := newFakeBackend(widget{ID: "1", Title: "one"})
	c := New(backend.ops())
	assert.NoError(t, c.Load())

	backend.listErr = errors.New("backend down")
	assert.Error(t, c.Load())
	assert.Len(t, c.Items(), 1, "cache must survive a failed refetch")
}

// Test: submit of a valid create draft hits the backend and refetches
func TestController_SubmitCreate(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend.ops())

	c.BeginCreate(widget{})
	assert.NoError(t, c.SetDraft(func(w *widget) { w.Title = "new widget" }))
	assert.NoError(t, c.Submit())

	assert.Len(t, backend.created, 1)
	assert.Len(t, c.Items(), 1)

	_, hasDraft := c.Draft()
	assert.False(t, hasDraft, "successful submit discards the draft")
}

// Test: editing submits an update keyed by the original identifier
func TestController_SubmitUpdate(t *testing.T) {
	backend := newFakeBackend(widget{ID: "7", Title: "old"})
	c := New(backend.ops())
	assert.NoError(t, c.Load())

	c.BeginEdit(c.Items()[0])
	assert.NoError(t, c.SetDraft(func(w *widget) { w.Title = "renamed" }))
	assert.NoError(t, c.Submit())

	assert.Equal(t, "renamed", backend.updated["7"].Title)
	assert.Empty(t, backend.created)
}

// Test: validation failure reports the missing fields, nothing is sent
func TestController_SubmitValidation(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend.ops())

	c.BeginCreate(widget{})
	err := c.Submit()

	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"title"}, validation.Missing)
	assert.Empty(t, backend.created)

	_, hasDraft := c.Draft()
	assert.True(t, hasDraft, "invalid draft is preserved for correction")
}

// Test: a failed mutation preserves both the draft and the cached list
func TestController_SubmitFailurePreservesDraft(t *testing.T) {
	backend := newFakeBackend(widget{ID: "1", Title: "one"})
	c := New(backend.ops())
	assert.NoError(t, c.Load())

	backend.createErr = errors.New("backend down")
	c.BeginCreate(widget{})
	assert.NoError(t, c.SetDraft(func(w *widget) { w.Title = "doomed" }))

	assert.Error(t, c.Submit())

	draft, hasDraft := c.Draft()
	assert.True(t, hasDraft)
	assert.Equal(t, "doomed", draft.Value.Title)
	assert.Len(t, c.Items(), 1, "cache stays in sync with the last successful fetch")
}

// Test: submit without a draft is refused
func TestController_SubmitNoDraft(t *testing.T) {
	c := New(newFakeBackend().ops())
	assert.ErrorIs(t, c.Submit(), ErrNoDraft)
}

// Test: submit is refused while an upload is in flight
func TestController_SubmitWhileUploading(t *testing.T) {
	c := New(newFakeBackend().ops())
	c.BeginCreate(widget{Title: "ready"})

	c.SetUploading(true)
	assert.ErrorIs(t, c.Submit(), ErrBusy)

	c.SetUploading(false)
	assert.NoError(t, c.Submit())
}

// Test: racing submits of one draft create the entity exactly once
func TestController_SubmitConcurrentSingleCreate(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend.ops())
	c.BeginCreate(widget{Title: "once"})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Submit()
		}()
	}
	wg.Wait()

	assert.Len(t, backend.created, 1, "losers must see ErrBusy or ErrNoDraft, never a second create")
	_, hasDraft := c.Draft()
	assert.False(t, hasDraft)
}

// Test: discard abandons the draft without touching the backend
func TestController_DiscardDraft(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend.ops())

	c.BeginCreate(widget{Title: "scratch"})
	c.DiscardDraft()

	_, hasDraft := c.Draft()
	assert.False(t, hasDraft)
	assert.Empty(t, backend.created)
}

// Test: each draft carries a fresh identity
func TestController_DraftIdentity(t *testing.T) {
	c := New(newFakeBackend().ops())
	first := c.BeginCreate(widget{})
	second := c.BeginCreate(widget{})

	assert.NotEmpty(t, first.DraftID)
	assert.NotEqual(t, first.DraftID, second.DraftID)
}

// Test: remove requires confirmation, then deletes and refetches
func TestController_Remove(t *testing.T) {
	backend := newFakeBackend(widget{ID: "9", Title: "nine"})
	c := New(backend.ops())
	assert.NoError(t, c.Load())

	assert.ErrorIs(t, c.Remove("9", false), ErrNotConfirmed)
	assert.Empty(t, backend.deletedIDs)

	backend.items = nil
	assert.NoError(t, c.Remove("9", true))
	assert.Equal(t, []string{"9"}, backend.deletedIDs)
	assert.Empty(t, c.Items())
}

// Test: a failed delete leaves the cached list untouched
func TestController_RemoveFailure(t *testing.T) {
	backend := newFakeBackend(widget{ID: "9", Title: "nine"})
	c := New(backend.ops())
	assert.NoError(t, c.Load())

	backend.deleteErr = errors.New("backend down")
	assert.Error(t, c.Remove("9", true))
	assert.Len(t, c.Items(), 1)
}
