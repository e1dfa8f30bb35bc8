// Package catalog fetches the activity list and turns it into a renderable
// snapshot. The catalog is replaced wholesale on every fetch; nothing is
// merged, so stale participant entries cannot survive a refresh.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mergington/activities-admin/internal/gateway"
)

// Lister is the slice of the signup service the view model reads from.
type Lister interface {
	ListActivities(ctx context.Context) (*gateway.Catalog, error)
}

// ViewModel holds the last fetched catalog and produces Views from it.
type ViewModel struct {
	mu       sync.Mutex
	lister   Lister
	catalog  *gateway.Catalog
	failed   bool
	fetchSeq uint64

	// isAdmin reports the authorization flag at render time.
	isAdmin func() bool
	// onUpdate repaints the display after the catalog changed.
	onUpdate func()
}

func NewViewModel(lister Lister, isAdmin func() bool, onUpdate func()) *ViewModel {
	return &ViewModel{
		lister:   lister,
		isAdmin:  isAdmin,
		onUpdate: onUpdate,
	}
}

// Refresh fetches the catalog and replaces the snapshot. Failures resolve to
// an inline error state, never an error return. Concurrent refreshes race
// last-write-wins, except that a response older than the latest dispatched
// fetch is discarded so it cannot resurrect stale data.
func (vm *ViewModel) Refresh(ctx context.Context) {
	vm.mu.Lock()
	vm.fetchSeq++
	seq := vm.fetchSeq
	vm.mu.Unlock()

	catalog, err := vm.lister.ListActivities(ctx)

	vm.mu.Lock()
	if seq < vm.fetchSeq {
		vm.mu.Unlock()
		slog.Debug("discarding stale catalog response", "seq", seq)
		return
	}
	if err != nil {
		slog.Error("failed to fetch activities", "error", err)
		vm.catalog = nil
		vm.failed = true
	} else {
		vm.catalog = catalog
		vm.failed = false
	}
	vm.mu.Unlock()

	vm.onUpdate()
}

// View computes the renderable snapshot from the cached catalog, reading the
// admin flag at call time. Call again after any authorization change even if
// the catalog itself is unchanged.
func (vm *ViewModel) View() View {
	vm.mu.Lock()
	catalog := vm.catalog
	failed := vm.failed
	vm.mu.Unlock()

	view := BuildView(catalog, vm.isAdmin())
	view.Failed = failed
	return view
}

// ActivityName resolves a selector option number (1-based, as rendered) back
// to an activity name. Ok is false for the placeholder or an out-of-range pick.
func (vm *ViewModel) ActivityName(option int) (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.catalog == nil || option < 1 || option > len(vm.catalog.Names) {
		return "", false
	}
	return vm.catalog.Names[option-1], true
}
