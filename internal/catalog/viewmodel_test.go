package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities-admin/internal/gateway"
)

type funcLister struct {
	fn func(ctx context.Context) (*gateway.Catalog, error)
}

func (l *funcLister) ListActivities(ctx context.Context) (*gateway.Catalog, error) {
	return l.fn(ctx)
}

func singleActivity(name string) *gateway.Catalog {
	return &gateway.Catalog{
		Names:  []string{name},
		ByName: map[string]gateway.Activity{name: {MaxParticipants: 2}},
	}
}

// TestRefresh_ReplacesCatalogWholesale swaps the snapshot on every fetch so
// stale entries cannot linger.
func TestRefresh_ReplacesCatalogWholesale(t *testing.T) {
	var current *gateway.Catalog
	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) { return current, nil }}

	updates := 0
	vm := NewViewModel(lister, func() bool { return false }, func() { updates++ })

	current = singleActivity("Chess Club")
	vm.Refresh(context.Background())
	assert.Equal(t, []string{NoSelectionOption, "Chess Club"}, vm.View().Options)

	current = singleActivity("Art Club")
	vm.Refresh(context.Background())
	assert.Equal(t, []string{NoSelectionOption, "Art Club"}, vm.View().Options)
	assert.Equal(t, 2, updates)
}

// TestRefresh_FailureRendersErrorState resolves a fetch failure to the inline
// error view without propagating.
func TestRefresh_FailureRendersErrorState(t *testing.T) {
	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) {
		return nil, errors.New("connection refused")
	}}
	vm := NewViewModel(lister, func() bool { return false }, func() {})

	vm.Refresh(context.Background())

	view := vm.View()
	assert.True(t, view.Failed)
	assert.Empty(t, view.Cards)
}

// TestRefresh_RecoversAfterFailure clears the error state on the next good
// fetch.
func TestRefresh_RecoversAfterFailure(t *testing.T) {
	fail := true
	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) {
		if fail {
			return nil, errors.New("connection refused")
		}
		return singleActivity("Chess Club"), nil
	}}
	vm := NewViewModel(lister, func() bool { return false }, func() {})

	vm.Refresh(context.Background())
	require.True(t, vm.View().Failed)

	fail = false
	vm.Refresh(context.Background())
	assert.False(t, vm.View().Failed)
	assert.Len(t, vm.View().Cards, 1)
}

// TestRefresh_StaleResponseDiscarded lets a slow older fetch lose to a newer
// one instead of resurrecting stale data.
func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	var calls atomic.Int32
	firstMayReturn := make(chan struct{})

	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) {
		if calls.Add(1) == 1 {
			<-firstMayReturn
			return singleActivity("Old"), nil
		}
		return singleActivity("New"), nil
	}}

	updates := 0
	vm := NewViewModel(lister, func() bool { return false }, func() { updates++ })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		vm.Refresh(context.Background())
	}()

	// Wait until the first fetch is in flight, then run a second one.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	vm.Refresh(context.Background())
	require.Equal(t, []string{NoSelectionOption, "New"}, vm.View().Options)

	// Let the first fetch finish; its answer must be dropped.
	close(firstMayReturn)
	wg.Wait()

	assert.Equal(t, []string{NoSelectionOption, "New"}, vm.View().Options)
	assert.Equal(t, 1, updates)
}

// TestView_ReadsAdminFlagAtRenderTime re-derives removal controls from the
// flag as it is now, with no new fetch.
func TestView_ReadsAdminFlagAtRenderTime(t *testing.T) {
	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) {
		return &gateway.Catalog{
			Names:  []string{"Chess Club"},
			ByName: map[string]gateway.Activity{"Chess Club": {MaxParticipants: 2, Participants: []string{"a@x.com"}}},
		}, nil
	}}

	admin := false
	vm := NewViewModel(lister, func() bool { return admin }, func() {})
	vm.Refresh(context.Background())

	assert.False(t, vm.View().Cards[0].Participants[0].RemovalEnabled)

	admin = true
	assert.True(t, vm.View().Cards[0].Participants[0].RemovalEnabled)
}

// TestActivityName_ResolvesSelectorNumbers maps 1-based option numbers back
// to names and rejects the placeholder.
func TestActivityName_ResolvesSelectorNumbers(t *testing.T) {
	lister := &funcLister{fn: func(context.Context) (*gateway.Catalog, error) {
		return singleActivity("Chess Club"), nil
	}}
	vm := NewViewModel(lister, func() bool { return false }, func() {})
	vm.Refresh(context.Background())

	name, ok := vm.ActivityName(1)
	require.True(t, ok)
	assert.Equal(t, "Chess Club", name)

	_, ok = vm.ActivityName(0)
	assert.False(t, ok)
	_, ok = vm.ActivityName(2)
	assert.False(t, ok)
}
