package ui

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBanner_AutoClears hides the message after the visibility window.
func TestBanner_AutoClears(t *testing.T) {
	var changes atomic.Int32
	banner := NewBanner(50*time.Millisecond, func() { changes.Add(1) })

	banner.Success("Logged out")

	msg, visible := banner.Current()
	require.True(t, visible)
	assert.Equal(t, "Logged out", msg.Text)
	assert.Equal(t, KindSuccess, msg.Kind)

	require.Eventually(t, func() bool {
		_, visible := banner.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), changes.Load())
}

// TestBanner_StaleClearDoesNotHideNewerMessage covers the double-show case:
// the first message's expiry must not blank a message shown after it.
func TestBanner_StaleClearDoesNotHideNewerMessage(t *testing.T) {
	banner := NewBanner(60*time.Millisecond, nil)

	banner.Error("first")
	time.Sleep(30 * time.Millisecond)
	banner.Success("second")

	// Past the first message's expiry, before the second's.
	time.Sleep(50 * time.Millisecond)
	msg, visible := banner.Current()
	require.True(t, visible, "newer message must survive the older clear")
	assert.Equal(t, "second", msg.Text)

	// The second message still expires on its own schedule.
	require.Eventually(t, func() bool {
		_, visible := banner.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)
}

// TestBanner_ReshowAfterClear starts a fresh visibility window each time.
func TestBanner_ReshowAfterClear(t *testing.T) {
	banner := NewBanner(30*time.Millisecond, nil)

	banner.Error("one")
	require.Eventually(t, func() bool {
		_, visible := banner.Current()
		return !visible
	}, time.Second, 5*time.Millisecond)

	banner.Error("two")
	msg, visible := banner.Current()
	require.True(t, visible)
	assert.Equal(t, "two", msg.Text)
}
