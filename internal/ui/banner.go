// Package ui holds the display side: the transient message banner, the
// authorization-derived bindings, and the terminal renderer.
package ui

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is one transient banner entry.
type Message struct {
	Text string
	Kind Kind
}

// DefaultVisibleFor matches how long a message stays on screen.
const DefaultVisibleFor = 5 * time.Second

// Banner shows one message at a time and auto-clears it after a fixed
// interval. Each message carries a version; an expiry timer only clears the
// message it was armed for, so a stale timer cannot hide a newer message.
type Banner struct {
	mu         sync.Mutex
	visibleFor time.Duration
	current    Message
	version    ulid.ULID
	visible    bool

	// onChange repaints the display whenever visibility flips.
	onChange func()
}

func NewBanner(visibleFor time.Duration, onChange func()) *Banner {
	if visibleFor <= 0 {
		visibleFor = DefaultVisibleFor
	}
	return &Banner{visibleFor: visibleFor, onChange: onChange}
}

func (b *Banner) Success(text string) {
	b.show(Message{Text: text, Kind: KindSuccess})
}

func (b *Banner) Error(text string) {
	b.show(Message{Text: text, Kind: KindError})
}

// Current returns the visible message, if any.
func (b *Banner) Current() (Message, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current, b.visible
}

func (b *Banner) show(msg Message) {
	b.mu.Lock()
	b.current = msg
	b.visible = true
	version := ulid.Make()
	b.version = version
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange()
	}

	time.AfterFunc(b.visibleFor, func() {
		b.expire(version)
	})
}

func (b *Banner) expire(version ulid.ULID) {
	b.mu.Lock()
	if !b.visible || b.version != version {
		// A newer message replaced this one; leave it alone.
		b.mu.Unlock()
		return
	}
	b.visible = false
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange()
	}
}
