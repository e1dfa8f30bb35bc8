package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mergington/activities-admin/internal/catalog"
)

// Renderer paints the computed views onto a terminal. It is the only
// effectful piece of the display; everything it prints comes from pure view
// structs.
type Renderer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render paints the full screen state: status line, banner, notice, activity
// cards, and the selection options.
func (r *Renderer) Render(view catalog.View, auth AuthView, msg Message, msgVisible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder

	b.WriteString("== " + auth.StatusText + " ==\n")
	if msgVisible {
		fmt.Fprintf(&b, "[%s] %s\n", msg.Kind, msg.Text)
	}
	if auth.AdminNoticeVisible {
		b.WriteString("Note: teacher login is required to register or remove students.\n")
	}

	if view.Failed {
		b.WriteString("Failed to load activities. Please try again later.\n")
		io.WriteString(r.w, b.String())
		return
	}

	for _, card := range view.Cards {
		fmt.Fprintf(&b, "\n%s\n", card.Name)
		fmt.Fprintf(&b, "  %s\n", card.Description)
		fmt.Fprintf(&b, "  Schedule: %s\n", card.Schedule)
		fmt.Fprintf(&b, "  Availability: %d spots left\n", card.SpotsLeft)
		if len(card.Participants) == 0 {
			b.WriteString("  No participants yet\n")
			continue
		}
		b.WriteString("  Participants:\n")
		for i, row := range card.Participants {
			marker := " "
			if row.RemovalEnabled {
				marker = "x"
			}
			fmt.Fprintf(&b, "    %d. %s [%s]\n", i+1, row.Email, marker)
		}
	}

	b.WriteString("\nActivities:\n")
	for i, option := range view.Options {
		if i == 0 {
			fmt.Fprintf(&b, "  %s\n", option)
			continue
		}
		fmt.Fprintf(&b, "  %d) %s\n", i, option)
	}

	io.WriteString(r.w, b.String())
}
