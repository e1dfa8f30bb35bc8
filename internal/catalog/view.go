package catalog

import "github.com/mergington/activities-admin/internal/gateway"

// NoSelectionOption is the placeholder first entry of the activity selector.
const NoSelectionOption = "-- Select an activity --"

// ParticipantRow pairs a registered email with its removal control.
type ParticipantRow struct {
	Email string
	// RemovalEnabled mirrors the admin flag at render time.
	RemovalEnabled bool
}

// Card is one activity ready for display.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
}

// View is the renderable snapshot of the whole catalog, in catalog order.
type View struct {
	Cards []Card
	// Options is the selector's option list, placeholder first.
	Options []string
	// Failed marks the terminal inline error state after a fetch failure.
	Failed bool
}

// BuildView computes the renderable view from a catalog snapshot and the
// current admin flag. Pure; safe to call from tests without any UI.
func BuildView(catalog *gateway.Catalog, admin bool) View {
	view := View{
		Options: []string{NoSelectionOption},
	}
	if catalog == nil {
		return view
	}

	for _, name := range catalog.Names {
		activity := catalog.ByName[name]

		spotsLeft := activity.MaxParticipants - len(activity.Participants)
		if spotsLeft < 0 {
			// Over-subscribed data from the server must not break rendering.
			spotsLeft = 0
		}

		card := Card{
			Name:        name,
			Description: activity.Description,
			Schedule:    activity.Schedule,
			SpotsLeft:   spotsLeft,
		}
		for _, email := range activity.Participants {
			card.Participants = append(card.Participants, ParticipantRow{
				Email:          email,
				RemovalEnabled: admin,
			})
		}

		view.Cards = append(view.Cards, card)
		view.Options = append(view.Options, name)
	}

	return view
}
