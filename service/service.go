// Package service wires the client together: gateway, session state machine,
// catalog view model, mutation coordinator, and the terminal display.
package service

import (
	"context"
	"io"

	"github.com/mergington/activities-admin/internal/actions"
	"github.com/mergington/activities-admin/internal/catalog"
	"github.com/mergington/activities-admin/internal/gateway"
	"github.com/mergington/activities-admin/internal/session"
	"github.com/mergington/activities-admin/internal/ui"
	"github.com/mergington/activities-admin/storage"
)

type Service struct {
	Config     *Config
	Gateway    *gateway.Client
	Sessions   *session.Controller
	Activities *catalog.ViewModel
	Actions    *actions.Coordinator
	Banner     *ui.Banner

	store    *session.Store
	renderer *ui.Renderer
}

func New(db *storage.Storage, config *Config, out io.Writer) *Service {
	svc := &Service{
		Config:   config,
		Gateway:  gateway.NewClient(config.APIBaseURL, config.HTTP.Timeout),
		store:    session.NewStore(db),
		renderer: ui.NewRenderer(out),
	}

	svc.Banner = ui.NewBanner(config.Banner.VisibleFor, svc.Redraw)

	svc.Activities = catalog.NewViewModel(
		svc.Gateway,
		func() bool { return svc.store.Current().Authenticated() },
		svc.Redraw,
	)
	refresh := func(ctx context.Context) { svc.Activities.Refresh(ctx) }

	svc.Sessions = session.NewController(svc.store, svc.Gateway, svc.Banner, svc.Redraw, refresh)
	svc.Actions = actions.NewCoordinator(svc.Gateway, svc.Sessions, svc.Banner, refresh, nil)

	return svc
}

// Startup restores any persisted session, then does the initial catalog
// fetch. Mirrors page load: verify first so the first render already knows
// whether the viewer is an admin.
func (s *Service) Startup(ctx context.Context) {
	s.Sessions.Startup(ctx)
	s.Activities.Refresh(ctx)
}

// Redraw repaints the terminal from current state: the catalog view computed
// against the authorization flags as they are right now, plus the banner.
func (s *Service) Redraw() {
	auth := ui.AuthViewFor(s.store.Current())
	view := s.Activities.View()
	msg, visible := s.Banner.Current()
	s.renderer.Render(view, auth, msg, visible)
}
