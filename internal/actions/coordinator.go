// Package actions performs the admin mutations: registering and removing
// student emails. The server's answer is authoritative; a 401 tears the local
// session down before the error is shown.
package actions

import (
	"context"
	"errors"

	"github.com/mergington/activities-admin/internal/gateway"
	"github.com/mergington/activities-admin/internal/session"
)

// Gateway is the slice of the signup service the coordinator calls.
type Gateway interface {
	Signup(ctx context.Context, activity, email, token string) (string, error)
	Unregister(ctx context.Context, activity, email, token string) (string, error)
}

// Session exposes the credential and the forced-teardown transition.
type Session interface {
	Current() session.Credential
	ForceAnonymous(ctx context.Context)
}

// Notifier shows transient user-facing messages.
type Notifier interface {
	Success(text string)
	Error(text string)
}

type Coordinator struct {
	gw      Gateway
	session Session
	notify  Notifier

	// refresh re-fetches the catalog after a successful mutation.
	refresh func(ctx context.Context)
	// clearForm resets the signup inputs after a successful registration.
	clearForm func()
}

func NewCoordinator(gw Gateway, sess Session, notify Notifier, refresh func(ctx context.Context), clearForm func()) *Coordinator {
	return &Coordinator{
		gw:        gw,
		session:   sess,
		notify:    notify,
		refresh:   refresh,
		clearForm: clearForm,
	}
}

// Signup registers email for an activity. While anonymous it fails locally
// without touching the network.
func (c *Coordinator) Signup(ctx context.Context, activity, email string) {
	cred := c.session.Current()
	if !cred.Authenticated() {
		c.notify.Error("Teacher login is required to register students.")
		return
	}

	message, err := c.gw.Signup(ctx, activity, email, cred.Token)
	if err != nil {
		c.fail(ctx, err, "Failed to sign up. Please try again.")
		return
	}

	c.notify.Success(message)
	if c.clearForm != nil {
		c.clearForm()
	}
	c.refresh(ctx)
}

// Unregister removes email from an activity's roster. No local auth
// pre-check: the control is only offered to authenticated viewers, and the
// server decides anyway.
func (c *Coordinator) Unregister(ctx context.Context, activity, email string) {
	cred := c.session.Current()

	message, err := c.gw.Unregister(ctx, activity, email, cred.Token)
	if err != nil {
		c.fail(ctx, err, "Failed to unregister. Please try again.")
		return
	}

	c.notify.Success(message)
	c.refresh(ctx)
}

// fail maps a mutation error to a user message. Session teardown on 401
// happens first, so the UI is already anonymous when the message shows.
func (c *Coordinator) fail(ctx context.Context, err error, transportMessage string) {
	if gateway.IsUnauthorized(err) {
		c.session.ForceAnonymous(ctx)
	}

	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		c.notify.Error(gateway.Detail(err, "An error occurred"))
		return
	}
	c.notify.Error(transportMessage)
}
