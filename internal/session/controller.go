package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mergington/activities-admin/internal/gateway"
)

// Gateway is the slice of the signup service the controller talks to.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*gateway.LoginResult, error)
	Logout(ctx context.Context, token string) error
	SessionStatus(ctx context.Context, token string) (string, error)
}

// Notifier shows transient user-facing messages.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Controller runs the session state machine: Anonymous or
// Authenticated(username). Each transition updates memory and storage
// together, then the derived UI bindings, with no other transition
// interleaving its steps.
type Controller struct {
	mu     sync.Mutex
	store  *Store
	gw     Gateway
	notify Notifier

	// onAuthChange re-derives every authorization-dependent UI binding.
	onAuthChange func()
	// refreshCatalog re-fetches the activity list after login/logout.
	refreshCatalog func(ctx context.Context)
}

func NewController(store *Store, gw Gateway, notify Notifier, onAuthChange func(), refreshCatalog func(ctx context.Context)) *Controller {
	return &Controller{
		store:          store,
		gw:             gw,
		notify:         notify,
		onAuthChange:   onAuthChange,
		refreshCatalog: refreshCatalog,
	}
}

// Startup restores a persisted session. Without a stored token it resolves to
// anonymous with no network call; with one it verifies the token against the
// service and clears it on any failure. Best-effort: never returns an error.
func (c *Controller) Startup(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Load(ctx); err != nil {
		slog.Error("failed to load stored credential", "error", err)
	}

	cred := c.store.Current()
	if !cred.Authenticated() {
		c.onAuthChange()
		return
	}

	username, err := c.gw.SessionStatus(ctx, cred.Token)
	if err != nil {
		slog.Warn("stored session no longer valid", "error", err)
		if err := c.store.Clear(ctx); err != nil {
			slog.Error("failed to clear credential", "error", err)
		}
		c.onAuthChange()
		return
	}

	// The service's answer wins, but keep the stored name if it sent none.
	if username == "" {
		username = cred.Username
	}
	if err := c.store.Set(ctx, Credential{Token: cred.Token, Username: username}); err != nil {
		slog.Error("failed to persist credential", "error", err)
	}
	c.onAuthChange()
}

// Login exchanges credentials for a session. On success the credential is
// persisted, bindings update, and the catalog refreshes; on rejection the
// current state is left untouched and the server's detail is surfaced.
func (c *Controller) Login(ctx context.Context, username, password string) {
	c.mu.Lock()

	result, err := c.gw.Login(ctx, username, password)
	if err != nil {
		c.mu.Unlock()
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			c.notify.Error(gateway.Detail(err, "Login failed"))
		} else {
			slog.Error("login request failed", "error", err)
			c.notify.Error("Failed to login. Please try again.")
		}
		return
	}

	if err := c.store.Set(ctx, Credential{Token: result.Token, Username: result.Username}); err != nil {
		slog.Error("failed to persist credential", "error", err)
	}
	c.onAuthChange()
	c.mu.Unlock()

	c.notify.Success("Welcome, " + result.Username)
	c.refreshCatalog(ctx)
}

// Logout invalidates the session server-side. A rejected logout is surfaced
// and changes nothing; a successful one drops the credential, clears storage,
// and refreshes the catalog.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()

	cred := c.store.Current()
	if err := c.gw.Logout(ctx, cred.Token); err != nil {
		c.mu.Unlock()
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			c.notify.Error(gateway.Detail(err, "Logout failed"))
		} else {
			slog.Error("logout request failed", "error", err)
			c.notify.Error("Failed to logout. Please try again.")
		}
		return
	}

	if err := c.store.Clear(ctx); err != nil {
		slog.Error("failed to clear credential", "error", err)
	}
	c.onAuthChange()
	c.mu.Unlock()

	c.notify.Success("Logged out")
	c.refreshCatalog(ctx)
}

// ForceAnonymous tears the session down without a server call. Used when an
// authenticated request comes back 401: the server already revoked the token.
func (c *Controller) ForceAnonymous(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		slog.Error("failed to clear credential", "error", err)
	}
	c.onAuthChange()
}

// Current returns the credential the controller is acting on.
func (c *Controller) Current() Credential {
	return c.store.Current()
}
