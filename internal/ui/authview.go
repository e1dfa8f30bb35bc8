package ui

import "github.com/mergington/activities-admin/internal/session"

// AuthView is every authorization-dependent binding, derived from the
// credential alone. All five aspects flip together: there is no partially
// admin UI.
type AuthView struct {
	SignupEnabled      bool
	RemovalEnabled     bool
	LoginVisible       bool
	LogoutVisible      bool
	AdminNoticeVisible bool
	StatusText         string
}

func AuthViewFor(cred session.Credential) AuthView {
	if cred.Authenticated() {
		return AuthView{
			SignupEnabled:  true,
			RemovalEnabled: true,
			LogoutVisible:  true,
			StatusText:     "Logged in as " + cred.Username,
		}
	}
	return AuthView{
		LoginVisible:       true,
		AdminNoticeVisible: true,
		StatusText:         "Viewing as student",
	}
}
