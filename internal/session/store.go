// Package session owns the admin credential: the in-memory copy, its durable
// persistence, and the login/logout/startup transitions around it.
package session

import (
	"context"
	"fmt"
	"sync"
)

// Storage keys for the persisted credential. Token and username are stored
// under independent keys; an empty token always forces anonymous even if a
// stray username survived a partial write.
const (
	KeyAuthToken = "admin_auth_token"
	KeyUsername  = "admin_username"
)

// CredentialStorage is the durable client-side key/value store.
type CredentialStorage interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSettings(ctx context.Context, settings map[string]string) error
	DeleteSettings(ctx context.Context, keys ...string) error
}

// Credential is the admin session: an opaque token plus the display name it
// belongs to. An empty token means anonymous.
type Credential struct {
	Token    string
	Username string
}

func (c Credential) Authenticated() bool {
	return c.Token != ""
}

// Store holds the current credential and keeps durable storage in sync with
// every change.
type Store struct {
	mu      sync.RWMutex
	cred    Credential
	storage CredentialStorage
}

func NewStore(storage CredentialStorage) *Store {
	return &Store{storage: storage}
}

// Load reads the persisted credential into memory. A missing or empty token
// resolves to anonymous regardless of what the username key holds.
func (s *Store) Load(ctx context.Context) error {
	token, err := s.storage.GetSetting(ctx, KeyAuthToken)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}
	if token == "" {
		s.mu.Lock()
		s.cred = Credential{}
		s.mu.Unlock()
		return nil
	}

	username, err := s.storage.GetSetting(ctx, KeyUsername)
	if err != nil {
		return fmt.Errorf("failed to load credential: %w", err)
	}

	s.mu.Lock()
	s.cred = Credential{Token: token, Username: username}
	s.mu.Unlock()
	return nil
}

// Current returns the in-memory credential.
func (s *Store) Current() Credential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cred
}

// Set replaces the credential and persists both keys in one storage
// transaction. An empty token clears storage instead, so persisted state can
// never say "authenticated" when memory says anonymous.
func (s *Store) Set(ctx context.Context, cred Credential) error {
	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()

	if !cred.Authenticated() {
		if err := s.storage.DeleteSettings(ctx, KeyAuthToken, KeyUsername); err != nil {
			return fmt.Errorf("failed to clear credential: %w", err)
		}
		return nil
	}

	err := s.storage.SetSettings(ctx, map[string]string{
		KeyAuthToken: cred.Token,
		KeyUsername:  cred.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	return nil
}

// Clear drops the credential from memory and storage.
func (s *Store) Clear(ctx context.Context) error {
	return s.Set(ctx, Credential{})
}
