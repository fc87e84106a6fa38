// Package provider defines the authentication provider the session controller drives,
// and ships a local passphrase-based implementation of it.
//
// A provider is bound to one network when constructed. It cannot be re-pointed;
// switching networks means Cleanup on the old instance and a new one from the Factory.
package provider

import (
	"context"
	"errors"

	"github.com/AlexZinkM/solana-login/internal/model"
)

// ErrCancelled is returned by Login when the user aborts the interactive flow
var ErrCancelled = errors.New("login cancelled by user")

// Options are the construction parameters of a provider
type Options struct {
	ClientID string
	Network  model.NetworkID
}

// LoginOptions control an interactive login
type LoginOptions struct {
	RedirectURL string
	// ForceFreshSession asks for a new session instead of silently reusing one
	ForceFreshSession bool
}

// LogoutOptions control logout
type LogoutOptions struct {
	// Fast skips the full session teardown so the next Init can restore it
	Fast bool
}

// Provider is an authentication provider bound to a single network
type Provider interface {
	// Init prepares the provider and restores an existing session, if any
	Init(ctx context.Context) error
	// CurrentSecret returns the session secret after Init/Login, or nil
	CurrentSecret() []byte
	Login(ctx context.Context, opts LoginOptions) ([]byte, error)
	Logout(ctx context.Context, opts LogoutOptions) error
	UserInfo(ctx context.Context) (*model.UserInfo, error)
	// Cleanup releases the provider's resources. It must be called before the
	// provider is replaced.
	Cleanup() error
}

// Factory constructs a provider bound to opts.Network
type Factory func(opts Options) (Provider, error)
