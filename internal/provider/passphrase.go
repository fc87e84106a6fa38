package provider

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/solana-login/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for session secrets. Cheaper than the keystore
	// parameters since this runs on every interactive login.
	sessionScryptN   = 1 << 15
	sessionScryptR   = 8
	sessionScryptP   = 1
	sessionSecretLen = 32

	verifierPassphrase = "passphrase"
)

var errClosed = errors.New("provider is closed")

// Prompter asks the user for a passphrase. An empty answer means the user cancelled.
type Prompter func(ctx context.Context, prompt string) ([]byte, error)

// Sessions is the process-wide session cache shared by passphrase providers.
// It plays the role of the provider-held token that makes session restore work
// across provider reconstruction.
type Sessions struct {
	mu      sync.Mutex
	secrets map[string][]byte
}

// NewSessions creates an empty session cache
func NewSessions() *Sessions {
	return &Sessions{secrets: make(map[string][]byte)}
}

func (s *Sessions) load(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	secret, ok := s.secrets[key]
	if !ok {
		return nil
	}
	return clone(secret)
}

func (s *Sessions) store(key string, secret []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.secrets[key])
	s.secrets[key] = clone(secret)
}

func (s *Sessions) drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.secrets[key])
	delete(s.secrets, key)
}

// Passphrase is a local provider: the session secret is derived from a passphrase,
// the client id and the network, so every network yields its own key.
type Passphrase struct {
	clientID string
	network  model.NetworkID
	sessions *Sessions
	prompt   Prompter

	mu     sync.Mutex
	secret []byte
	closed bool
}

// NewPassphraseFactory returns a Factory building passphrase providers that share sessions
func NewPassphraseFactory(sessions *Sessions, prompt Prompter) Factory {
	return func(opts Options) (Provider, error) {
		if opts.ClientID == "" {
			return nil, errors.New("client id is required")
		}
		if !opts.Network.Valid() {
			return nil, fmt.Errorf("unsupported network %q", opts.Network)
		}
		return &Passphrase{
			clientID: opts.ClientID,
			network:  opts.Network,
			sessions: sessions,
			prompt:   prompt,
		}, nil
	}
}

// Init restores a cached session for this network, if there is one
func (p *Passphrase) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errClosed
	}
	p.secret = p.sessions.load(p.key())
	return nil
}

// CurrentSecret returns a copy of the session secret, or nil when logged out
func (p *Passphrase) CurrentSecret() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return clone(p.secret)
}

// Login prompts for a passphrase unless a session exists and a fresh one was not requested
func (p *Passphrase) Login(ctx context.Context, opts LoginOptions) ([]byte, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errClosed
	}
	if !opts.ForceFreshSession && p.secret != nil {
		secret := clone(p.secret)
		p.mu.Unlock()
		return secret, nil
	}
	p.mu.Unlock()

	passphrase, err := p.prompt(ctx, fmt.Sprintf("Passphrase for %s on %s: ", p.clientID, p.network))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	defer clear(passphrase)
	if len(passphrase) == 0 {
		return nil, ErrCancelled
	}
	// the terminal read cannot be interrupted, so a late answer is dropped here
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	secret, err := deriveSessionSecret(passphrase, p.clientID, p.network)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		clear(secret)
		return nil, errClosed
	}
	clear(p.secret)
	p.secret = secret
	p.sessions.store(p.key(), secret)
	return clone(secret), nil
}

// Logout drops the in-memory secret. Without Fast the cached session is removed too.
func (p *Passphrase) Logout(ctx context.Context, opts LogoutOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.secret)
	p.secret = nil
	if !opts.Fast {
		p.sessions.drop(p.key())
	}
	return nil
}

// UserInfo returns the profile of the logged in user
func (p *Passphrase) UserInfo(ctx context.Context) (*model.UserInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.secret == nil {
		return nil, errors.New("no active session")
	}
	return &model.UserInfo{
		Name:        p.clientID,
		Verifier:    verifierPassphrase,
		VerifierID:  p.clientID,
		TypeOfLogin: verifierPassphrase,
	}, nil
}

// Cleanup wipes the secret and marks the provider unusable. Safe to call twice.
func (p *Passphrase) Cleanup() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.secret)
	p.secret = nil
	p.closed = true
	return nil
}

func (p *Passphrase) key() string {
	return p.clientID + "/" + string(p.network)
}

func deriveSessionSecret(passphrase []byte, clientID string, network model.NetworkID) ([]byte, error) {
	salt := sha256.Sum256([]byte(clientID + "/" + string(network)))
	secret, err := scrypt.Key(passphrase, salt[:], sessionScryptN, sessionScryptR, sessionScryptP, sessionSecretLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive session secret: %w", err)
	}
	return secret, nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
