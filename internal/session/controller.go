// Package session drives the login lifecycle: it binds an authentication provider
// to the selected network, restores or creates a session, derives the Solana keypair
// from the provider secret and looks up the account behind it.
//
// Every (re)initialization starts a new epoch. Results of provider calls and account
// lookups that come back after the epoch moved on are dropped, so the last selected
// network always wins. The controller mutex is never held across those calls.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/solana-login/internal/crypto"
	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/provider"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

var (
	// ErrProviderInitFailed is returned when the provider cannot be constructed or initialized
	ErrProviderInitFailed = errors.New("authentication provider initialization failed")
	// ErrLoginFailed is returned when interactive login fails, including user cancellation
	ErrLoginFailed = errors.New("login failed")
	// ErrInvalidState is returned when an operation is not allowed in the current status
	ErrInvalidState = errors.New("operation not allowed in current session state")
	// ErrSuperseded is returned to callers whose result was discarded because the session was re-initialized
	ErrSuperseded = errors.New("result discarded: session was re-initialized")
)

// AccountResolver fetches on-chain account state for a public key
type AccountResolver interface {
	FetchAccount(ctx context.Context, owner solana.PublicKey) (*model.AccountState, error)
}

// ResolverFactory returns the resolver bound to a network
type ResolverFactory func(network model.NetworkConfig) AccountResolver

// NetworkSelector resolves and persists the active network
type NetworkSelector interface {
	Active() model.NetworkConfig
	SetActive(id string) (model.NetworkConfig, error)
}

// Config holds the collaborators of a Controller
type Config struct {
	ClientID    string
	RedirectURL string
	Selector    NetworkSelector
	NewProvider provider.Factory
	NewResolver ResolverFactory
	Logger      *zap.Logger
}

// Snapshot is a consistent copy of the controller state for presentation
type Snapshot struct {
	Loading   bool
	Status    model.SessionStatus
	Network   model.NetworkConfig
	Keypair   *model.Keypair
	Account   *model.AccountState
	User      *model.UserInfo
	LastError error
}

// Controller owns the session state machine and the active provider
type Controller struct {
	clientID    string
	redirectURL string
	selector    NetworkSelector
	newProvider provider.Factory
	newResolver ResolverFactory
	log         *zap.Logger

	// restartMu orders restarts so the persisted network and the epoch agree.
	// It is held across settings I/O; mu is not.
	restartMu sync.Mutex

	mu       sync.Mutex
	epoch    uint64
	status   model.SessionStatus
	loading  bool
	network  model.NetworkConfig
	provider provider.Provider
	secret   []byte
	keypair  *model.Keypair
	account  *model.AccountState
	user     *model.UserInfo
	lastErr  error
}

// New creates a controller in the Uninitialized state. Call Start to initialize it.
func New(cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		clientID:    cfg.ClientID,
		redirectURL: cfg.RedirectURL,
		selector:    cfg.Selector,
		newProvider: cfg.NewProvider,
		newResolver: cfg.NewResolver,
		log:         log,
		status:      model.StatusUninitialized,
		network:     cfg.Selector.Active(),
	}
}

// Start initializes the provider for the active network and restores a session if the provider holds one.
// Provider failures leave the controller LoggedOut and are not retried.
func (c *Controller) Start(ctx context.Context) error {
	return c.restart(ctx, "", false)
}

// SwitchNetwork persists id as the active network, releases the current provider
// and starts over bound to the new network. An invalid id changes nothing.
func (c *Controller) SwitchNetwork(ctx context.Context, id string) error {
	return c.restart(ctx, id, true)
}

// Login runs the provider's interactive login. Only allowed while LoggedOut.
func (c *Controller) Login(ctx context.Context) error {
	c.mu.Lock()
	if c.status != model.StatusLoggedOut {
		status := c.status
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot login while %s", ErrInvalidState, status)
	}
	if c.provider == nil {
		err := fmt.Errorf("%w: authentication provider is not initialized", ErrLoginFailed)
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	epoch, p, network := c.epoch, c.provider, c.network
	c.status = model.StatusInitializing
	c.loading = true
	c.lastErr = nil
	c.mu.Unlock()

	secret, err := p.Login(ctx, provider.LoginOptions{
		RedirectURL:       c.redirectURL,
		ForceFreshSession: true,
	})
	if err == nil && len(secret) == 0 {
		err = errors.New("provider returned an empty secret")
	}
	if err != nil {
		return c.failLogin(epoch, err)
	}
	defer clear(secret)

	return c.establish(ctx, epoch, p, network, secret)
}

// Logout ends the session. fast is forwarded to the provider to skip the full teardown.
// Calling it when not LoggedIn is a no-op.
func (c *Controller) Logout(ctx context.Context, fast bool) error {
	c.mu.Lock()
	if c.status != model.StatusLoggedIn || c.loading {
		c.mu.Unlock()
		return nil
	}
	epoch, p := c.epoch, c.provider
	c.loading = true
	c.mu.Unlock()

	logoutErr := p.Logout(ctx, provider.LogoutOptions{Fast: fast})

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSuperseded
	}
	c.wipeLocked()
	c.status = model.StatusLoggedOut
	c.loading = false
	if logoutErr != nil {
		c.lastErr = fmt.Errorf("failed to logout: %w", logoutErr)
		c.log.Warn("provider logout failed, local session cleared anyway",
			zap.String("network", string(c.network.ID)), zap.Error(logoutErr))
		return c.lastErr
	}
	c.lastErr = nil
	c.log.Info("logged out", zap.String("network", string(c.network.ID)), zap.Bool("fast", fast))
	return nil
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Loading:   c.loading,
		Status:    c.status,
		Network:   c.network,
		Keypair:   c.keypair.Clone(),
		Account:   c.account.Clone(),
		LastError: c.lastErr,
	}
	if c.user != nil {
		user := *c.user
		snap.User = &user
	}
	return snap
}

// Close releases the provider and wipes the session. In-flight results are discarded.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.epoch++
	old := c.provider
	c.provider = nil
	c.wipeLocked()
	c.status = model.StatusUninitialized
	c.loading = false
	c.mu.Unlock()

	if old != nil {
		return old.Cleanup()
	}
	return nil
}

// restart begins a new epoch. With persist set, switchTo is validated and persisted first.
func (c *Controller) restart(ctx context.Context, switchTo string, persist bool) error {
	c.restartMu.Lock()
	var network model.NetworkConfig
	if persist {
		cfg, err := c.selector.SetActive(switchTo)
		if err != nil {
			c.restartMu.Unlock()
			return err
		}
		network = cfg
	} else {
		network = c.selector.Active()
	}

	c.mu.Lock()
	c.restartMu.Unlock()
	c.epoch++
	epoch := c.epoch
	old := c.provider
	c.provider = nil
	c.wipeLocked()
	c.network = network
	c.status = model.StatusInitializing
	c.loading = true
	c.lastErr = nil
	c.mu.Unlock()

	// the old provider must be gone before one is built for the new network
	if old != nil {
		c.release(old)
	}

	c.log.Info("initializing authentication provider", zap.String("network", string(network.ID)), zap.Uint64("epoch", epoch))
	return c.initialize(ctx, epoch, network)
}

func (c *Controller) initialize(ctx context.Context, epoch uint64, network model.NetworkConfig) error {
	p, err := c.newProvider(provider.Options{ClientID: c.clientID, Network: network.ID})
	if err != nil {
		return c.failInit(epoch, network, err)
	}
	if err := p.Init(ctx); err != nil {
		c.release(p)
		return c.failInit(epoch, network, err)
	}

	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		c.release(p)
		c.log.Debug("discarding superseded initialization", zap.String("network", string(network.ID)), zap.Uint64("epoch", epoch))
		return ErrSuperseded
	}
	c.provider = p
	c.mu.Unlock()

	secret := p.CurrentSecret()
	if len(secret) == 0 {
		c.mu.Lock()
		defer c.mu.Unlock()
		if epoch != c.epoch {
			return ErrSuperseded
		}
		c.status = model.StatusLoggedOut
		c.loading = false
		c.log.Info("no existing session", zap.String("network", string(network.ID)))
		return nil
	}
	defer clear(secret)

	return c.establish(ctx, epoch, p, network, secret)
}

// establish runs the shared derive -> fetch -> LoggedIn pipeline for restore and login.
// A failed account lookup still ends LoggedIn, with no account state.
func (c *Controller) establish(ctx context.Context, epoch uint64, p provider.Provider, network model.NetworkConfig, secret []byte) error {
	user, err := p.UserInfo(ctx)
	if err != nil {
		c.log.Warn("failed to get user info", zap.String("network", string(network.ID)), zap.Error(err))
		user = nil
	}

	seed, err := crypto.DecodeAuthSecret(secret)
	if err != nil {
		return c.fail(epoch, err)
	}
	kp, err := crypto.DeriveKeypair(seed)
	clear(seed)
	if err != nil {
		return c.fail(epoch, err)
	}

	if !c.current(epoch) {
		kp.Zero()
		return ErrSuperseded
	}

	account, fetchErr := c.newResolver(network).FetchAccount(ctx, kp.PublicKey)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		kp.Zero()
		return ErrSuperseded
	}

	c.secret = append([]byte(nil), secret...)
	c.keypair = kp
	c.user = user
	c.status = model.StatusLoggedIn
	c.loading = false
	if fetchErr != nil {
		c.account = nil
		c.lastErr = fetchErr
		c.log.Warn("account lookup failed",
			zap.String("address", kp.PublicKey.String()),
			zap.String("network", string(network.ID)),
			zap.Error(fetchErr))
	} else {
		c.account = account
	}

	c.log.Info("logged in",
		zap.String("address", kp.PublicKey.String()),
		zap.String("network", string(network.ID)),
		zap.Bool("accountExists", account != nil && account.Exists))
	return nil
}

func (c *Controller) failInit(epoch uint64, network model.NetworkConfig, cause error) error {
	err := fmt.Errorf("%w: %w", ErrProviderInitFailed, cause)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSuperseded
	}
	c.status = model.StatusLoggedOut
	c.loading = false
	c.lastErr = err
	c.log.Error("authentication provider initialization failed", zap.String("network", string(network.ID)), zap.Error(cause))
	return err
}

func (c *Controller) failLogin(epoch uint64, cause error) error {
	err := fmt.Errorf("%w: %w", ErrLoginFailed, cause)

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSuperseded
	}
	c.status = model.StatusLoggedOut
	c.loading = false
	c.lastErr = err
	if errors.Is(cause, provider.ErrCancelled) {
		c.log.Info("login cancelled", zap.String("network", string(c.network.ID)))
	} else {
		c.log.Warn("login failed", zap.String("network", string(c.network.ID)), zap.Error(cause))
	}
	return err
}

func (c *Controller) fail(epoch uint64, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return ErrSuperseded
	}
	c.status = model.StatusLoggedOut
	c.loading = false
	c.lastErr = err
	c.log.Error("failed to establish session", zap.String("network", string(c.network.ID)), zap.Error(err))
	return err
}

func (c *Controller) current(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return epoch == c.epoch
}

func (c *Controller) release(p provider.Provider) {
	if err := p.Cleanup(); err != nil {
		c.log.Warn("failed to release authentication provider", zap.Error(err))
	}
}

func (c *Controller) wipeLocked() {
	clear(c.secret)
	c.secret = nil
	c.keypair.Zero()
	c.keypair = nil
	c.account = nil
	c.user = nil
}
