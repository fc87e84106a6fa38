package session

import (
	"context"
	"errors"
	"sync"

	"github.com/AlexZinkM/solana-login/internal/model"
	"github.com/AlexZinkM/solana-login/internal/provider"

	"github.com/gagliardetto/solana-go"
)

// events is an ordered record of provider construction and release
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

type fakeProvider struct {
	network model.NetworkID
	events  *events

	initSecret []byte
	initErr    error
	initGate   chan struct{} // Init blocks until closed when set
	initEnter  chan struct{} // closed when Init is entered when set

	loginSecret []byte
	loginErr    error
	loginHook   func()

	userErr   error
	logoutErr error

	mu       sync.Mutex
	secret   []byte
	cleanups int
	logins   []provider.LoginOptions
	logouts  []provider.LogoutOptions
}

func (p *fakeProvider) Init(ctx context.Context) error {
	if p.initEnter != nil {
		close(p.initEnter)
	}
	if p.initGate != nil {
		<-p.initGate
	}
	if p.initErr != nil {
		return p.initErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secret = append([]byte(nil), p.initSecret...)
	if len(p.secret) == 0 {
		p.secret = nil
	}
	return nil
}

func (p *fakeProvider) CurrentSecret() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.secret == nil {
		return nil
	}
	return append([]byte(nil), p.secret...)
}

func (p *fakeProvider) Login(ctx context.Context, opts provider.LoginOptions) ([]byte, error) {
	p.mu.Lock()
	p.logins = append(p.logins, opts)
	p.mu.Unlock()

	if p.loginHook != nil {
		p.loginHook()
	}
	if p.loginErr != nil {
		return nil, p.loginErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.secret = append([]byte(nil), p.loginSecret...)
	return append([]byte(nil), p.loginSecret...), nil
}

func (p *fakeProvider) Logout(ctx context.Context, opts provider.LogoutOptions) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logouts = append(p.logouts, opts)
	p.secret = nil
	return p.logoutErr
}

func (p *fakeProvider) UserInfo(ctx context.Context) (*model.UserInfo, error) {
	if p.userErr != nil {
		return nil, p.userErr
	}
	return &model.UserInfo{Email: "user@example.com", Verifier: "fake"}, nil
}

func (p *fakeProvider) Cleanup() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleanups++
	p.secret = nil
	if p.events != nil {
		p.events.add("cleanup:" + string(p.network))
	}
	return nil
}

func (p *fakeProvider) cleanupCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cleanups
}

// fakeProviders builds one preconfigured fakeProvider per construction
type fakeProviders struct {
	mu      sync.Mutex
	events  *events
	build   func(network model.NetworkID) *fakeProvider
	err     error
	created []*fakeProvider
	opts    []provider.Options
}

func (f *fakeProviders) factory(opts provider.Options) (provider.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opts = append(f.opts, opts)
	if f.events != nil {
		f.events.add("new:" + string(opts.Network))
	}
	if f.err != nil {
		return nil, f.err
	}
	p := f.build(opts.Network)
	p.network = opts.Network
	p.events = f.events
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeProviders) last() *fakeProvider {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created[len(f.created)-1]
}

func (f *fakeProviders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opts)
}

type lookup struct {
	network model.NetworkID
	owner   solana.PublicKey
}

type fakeResolver struct {
	mu      sync.Mutex
	state   *model.AccountState
	err     error
	lookups []lookup
}

func (r *fakeResolver) factory(network model.NetworkConfig) AccountResolver {
	return resolverFunc(func(ctx context.Context, owner solana.PublicKey) (*model.AccountState, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.lookups = append(r.lookups, lookup{network: network.ID, owner: owner})
		if r.err != nil {
			return nil, r.err
		}
		if r.state == nil {
			return &model.AccountState{Exists: false}, nil
		}
		return r.state.Clone(), nil
	})
}

func (r *fakeResolver) calls() []lookup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]lookup(nil), r.lookups...)
}

type resolverFunc func(ctx context.Context, owner solana.PublicKey) (*model.AccountState, error)

func (f resolverFunc) FetchAccount(ctx context.Context, owner solana.PublicKey) (*model.AccountState, error) {
	return f(ctx, owner)
}

var errBoom = errors.New("boom")
