package model

import (
	"github.com/gagliardetto/solana-go"
)

// SessionStatus is the state of the login session
type SessionStatus string

const (
	StatusUninitialized SessionStatus = "uninitialized"
	StatusInitializing  SessionStatus = "initializing"
	StatusLoggedOut     SessionStatus = "logged_out"
	StatusLoggedIn      SessionStatus = "logged_in"
)

// Keypair is a Solana signing keypair derived from the provider secret.
// PrivateKey is the full 64-byte Solana secret key (seed + public key).
type Keypair struct {
	PublicKey  solana.PublicKey
	PrivateKey solana.PrivateKey
}

// String prints only the public key so the keypair is safe in log lines
func (k *Keypair) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.PublicKey.String()
}

// Clone returns a deep copy
func (k *Keypair) Clone() *Keypair {
	if k == nil {
		return nil
	}
	priv := make(solana.PrivateKey, len(k.PrivateKey))
	copy(priv, k.PrivateKey)
	return &Keypair{PublicKey: k.PublicKey, PrivateKey: priv}
}

// Zero wipes the private key from memory
func (k *Keypair) Zero() {
	if k == nil {
		return
	}
	clear(k.PrivateKey)
}

// AccountState is a snapshot of an on-chain account.
// Exists is false for fresh/unfunded addresses.
type AccountState struct {
	Exists     bool   `json:"exists"`
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner,omitempty"`
	Executable bool   `json:"executable"`
	Data       []byte `json:"data,omitempty"`
	Slot       uint64 `json:"slot"`
}

// Clone returns a deep copy
func (a *AccountState) Clone() *AccountState {
	if a == nil {
		return nil
	}
	out := *a
	if a.Data != nil {
		out.Data = append([]byte(nil), a.Data...)
	}
	return &out
}

// UserInfo is the profile returned by the authentication provider
type UserInfo struct {
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Verifier     string `json:"verifier,omitempty"`
	VerifierID   string `json:"verifierId,omitempty"`
	TypeOfLogin  string `json:"typeOfLogin,omitempty"`
}

// SessionResponse represents response for GET /session
type SessionResponse struct {
	Loading   bool          `json:"loading"`
	Status    SessionStatus `json:"status"`
	Network   NetworkConfig `json:"network"`
	Address   string        `json:"address,omitempty"`
	SecretKey string        `json:"secretKey,omitempty"` // base58, shown to the wallet owner only
	SOL       string        `json:"sol,omitempty"`
	Account   *AccountState `json:"account,omitempty"`
	User      *UserInfo     `json:"user,omitempty"`
	LastError string        `json:"lastError,omitempty"`
}

// NetworkRequest represents request for PUT /network
type NetworkRequest struct {
	Network string `json:"network"`
}

// NetworkResponse represents response for GET/PUT /network
type NetworkResponse struct {
	Active   NetworkConfig   `json:"active"`
	Networks []NetworkConfig `json:"networks"`
}
