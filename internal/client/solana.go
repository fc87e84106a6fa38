package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexZinkM/solana-login/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// defaultTimeout bounds a single account lookup when none is configured
const defaultTimeout = 15 * time.Second

// ErrAccountLookupFailed wraps every transport, RPC or timeout failure of an account lookup
var ErrAccountLookupFailed = errors.New("account lookup failed")

// SolanaClient is a read-only client for a Solana RPC endpoint
type SolanaClient struct {
	rpcClient *rpc.Client
	timeout   time.Duration
}

// NewSolanaClient creates a client bound to the given RPC endpoint.
func NewSolanaClient(rpcURL string, timeout time.Duration) *SolanaClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SolanaClient{
		rpcClient: rpc.New(rpcURL),
		timeout:   timeout,
	}
}

// FetchAccount issues one getAccountInfo query for owner.
// An address the ledger does not know yet is returned as Exists=false, not as an error.
// Failures are not retried.
func (c *SolanaClient) FetchAccount(ctx context.Context, owner solana.PublicKey) (*model.AccountState, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpcClient.GetAccountInfoWithOpts(ctx, owner, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return &model.AccountState{Exists: false}, nil
		}
		return nil, &AccountLookupError{Address: owner.String(), Err: err}
	}
	if out == nil || out.Value == nil {
		return &model.AccountState{Exists: false}, nil
	}

	state := &model.AccountState{
		Exists:     true,
		Lamports:   out.Value.Lamports,
		Owner:      out.Value.Owner.String(),
		Executable: out.Value.Executable,
		Slot:       out.Context.Slot,
	}
	if out.Value.Data != nil {
		state.Data = out.Value.Data.GetBinary()
	}
	return state, nil
}

// AccountLookupError keeps the failed address and the underlying cause
type AccountLookupError struct {
	Address string
	Err     error
}

func (e *AccountLookupError) Error() string {
	return fmt.Sprintf("%s for %s: %v", ErrAccountLookupFailed, e.Address, e.Err)
}

func (e *AccountLookupError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrAccountLookupFailed) hold for every lookup failure
func (e *AccountLookupError) Is(target error) bool {
	return target == ErrAccountLookupFailed
}

// IsAccountLookupError checks if error is an AccountLookupError
func IsAccountLookupError(err error) bool {
	var lookupErr *AccountLookupError
	return errors.As(err, &lookupErr)
}
