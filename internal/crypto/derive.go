package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/solana-login/internal/model"

	"github.com/gagliardetto/solana-go"
)

// ErrMalformedSecret is returned when the provider secret is not a 32-byte ed25519 seed
var ErrMalformedSecret = errors.New("malformed auth secret")

// DeriveKeypair turns the 32-byte provider secret into a Solana keypair.
// The secret is used as the ed25519 seed, so the same secret always yields the same keypair.
func DeriveKeypair(secret []byte) (*model.Keypair, error) {
	if len(secret) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformedSecret, ed25519.SeedSize, len(secret))
	}

	priv := solana.PrivateKey(ed25519.NewKeyFromSeed(secret))
	return &model.Keypair{
		PublicKey:  priv.PublicKey(),
		PrivateKey: priv,
	}, nil
}

// DecodeAuthSecret accepts the secret in either form a provider hands it out:
// 32 raw bytes, or hex text (see ParseAuthSecret).
// Length alone decides: any 32-byte input is taken as raw, so hex text must not be
// exactly 32 characters. Providers emit 64 hex characters minus dropped leading
// zeros, and losing 16 zero bytes has probability 2^-128.
func DecodeAuthSecret(raw []byte) ([]byte, error) {
	if len(raw) == ed25519.SeedSize {
		return append([]byte(nil), raw...), nil
	}
	return ParseAuthSecret(string(raw))
}

// ParseAuthSecret decodes a hex secret as handed out by the provider.
// Providers drop leading zeros, so shorter values are left-padded to 32 bytes.
func ParseAuthSecret(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrMalformedSecret)
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSecret, err)
	}
	defer clear(raw)
	if len(raw) > ed25519.SeedSize {
		return nil, fmt.Errorf("%w: expected at most %d bytes, got %d", ErrMalformedSecret, ed25519.SeedSize, len(raw))
	}

	secret := make([]byte, ed25519.SeedSize)
	copy(secret[ed25519.SeedSize-len(raw):], raw)
	return secret, nil
}
