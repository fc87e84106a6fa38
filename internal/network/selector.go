// Package network resolves and persists the selected Solana cluster.
package network

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/solana-login/internal/model"

	"go.uber.org/zap"
)

// settingKey is the store key holding the selected network id
const settingKey = "network"

// ErrInvalidNetworkID is returned for ids outside the enumerated networks
var ErrInvalidNetworkID = errors.New("invalid network id")

// Store is the persistent key/value store the selector writes to
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Selector reads and writes the active network
type Selector struct {
	store    Store
	networks map[model.NetworkID]model.NetworkConfig
	log      *zap.Logger
}

// NewSelector creates a selector over store. networks may be nil to use the default table.
func NewSelector(store Store, networks map[model.NetworkID]model.NetworkConfig, log *zap.Logger) *Selector {
	if networks == nil {
		networks = model.DefaultNetworks()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{store: store, networks: networks, log: log}
}

// Active returns the persisted network, falling back to testnet on absence or any error.
func (s *Selector) Active() model.NetworkConfig {
	raw, ok, err := s.store.Get(settingKey)
	if err != nil {
		s.log.Warn("failed to read network setting, using default",
			zap.Error(err), zap.String("default", string(model.DefaultNetwork)))
		return s.networks[model.DefaultNetwork]
	}
	if !ok {
		return s.networks[model.DefaultNetwork]
	}

	cfg, err := s.Lookup(raw)
	if err != nil {
		s.log.Warn("ignoring unknown persisted network",
			zap.String("network", raw), zap.String("default", string(model.DefaultNetwork)))
		return s.networks[model.DefaultNetwork]
	}
	return cfg
}

// SetActive validates and persists id. On an invalid id nothing is written.
func (s *Selector) SetActive(id string) (model.NetworkConfig, error) {
	cfg, err := s.Lookup(id)
	if err != nil {
		return model.NetworkConfig{}, err
	}
	if err := s.store.Set(settingKey, string(cfg.ID)); err != nil {
		return model.NetworkConfig{}, fmt.Errorf("failed to persist network: %w", err)
	}
	s.log.Info("network selected", zap.String("network", string(cfg.ID)))
	return cfg, nil
}

// Lookup returns the config for id
func (s *Selector) Lookup(id string) (model.NetworkConfig, error) {
	nid := model.NetworkID(id)
	if !nid.Valid() {
		return model.NetworkConfig{}, fmt.Errorf("%w: %q", ErrInvalidNetworkID, id)
	}
	cfg, ok := s.networks[nid]
	if !ok {
		return model.NetworkConfig{}, fmt.Errorf("%w: %q", ErrInvalidNetworkID, id)
	}
	return cfg, nil
}

// Networks returns all networks in display order
func (s *Selector) Networks() []model.NetworkConfig {
	out := make([]model.NetworkConfig, 0, len(model.NetworkIDs))
	for _, id := range model.NetworkIDs {
		if cfg, ok := s.networks[id]; ok {
			out = append(out, cfg)
		}
	}
	return out
}
