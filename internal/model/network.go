package model

import "github.com/gagliardetto/solana-go/rpc"

// NetworkID identifies a Solana cluster
type NetworkID string

const (
	NetworkMainnet NetworkID = "mainnet"
	NetworkDevnet  NetworkID = "devnet"
	NetworkTestnet NetworkID = "testnet"
)

// DefaultNetwork is used when nothing (or garbage) is persisted
const DefaultNetwork = NetworkTestnet

// NetworkConfig describes one selectable cluster
type NetworkConfig struct {
	ID          NetworkID `json:"id"`
	EndpointURL string    `json:"endpointUrl"`
	DisplayName string    `json:"displayName"`
}

// NetworkIDs lists the supported networks in display order
var NetworkIDs = []NetworkID{NetworkMainnet, NetworkDevnet, NetworkTestnet}

// DefaultNetworks returns the static network table with public RPC endpoints.
func DefaultNetworks() map[NetworkID]NetworkConfig {
	return map[NetworkID]NetworkConfig{
		NetworkMainnet: {ID: NetworkMainnet, EndpointURL: rpc.MainNetBeta_RPC, DisplayName: "Mainnet Beta"},
		NetworkDevnet:  {ID: NetworkDevnet, EndpointURL: rpc.DevNet_RPC, DisplayName: "Devnet"},
		NetworkTestnet: {ID: NetworkTestnet, EndpointURL: rpc.TestNet_RPC, DisplayName: "Testnet"},
	}
}

// Valid reports whether id is one of the enumerated networks
func (id NetworkID) Valid() bool {
	switch id {
	case NetworkMainnet, NetworkDevnet, NetworkTestnet:
		return true
	}
	return false
}
