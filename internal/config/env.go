package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/solana-login/internal/model"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Passphrases and export passwords are never configured, they are read with ReadHidden.
type Config struct {
	Port             string        `envconfig:"PORT" default:"8080"`
	ClientID         string        `envconfig:"CLIENT_ID" required:"true"`
	RedirectURL      string        `envconfig:"REDIRECT_URL" default:"http://localhost:8080"`
	SettingsFilePath string        `envconfig:"SETTINGS_FILE_PATH" default:"settings.yaml"`
	ExportFilePath   string        `envconfig:"EXPORT_FILE_PATH" default:"wallet.cwt"`
	MainnetRPCURL    string        `envconfig:"MAINNET_RPC_URL"`
	DevnetRPCURL     string        `envconfig:"DEVNET_RPC_URL"`
	TestnetRPCURL    string        `envconfig:"TESTNET_RPC_URL"`
	RPCTimeout       time.Duration `envconfig:"RPC_TIMEOUT" default:"15s"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if c.ClientID == "" {
		return errors.New("failed to process config: CLIENT_ID must not be empty")
	}
	if c.RPCTimeout <= 0 {
		return fmt.Errorf("failed to process config: RPC_TIMEOUT must be positive, got %s", c.RPCTimeout)
	}
	cfg = c
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetClientID returns the client id the authentication provider is bound to
func GetClientID() string {
	return Get().ClientID
}

// GetRedirectURL returns the redirect URL passed to interactive login
func GetRedirectURL() string {
	return Get().RedirectURL
}

// GetSettingsFilePath returns path to the persisted settings file
func GetSettingsFilePath() string {
	return Get().SettingsFilePath
}

// GetExportFilePath returns path of the .cwt file written by keystore export
func GetExportFilePath() string {
	return Get().ExportFilePath
}

// GetRPCTimeout returns the timeout of a single account lookup
func GetRPCTimeout() time.Duration {
	return Get().RPCTimeout
}

// GetLogLevel returns the configured log level name
func GetLogLevel() string {
	return Get().LogLevel
}

// GetNetworks returns the network table with configured endpoint overrides applied
func GetNetworks() map[model.NetworkID]model.NetworkConfig {
	c := Get()
	networks := model.DefaultNetworks()
	overrides := map[model.NetworkID]string{
		model.NetworkMainnet: c.MainnetRPCURL,
		model.NetworkDevnet:  c.DevnetRPCURL,
		model.NetworkTestnet: c.TestnetRPCURL,
	}
	for id, url := range overrides {
		if url == "" {
			continue
		}
		n := networks[id]
		n.EndpointURL = url
		networks[id] = n
	}
	return networks
}

// ReadHidden prompts on stderr and reads one line from the terminal without echo.
// The caller owns the returned slice and should clear it after use.
// An empty answer is returned as is.
func ReadHidden(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter secrets")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
