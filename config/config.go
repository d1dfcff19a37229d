// Package config loads the daemon configuration from a TOML file with
// environment variable overrides. Lookup order: the explicit path if
// given, ./config.toml, then ~/.mintpayd/config.toml. A missing file is
// not an error; defaults apply and a commented default file is written as
// a convenience.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/cashubtc/mintpayd/lightning"
)

const configFilename = "config.toml"

// Environment variables, each overriding its config file counterpart.
const (
	EnvListenHost        = "MINTPAYD_LISTEN_HOST"
	EnvListenPort        = "MINTPAYD_LISTEN_PORT"
	EnvBitcoinNetwork    = "MINTPAYD_BITCOIN_NETWORK"
	EnvLndEndpoint       = "MINTPAYD_LND_ENDPOINT"
	EnvLndMacaroon       = "MINTPAYD_LND_MACAROON"
	EnvLndTLSCert        = "MINTPAYD_LND_TLS_CERT"
	EnvMinFeeReserve     = "MINTPAYD_MIN_FEE_RESERVE"
	EnvPercentFeeReserve = "MINTPAYD_PERCENT_FEE_RESERVE"
	EnvPollTimeoutMs     = "MINTPAYD_POLL_TIMEOUT_MS"
	EnvPollIntervalMs    = "MINTPAYD_POLL_INTERVAL_MS"
)

type Management struct {
	ListenHost string `toml:"listen_host"`
	ListenPort uint16 `toml:"listen_port"`
}

type Network struct {
	BitcoinNetwork string `toml:"bitcoin_network"`
}

type Node struct {
	LndEndpoint  string `toml:"lnd_endpoint"`
	MacaroonPath string `toml:"macaroon_path"`
	TLSCertPath  string `toml:"tls_cert_path"`
}

type Fees struct {
	// MinFeeReserve in satoshis.
	MinFeeReserve uint64 `toml:"min_fee_reserve"`
	// PercentFeeReserve as a fraction, 0.02 means two percent.
	PercentFeeReserve float64 `toml:"percent_fee_reserve"`
}

type Poller struct {
	TimeoutMs  uint64 `toml:"timeout_ms"`
	IntervalMs uint64 `toml:"interval_ms"`
}

type Config struct {
	Management Management `toml:"management"`
	Network    Network    `toml:"network"`
	Node       Node       `toml:"node"`
	Fees       Fees       `toml:"fees"`
	Poller     Poller     `toml:"poller"`
}

func Default() Config {
	return Config{
		Management: Management{
			ListenHost: "127.0.0.1",
			ListenPort: 8089,
		},
		Network: Network{
			BitcoinNetwork: string(lightning.Regtest),
		},
		Node: Node{
			LndEndpoint:  "localhost:10009",
			MacaroonPath: "/root/.lnd/data/chain/bitcoin/{Network}/admin.macaroon",
			TLSCertPath:  "/root/.lnd/tls.cert",
		},
		Fees: Fees{
			MinFeeReserve:     2,
			PercentFeeReserve: 0.02,
		},
		Poller: Poller{
			TimeoutMs:  10_000,
			IntervalMs: 100,
		},
	}
}

// ListenAddr is the host:port the management API binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Management.ListenHost, c.Management.ListenPort)
}

// BitcoinNetwork validates and returns the configured network.
func (c Config) BitcoinNetwork() (lightning.Network, error) {
	network := lightning.Network(c.Network.BitcoinNetwork)
	switch network {
	case lightning.Mainnet, lightning.Testnet, lightning.Signet, lightning.Regtest:
		return network, nil
	default:
		return "", fmt.Errorf("unknown bitcoin network %q", c.Network.BitcoinNetwork)
	}
}

// Load reads the configuration. path may be empty; see the package doc for
// the lookup order.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	configPath, explicit := resolvePath(fs, path)
	data, err := afero.ReadFile(fs, configPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
		log.WithField("path", configPath).Info("Loaded configuration file")
	case os.IsNotExist(err) && !explicit:
		if writeErr := writeDefaultConfigFile(fs, configPath); writeErr != nil {
			log.WithError(writeErr).Warn("failed to create default config file")
		}
		log.Info("Using default configuration")
	case os.IsNotExist(err) && explicit:
		return Config{}, fmt.Errorf("config file %s not found", configPath)
	default:
		return Config{}, fmt.Errorf("reading %s: %w", configPath, err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// resolvePath picks the config file location. The second return value is
// true when the caller named the path explicitly, which makes a missing
// file an error instead of a fallback to defaults.
func resolvePath(fs afero.Fs, path string) (string, bool) {
	if path != "" {
		return path, true
	}

	if ok, _ := afero.Exists(fs, configFilename); ok {
		return configFilename, false
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return configFilename, false
	}

	return filepath.Join(home, ".mintpayd", configFilename), false
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvListenHost); v != "" {
		cfg.Management.ListenHost = v
	}
	if v := os.Getenv(EnvListenPort); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvListenPort, err)
		}
		cfg.Management.ListenPort = uint16(port)
	}
	if v := os.Getenv(EnvBitcoinNetwork); v != "" {
		cfg.Network.BitcoinNetwork = v
	}
	if v := os.Getenv(EnvLndEndpoint); v != "" {
		cfg.Node.LndEndpoint = v
	}
	if v := os.Getenv(EnvLndMacaroon); v != "" {
		cfg.Node.MacaroonPath = v
	}
	if v := os.Getenv(EnvLndTLSCert); v != "" {
		cfg.Node.TLSCertPath = v
	}
	if v := os.Getenv(EnvMinFeeReserve); v != "" {
		min, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMinFeeReserve, err)
		}
		cfg.Fees.MinFeeReserve = min
	}
	if v := os.Getenv(EnvPercentFeeReserve); v != "" {
		percent, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPercentFeeReserve, err)
		}
		cfg.Fees.PercentFeeReserve = percent
	}
	if v := os.Getenv(EnvPollTimeoutMs); v != "" {
		timeout, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPollTimeoutMs, err)
		}
		cfg.Poller.TimeoutMs = timeout
	}
	if v := os.Getenv(EnvPollIntervalMs); v != "" {
		interval, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPollIntervalMs, err)
		}
		cfg.Poller.IntervalMs = interval
	}

	return nil
}

const defaultConfigFile = `# mintpayd configuration

[management]
listen_host = "127.0.0.1"
listen_port = 8089

[network]
# mainnet, testnet, signet or regtest
bitcoin_network = "regtest"

[node]
lnd_endpoint = "localhost:10009"
# {Network} is replaced with the configured bitcoin network
macaroon_path = "/root/.lnd/data/chain/bitcoin/{Network}/admin.macaroon"
tls_cert_path = "/root/.lnd/tls.cert"

[fees]
# minimum fee reserve in satoshis
min_fee_reserve = 2
# relative fee reserve as a fraction
percent_fee_reserve = 0.02

[poller]
timeout_ms = 10000
interval_ms = 100
`

func writeDefaultConfigFile(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	log.WithField("path", path).Info("Creating default config file")

	return afero.WriteFile(fs, path, []byte(defaultConfigFile), 0o644)
}
