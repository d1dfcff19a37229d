package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/cashubtc/mintpayd/lightning"
)

func TestLoadFromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
[management]
listen_host = "0.0.0.0"
listen_port = 9000

[network]
bitcoin_network = "signet"

[node]
lnd_endpoint = "lnd.example.com:10009"
macaroon_path = "/etc/lnd/admin.macaroon"
tls_cert_path = "/etc/lnd/tls.cert"

[fees]
min_fee_reserve = 10
percent_fee_reserve = 0.05

[poller]
timeout_ms = 30000
interval_ms = 250
`
	require.NoError(t, afero.WriteFile(fs, "/etc/mintpayd/config.toml", []byte(content), 0o644))

	cfg, err := Load(fs, "/etc/mintpayd/config.toml")
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9000", cfg.ListenAddr())
	require.Equal(t, "lnd.example.com:10009", cfg.Node.LndEndpoint)
	require.Equal(t, "/etc/lnd/admin.macaroon", cfg.Node.MacaroonPath)
	require.Equal(t, uint64(10), cfg.Fees.MinFeeReserve)
	require.InEpsilon(t, 0.05, cfg.Fees.PercentFeeReserve, 1e-9)
	require.Equal(t, uint64(30000), cfg.Poller.TimeoutMs)
	require.Equal(t, uint64(250), cfg.Poller.IntervalMs)

	network, err := cfg.BitcoinNetwork()
	require.NoError(t, err)
	require.Equal(t, lightning.Signet, network)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `
[management]
listen_port = 9999
`
	require.NoError(t, afero.WriteFile(fs, "/tmp/config.toml", []byte(content), 0o644))

	cfg, err := Load(fs, "/tmp/config.toml")
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.ListenAddr())
	require.Equal(t, string(lightning.Regtest), cfg.Network.BitcoinNetwork)
	require.Equal(t, uint64(2), cfg.Fees.MinFeeReserve)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/nope/config.toml")
	require.ErrorContains(t, err, "not found")
}

func TestLoadMissingFileWritesDefault(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	require.Equal(t, Default().Management, cfg.Management)
	require.Equal(t, Default().Fees, cfg.Fees)

	// The default file lands at the resolved path and parses back to the
	// same defaults.
	path, explicit := resolvePath(fs, "")
	require.False(t, explicit)
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	require.True(t, exists)

	written, err := Load(fs, path)
	require.NoError(t, err)
	require.Equal(t, cfg, written)
}

func TestLoadInvalidToml(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/config.toml", []byte("not = [valid"), 0o644))

	_, err := Load(fs, "/tmp/config.toml")
	require.ErrorContains(t, err, "parsing")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvListenHost, "10.0.0.1")
	t.Setenv(EnvListenPort, "8443")
	t.Setenv(EnvBitcoinNetwork, "mainnet")
	t.Setenv(EnvLndEndpoint, "lnd:10009")
	t.Setenv(EnvLndMacaroon, "/run/secrets/macaroon")
	t.Setenv(EnvLndTLSCert, "/run/secrets/tls.cert")
	t.Setenv(EnvMinFeeReserve, "7")
	t.Setenv(EnvPercentFeeReserve, "0.01")
	t.Setenv(EnvPollTimeoutMs, "5000")
	t.Setenv(EnvPollIntervalMs, "50")

	fs := afero.NewMemMapFs()
	content := `
[management]
listen_host = "127.0.0.1"
listen_port = 8089
`
	require.NoError(t, afero.WriteFile(fs, "/tmp/config.toml", []byte(content), 0o644))

	cfg, err := Load(fs, "/tmp/config.toml")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:8443", cfg.ListenAddr())
	require.Equal(t, "mainnet", cfg.Network.BitcoinNetwork)
	require.Equal(t, "lnd:10009", cfg.Node.LndEndpoint)
	require.Equal(t, "/run/secrets/macaroon", cfg.Node.MacaroonPath)
	require.Equal(t, "/run/secrets/tls.cert", cfg.Node.TLSCertPath)
	require.Equal(t, uint64(7), cfg.Fees.MinFeeReserve)
	require.InEpsilon(t, 0.01, cfg.Fees.PercentFeeReserve, 1e-9)
	require.Equal(t, uint64(5000), cfg.Poller.TimeoutMs)
	require.Equal(t, uint64(50), cfg.Poller.IntervalMs)
}

func TestEnvOverrideInvalidPort(t *testing.T) {
	t.Setenv(EnvListenPort, "not-a-port")

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/config.toml", []byte(""), 0o644))

	_, err := Load(fs, "/tmp/config.toml")
	require.ErrorContains(t, err, EnvListenPort)
}

func TestBitcoinNetworkInvalid(t *testing.T) {
	cfg := Default()
	cfg.Network.BitcoinNetwork = "moonnet"

	_, err := cfg.BitcoinNetwork()
	require.ErrorContains(t, err, "moonnet")
}
