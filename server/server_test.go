package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystenlabs/zklogin-verifier/zklogin"
)

func TestLoadKeysExplicitEnvironmentFailsHard(t *testing.T) {
	cfg := &ServeConfig{
		KeysDir:      t.TempDir(), // no key files
		Environments: []string{"prod"},
	}

	err := loadKeys(zklogin.NewKeyRegistry(), cfg, SetupLogger("error", "text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prod")
}

func TestLoadKeysExplicitEnvironmentsAllChecked(t *testing.T) {
	cfg := &ServeConfig{
		KeysDir:      t.TempDir(),
		Environments: []string{"prod", "test"},
	}

	err := loadKeys(zklogin.NewKeyRegistry(), cfg, SetupLogger("error", "text"))
	assert.Error(t, err)
}

func TestLoadKeysDefaultRequiresAtLeastOne(t *testing.T) {
	cfg := &ServeConfig{KeysDir: t.TempDir()}

	// Load-all tolerates per-environment gaps but not an empty directory.
	err := loadKeys(zklogin.NewKeyRegistry(), cfg, SetupLogger("error", "text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no verifying keys loaded")
}

func TestValidateServeConfig(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, validateServeConfig(&ServeConfig{Port: 8080, KeysDir: dir}))
	assert.Error(t, validateServeConfig(&ServeConfig{Port: 0, KeysDir: dir}))
	assert.Error(t, validateServeConfig(&ServeConfig{Port: 70000, KeysDir: dir}))
	assert.Error(t, validateServeConfig(&ServeConfig{Port: 8080, KeysDir: dir + "/missing"}))
	assert.Error(t, validateServeConfig(&ServeConfig{Port: 8080, KeysDir: dir, EnableTLS: true}))
}

func TestParseEndpoints(t *testing.T) {
	out, err := parseEndpoints(map[string]string{"Devnet": "http://127.0.0.1:9000"})
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", out["Devnet"])

	_, err = parseEndpoints(map[string]string{"Betanet": "http://x"})
	assert.Error(t, err)
}

func TestParseEndpointsEmpty(t *testing.T) {
	out, err := parseEndpoints(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
