package zklogin

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyRegistry(t *testing.T) {
	kr := NewKeyRegistry()
	assert.Empty(t, kr.Envs())

	_, err := kr.Get(EnvProd)
	assert.Error(t, err)

	vk := groth16.NewVerifyingKey(ecc.BN254)
	require.NoError(t, kr.Register(EnvProd, vk))

	got, err := kr.Get(EnvProd)
	require.NoError(t, err)
	assert.Equal(t, vk, got)
	assert.Equal(t, []Env{EnvProd}, kr.Envs())

	// Double registration is a configuration bug.
	assert.Error(t, kr.Register(EnvProd, vk))
}

func TestLoadKeyMissingFile(t *testing.T) {
	kr := NewKeyRegistry()
	assert.Error(t, kr.LoadKey(EnvTest, t.TempDir()))
}
