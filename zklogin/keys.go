package zklogin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
)

// Env selects which proving setup a proof is checked against. Mainnet and
// Testnet run the production ceremony; Devnet and Localnet run the test
// setup.
type Env string

const (
	EnvProd Env = "prod"
	EnvTest Env = "test"
)

// KeyRegistry stores Groth16 verifying keys by proving environment. Keys are
// registered once at startup and shared read-only across requests.
type KeyRegistry struct {
	keys map[Env]groth16.VerifyingKey
}

// NewKeyRegistry creates an empty registry.
func NewKeyRegistry() *KeyRegistry {
	return &KeyRegistry{keys: make(map[Env]groth16.VerifyingKey)}
}

// LoadKey reads a gnark-serialized BN254 verifying key from dir/<env>.vk and
// registers it for env.
func (kr *KeyRegistry) LoadKey(env Env, dir string) error {
	path := filepath.Join(dir, fmt.Sprintf("%s.vk", env))
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open verifying key: %w", err)
	}
	defer f.Close()

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(f); err != nil {
		return fmt.Errorf("failed to read verifying key %s: %w", path, err)
	}
	return kr.Register(env, vk)
}

// Register registers a verifying key for an environment.
func (kr *KeyRegistry) Register(env Env, vk groth16.VerifyingKey) error {
	if _, ok := kr.keys[env]; ok {
		return fmt.Errorf("verifying key for %q already registered", env)
	}
	kr.keys[env] = vk
	return nil
}

// Get returns the verifying key for an environment.
func (kr *KeyRegistry) Get(env Env) (groth16.VerifyingKey, error) {
	if vk, ok := kr.keys[env]; ok {
		return vk, nil
	}
	return nil, fmt.Errorf("no verifying key for environment %q", env)
}

// Envs lists the environments with a registered key.
func (kr *KeyRegistry) Envs() []Env {
	out := make([]Env, 0, len(kr.keys))
	for env := range kr.keys {
		out = append(out, env)
	}
	return out
}
