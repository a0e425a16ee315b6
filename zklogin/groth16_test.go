package zklogin

import (
	"context"
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSignature(t *testing.T) (*Signature, [32]byte) {
	t.Helper()
	sig, err := DecodeSignature(testEnvelope)
	require.NoError(t, err)
	payload, err := base64.StdEncoding.DecodeString(testPayload)
	require.NoError(t, err)
	digest, err := MessageDigest(IntentTransactionData, payload)
	require.NoError(t, err)
	return sig, digest
}

func testParams() ProviderParams {
	return ProviderParams{Modulus: big.NewInt(65537)}
}

func TestVerifyExpiredEpoch(t *testing.T) {
	sig, digest := fixtureSignature(t)
	v := NewGroth16Verifier(NewKeyRegistry())

	ok, err := v.Verify(context.Background(), sig, digest, 11, EnvTest, testParams())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWrongDigest(t *testing.T) {
	sig, _ := fixtureSignature(t)
	v := NewGroth16Verifier(NewKeyRegistry())

	// The ephemeral key never signed this digest; definitive negative.
	ok, err := v.Verify(context.Background(), sig, [32]byte{1, 2, 3}, 9, EnvTest, testParams())
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMissingKey(t *testing.T) {
	sig, digest := fixtureSignature(t)
	v := NewGroth16Verifier(NewKeyRegistry())

	// The ephemeral signature and proof points are genuine, so the pipeline
	// reaches key lookup and fails there.
	ok, err := v.Verify(context.Background(), sig, digest, 9, EnvTest, testParams())
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "test")
}

func TestVerifyMalformedProofPoints(t *testing.T) {
	v := NewGroth16Verifier(NewKeyRegistry())

	tests := []struct {
		name   string
		mutate func(*ProofPoints)
	}{
		{"a not on curve", func(p *ProofPoints) { p.A = []string{"1", "1", "1"} }},
		{"a wrong arity", func(p *ProofPoints) { p.A = []string{"1", "2"} }},
		{"a unnormalized", func(p *ProofPoints) { p.A[2] = "2" }},
		{"a not decimal", func(p *ProofPoints) { p.A[0] = "xyz" }},
		{"b wrong limbs", func(p *ProofPoints) { p.B[0] = []string{"1"} }},
		{"b unnormalized", func(p *ProofPoints) { p.B[2] = []string{"0", "1"} }},
		{"c not on curve", func(p *ProofPoints) { p.C = []string{"2", "2", "1"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, digest := fixtureSignature(t)
			tt.mutate(&sig.Inputs.ProofPoints)

			ok, err := v.Verify(context.Background(), sig, digest, 9, EnvTest, testParams())
			assert.Error(t, err)
			assert.False(t, ok)
		})
	}
}

func TestVerifyCancelledContext(t *testing.T) {
	sig, digest := fixtureSignature(t)
	v := NewGroth16Verifier(NewKeyRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Verify(ctx, sig, digest, 9, EnvTest, testParams())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPublicInputsHashRequiresModulus(t *testing.T) {
	sig, _ := fixtureSignature(t)

	_, err := publicInputsHash(sig, ProviderParams{})
	assert.Error(t, err)

	_, err = publicInputsHash(sig, ProviderParams{Modulus: big.NewInt(0)})
	assert.Error(t, err)

	h1, err := publicInputsHash(sig, testParams())
	require.NoError(t, err)
	h2, err := publicInputsHash(sig, testParams())
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	// A different modulus binds to a different public input.
	h3, err := publicInputsHash(sig, ProviderParams{Modulus: big.NewInt(3)})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}
