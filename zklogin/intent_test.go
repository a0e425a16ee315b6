package zklogin

import (
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageDigest(t *testing.T) {
	payload, err := base64.StdEncoding.DecodeString(testPayload)
	require.NoError(t, err)

	digest, err := MessageDigest(IntentTransactionData, payload)
	require.NoError(t, err)
	assert.Equal(t,
		"c3c322cd02d611cd6c83216715883549b53db881fd366c2d3450de32e3336824",
		hex.EncodeToString(digest[:]))
}

func TestMessageDigestScopeSeparation(t *testing.T) {
	msg := []byte("hello")

	tx, err := MessageDigest(IntentTransactionData, msg)
	require.NoError(t, err)
	pm, err := MessageDigest(IntentPersonalMessage, msg)
	require.NoError(t, err)
	assert.NotEqual(t, tx, pm)

	// Deterministic per scope.
	again, err := MessageDigest(IntentTransactionData, msg)
	require.NoError(t, err)
	assert.Equal(t, tx, again)
}

func TestMessageDigestRejectsUnknownScope(t *testing.T) {
	for _, scope := range []IntentScope{1, 2, 4, 255} {
		_, err := MessageDigest(scope, []byte("x"))
		assert.Error(t, err, "scope %d", scope)
	}
}

func TestIntentScopeString(t *testing.T) {
	assert.Equal(t, "TransactionData", IntentTransactionData.String())
	assert.Equal(t, "PersonalMessage", IntentPersonalMessage.String())
	assert.Equal(t, "IntentScope(7)", IntentScope(7).String())
}
