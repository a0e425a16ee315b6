package zklogin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The Twitch JWK the fixture token was signed with.
const twitchJWKSet = `{"keys":[{"alg":"RS256","e":"AQAB","kty":"RSA","kid":"1","n":"6lq9MQ-q6hcxr7kOUp-tHlHtdcDsVLwVIw13iXUCvuDOeCi0VSuxCCUY6UmMjy53dX00ih2E4Y4UvlrmmurK0eG26b-HMNNAvCGsVXHU3RcRhVoHDaOwHwU72j7bpHn9XbP3Q3jebX6KIfNbei2MiR0Wyb8RZHE-aZhRYO8_-k9G2GycTpvc-2GBsP8VHLUKKfAs2B6sW3q3ymU6M0L-cFXkZ9fHkn9ejs-sqZPhMJxtBPBxoUIUQFTgv4VXTSv914f_YkNw-EjuwbgwXMvpyr06EyfImxHoxsZkFYB-qBYHtaMxTnFsZBr6fn8Ha2JqT1hoP7Z5r5wxDu3GQhKkHw"}]}`

func TestStaticJWKSource(t *testing.T) {
	src, err := NewStaticJWKSource(map[string][]byte{
		testIssuer: []byte(twitchJWKSet),
	})
	require.NoError(t, err)

	n, err := src.Modulus(context.Background(), testIssuer)
	require.NoError(t, err)
	assert.Equal(t, 2048, n.BitLen())
}

func TestStaticJWKSourceUnknownIssuer(t *testing.T) {
	src, err := NewStaticJWKSource(nil)
	require.NoError(t, err)

	_, err = src.Modulus(context.Background(), testIssuer)
	assert.Error(t, err)
}

func TestStaticJWKSourceNoRSAKey(t *testing.T) {
	src, err := NewStaticJWKSource(map[string][]byte{
		testIssuer: []byte(`{"keys":[]}`),
	})
	require.NoError(t, err)

	_, err = src.Modulus(context.Background(), testIssuer)
	assert.Error(t, err)
}

func TestStaticJWKSourceRejectsGarbage(t *testing.T) {
	_, err := NewStaticJWKSource(map[string][]byte{
		testIssuer: []byte("not json"),
	})
	assert.Error(t, err)
}
