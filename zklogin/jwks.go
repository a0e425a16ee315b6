package zklogin

import (
	"context"
	"crypto/rsa"
	"fmt"
	"math/big"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// JWKStore caches the JWK sets of trusted OpenID providers and exposes the
// RSA modulus a proof's public input is bound to. Sets are fetched from the
// providers' JWKS endpoints and refreshed in the background; a refresh
// failure keeps serving the last good set.
type JWKStore struct {
	cache *jwk.Cache
	urls  map[string]string // issuer -> JWKS endpoint
}

// NewJWKStore builds a store for the given issuer -> JWKS URL mapping. The
// context bounds the lifetime of the background refresher.
func NewJWKStore(ctx context.Context, endpoints map[string]string) (*JWKStore, error) {
	cache := jwk.NewCache(ctx)
	urls := make(map[string]string, len(endpoints))
	for iss, url := range endpoints {
		if err := cache.Register(url, jwk.WithMinRefreshInterval(15*time.Minute)); err != nil {
			return nil, fmt.Errorf("failed to register JWKS endpoint for %s: %w", iss, err)
		}
		urls[iss] = url
	}
	return &JWKStore{cache: cache, urls: urls}, nil
}

// Modulus returns the RSA modulus of the first RSA key in the issuer's set.
func (s *JWKStore) Modulus(ctx context.Context, issuer string) (*big.Int, error) {
	url, ok := s.urls[issuer]
	if !ok {
		return nil, fmt.Errorf("no JWKS endpoint for issuer %s", issuer)
	}
	set, err := s.cache.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWK set for %s: %w", issuer, err)
	}
	return modulusFromSet(set, issuer)
}

// StaticJWKSource serves moduli from fixed JWK sets, for configurations
// that pin provider keys and for tests.
type StaticJWKSource struct {
	sets map[string]jwk.Set // issuer -> set
}

// NewStaticJWKSource parses one serialized JWK set per issuer.
func NewStaticJWKSource(raw map[string][]byte) (*StaticJWKSource, error) {
	sets := make(map[string]jwk.Set, len(raw))
	for iss, doc := range raw {
		set, err := jwk.Parse(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse JWK set for %s: %w", iss, err)
		}
		sets[iss] = set
	}
	return &StaticJWKSource{sets: sets}, nil
}

func (s *StaticJWKSource) Modulus(_ context.Context, issuer string) (*big.Int, error) {
	set, ok := s.sets[issuer]
	if !ok {
		return nil, fmt.Errorf("no JWK set for issuer %s", issuer)
	}
	return modulusFromSet(set, issuer)
}

func modulusFromSet(set jwk.Set, issuer string) (*big.Int, error) {
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok {
			continue
		}
		var raw any
		if err := key.Raw(&raw); err != nil {
			continue
		}
		if pub, ok := raw.(*rsa.PublicKey); ok {
			return pub.N, nil
		}
	}
	return nil, fmt.Errorf("no RSA key in JWK set for %s", issuer)
}
