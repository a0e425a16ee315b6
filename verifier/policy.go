package verifier

import "sort"

// Provider describes a trusted OpenID provider: the issuer identity proofs
// claim, and the endpoint publishing the keys tokens are signed with.
type Provider struct {
	Name    string `json:"name"`
	Issuer  string `json:"issuer"`
	JWKSURL string `json:"-"`
}

// Allowlist is the per-network set of trusted providers. It is built once at
// startup and shared read-only across requests; lookups never mutate it.
type Allowlist struct {
	networks map[Network]map[string]Provider
}

// NewAllowlist builds an allowlist from per-network provider lists.
func NewAllowlist(entries map[Network][]Provider) *Allowlist {
	networks := make(map[Network]map[string]Provider, len(entries))
	for network, providers := range entries {
		byIssuer := make(map[string]Provider, len(providers))
		for _, p := range providers {
			byIssuer[p.Issuer] = p
		}
		networks[network] = byIssuer
	}
	return &Allowlist{networks: networks}
}

// Lookup reports whether issuer is trusted on network.
func (a *Allowlist) Lookup(network Network, issuer string) (Provider, bool) {
	p, ok := a.networks[network][issuer]
	return p, ok
}

// Providers returns the providers trusted on network, sorted by name.
func (a *Allowlist) Providers(network Network) []Provider {
	out := make([]Provider, 0, len(a.networks[network]))
	for _, p := range a.networks[network] {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// JWKSEndpoints returns the issuer -> JWKS URL mapping across all networks,
// for seeding the JWK store.
func (a *Allowlist) JWKSEndpoints() map[string]string {
	out := make(map[string]string)
	for _, byIssuer := range a.networks {
		for iss, p := range byIssuer {
			if p.JWKSURL != "" {
				out[iss] = p.JWKSURL
			}
		}
	}
	return out
}

var defaultProviders = []Provider{
	{Name: "Google", Issuer: "https://accounts.google.com", JWKSURL: "https://www.googleapis.com/oauth2/v3/certs"},
	{Name: "Facebook", Issuer: "https://www.facebook.com", JWKSURL: "https://www.facebook.com/.well-known/oauth/openid/jwks/"},
	{Name: "Twitch", Issuer: "https://id.twitch.tv/oauth2", JWKSURL: "https://id.twitch.tv/oauth2/keys"},
	{Name: "Apple", Issuer: "https://appleid.apple.com", JWKSURL: "https://appleid.apple.com/auth/keys"},
	{Name: "Slack", Issuer: "https://slack.com", JWKSURL: "https://slack.com/openid/connect/keys"},
	{Name: "Kakao", Issuer: "https://kauth.kakao.com", JWKSURL: "https://kauth.kakao.com/.well-known/jwks.json"},
}

// DefaultAllowlist trusts the production OpenID provider set on every
// network. Deployments narrow this through configuration.
func DefaultAllowlist() *Allowlist {
	return NewAllowlist(map[Network][]Provider{
		NetworkLocalnet: defaultProviders,
		NetworkDevnet:   defaultProviders,
		NetworkTestnet:  defaultProviders,
		NetworkMainnet:  defaultProviders,
	})
}
