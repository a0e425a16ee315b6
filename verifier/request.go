package verifier

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mystenlabs/zklogin-verifier/zklogin"
)

// Network identifies which chain a signature is verified against. It selects
// the fullnode used for epoch resolution, the provider allowlist and the
// proving environment.
type Network string

const (
	NetworkLocalnet Network = "Localnet"
	NetworkDevnet   Network = "Devnet"
	NetworkTestnet  Network = "Testnet"
	NetworkMainnet  Network = "Mainnet"
)

// ParseNetwork validates a wire network name.
func ParseNetwork(s string) (Network, error) {
	switch Network(s) {
	case NetworkLocalnet, NetworkDevnet, NetworkTestnet, NetworkMainnet:
		return Network(s), nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

// DefaultFullnodeURL returns the JSON-RPC endpoint used for epoch resolution
// when no override is configured.
func (n Network) DefaultFullnodeURL() string {
	switch n {
	case NetworkMainnet:
		return "https://fullnode.mainnet.sui.io:443"
	case NetworkTestnet:
		return "https://fullnode.testnet.sui.io:443"
	case NetworkDevnet:
		return "https://fullnode.devnet.sui.io:443"
	default:
		return "http://127.0.0.1:9000"
	}
}

// ProvingEnv maps a network to the proving setup its proofs are checked
// against: the production ceremony for Mainnet and Testnet, the test setup
// elsewhere.
func (n Network) ProvingEnv() zklogin.Env {
	switch n {
	case NetworkMainnet, NetworkTestnet:
		return zklogin.EnvProd
	default:
		return zklogin.EnvTest
	}
}

// EpochValue decodes an epoch supplied as either a JSON number or a decimal
// string.
type EpochValue uint64

func (e *EpochValue) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("epoch must be an unsigned integer: %w", err)
	}
	*e = EpochValue(v)
	return nil
}

// RawRequest is the request body as deserialized by the transport, before
// any invariant has been checked.
type RawRequest struct {
	Signature   string      `json:"signature"`
	Bytes       string      `json:"bytes"`
	IntentScope *int        `json:"intent_scope"`
	CurrEpoch   *EpochValue `json:"curr_epoch,omitempty"`
	Network     string      `json:"network"`
	Author      string      `json:"author,omitempty"`
}

// Request is a structurally valid verification request.
type Request struct {
	Signature   string
	Payload     []byte
	IntentScope zklogin.IntentScope
	CurrEpoch   *uint64
	Network     Network
	Author      string
}

// ValidateRequest checks field presence, types and the author-presence
// invariant, producing a Request or an invalid_request failure. It is a pure
// function of its input and does not look inside the signature or payload
// beyond requiring them to be non-empty.
func ValidateRequest(raw *RawRequest) (*Request, *Failure) {
	if raw.Signature == "" {
		return nil, failf(FailureInvalidRequest, "signature is required")
	}
	if raw.Bytes == "" {
		return nil, failf(FailureInvalidRequest, "bytes is required")
	}
	payload, err := base64.StdEncoding.DecodeString(raw.Bytes)
	if err != nil {
		return nil, failf(FailureInvalidRequest, "bytes is not valid base64")
	}
	if len(payload) == 0 {
		return nil, failf(FailureInvalidRequest, "bytes decodes to an empty payload")
	}

	if raw.IntentScope == nil {
		return nil, failf(FailureInvalidRequest, "intent_scope is required")
	}
	scope := zklogin.IntentScope(*raw.IntentScope)
	if *raw.IntentScope < 0 || *raw.IntentScope > 255 || !scope.Valid() {
		return nil, failf(FailureInvalidRequest, "intent_scope must be %d (TransactionData) or %d (PersonalMessage)",
			zklogin.IntentTransactionData, zklogin.IntentPersonalMessage)
	}

	network, err := ParseNetwork(raw.Network)
	if err != nil {
		return nil, failf(FailureInvalidRequest, "%v", err)
	}

	author := ""
	if raw.Author != "" {
		normalized, ok := zklogin.NormalizeAddress(raw.Author)
		if !ok {
			return nil, failf(FailureInvalidRequest, "author is not a valid address")
		}
		author = normalized
	}
	if scope == zklogin.IntentPersonalMessage && author == "" {
		return nil, failf(FailureInvalidRequest, "author is required for personal message verification")
	}

	req := &Request{
		Signature:   raw.Signature,
		Payload:     payload,
		IntentScope: scope,
		Network:     network,
		Author:      author,
	}
	if raw.CurrEpoch != nil {
		epoch := uint64(*raw.CurrEpoch)
		req.CurrEpoch = &epoch
	}
	return req, nil
}
