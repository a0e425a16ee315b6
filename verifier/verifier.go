package verifier

import (
	"context"
	"math/big"
	"runtime"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mystenlabs/zklogin-verifier/zklogin"
)

// ProofVerifier is the narrow capability the pipeline consumes for the
// cryptographic check. The gnark-backed implementation lives in the zklogin
// package; tests substitute a stub.
type ProofVerifier interface {
	Verify(ctx context.Context, sig *zklogin.Signature, digest [32]byte, epoch uint64, env zklogin.Env, params zklogin.ProviderParams) (bool, error)
}

// JWKSource resolves the RSA modulus of a trusted issuer's current key.
type JWKSource interface {
	Modulus(ctx context.Context, issuer string) (*big.Int, error)
}

// Logger is the subset of the server's structured logger the pipeline uses.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Config wires a Verifier's collaborators.
type Config struct {
	Allowlist *Allowlist
	Chain     ChainClient
	// Endpoints overrides the per-network fullnode URLs used for epoch
	// resolution; unset networks use their defaults.
	Endpoints map[Network]string
	Proofs    ProofVerifier
	JWKs      JWKSource
	Logger    Logger

	EpochTimeout  time.Duration
	EpochAttempts int

	// MaxConcurrentChecks bounds in-flight pairing checks so CPU-bound
	// verification cannot starve I/O work. Defaults to GOMAXPROCS.
	MaxConcurrentChecks int64
}

// Verifier runs the verification pipeline. Each request flows once through
// validation, epoch resolution, envelope decoding, the provider policy and
// the proof check; every stage short-circuits with a classified failure.
// All shared state is read-only, so a single Verifier serves concurrent
// requests.
type Verifier struct {
	allowlist *Allowlist
	epochs    *EpochResolver
	proofs    ProofVerifier
	jwks      JWKSource
	sem       *semaphore.Weighted
	logger    Logger
}

// New builds a Verifier from cfg.
func New(cfg Config) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	allowlist := cfg.Allowlist
	if allowlist == nil {
		allowlist = DefaultAllowlist()
	}
	limit := cfg.MaxConcurrentChecks
	if limit <= 0 {
		limit = int64(runtime.GOMAXPROCS(0))
	}
	return &Verifier{
		allowlist: allowlist,
		epochs:    NewEpochResolver(cfg.Chain, cfg.Endpoints, cfg.EpochTimeout, cfg.EpochAttempts),
		proofs:    cfg.Proofs,
		jwks:      cfg.JWKs,
		sem:       semaphore.NewWeighted(limit),
		logger:    logger,
	}
}

// Verify runs one request through the pipeline. The outcome is
// deterministic for identical inputs, except that epoch resolution depends
// on chain availability when no explicit epoch is supplied.
func (v *Verifier) Verify(ctx context.Context, raw *RawRequest) Outcome {
	req, fail := ValidateRequest(raw)
	if fail != nil {
		return failed(fail)
	}

	epoch, fail := v.epochs.Resolve(ctx, req.Network, req.CurrEpoch)
	if fail != nil {
		return failed(fail)
	}

	sig, err := zklogin.DecodeSignature(req.Signature)
	if err != nil {
		return failed(failf(FailureMalformedSignature, "%v", err))
	}

	provider, ok := v.allowlist.Lookup(req.Network, sig.Issuer)
	if !ok {
		return failed(failf(FailureUnsupportedProvider, "issuer %s is not trusted on %s", sig.Issuer, req.Network))
	}
	v.logger.Debug("provider accepted", "provider", provider.Name, "network", req.Network)

	digest, err := zklogin.MessageDigest(req.IntentScope, req.Payload)
	if err != nil {
		return failed(failf(FailureInvalidRequest, "%v", err))
	}

	// The claimed author must be the address this identity controls. A
	// mismatch is a definitive negative, not a pipeline error.
	if req.Author != "" {
		derived, err := zklogin.DeriveAddress(sig.Issuer, sig.Inputs.AddressSeed)
		if err != nil {
			return failed(failf(FailureMalformedSignature, "%v", err))
		}
		if derived != req.Author {
			v.logger.Debug("author mismatch", "claimed", req.Author, "derived", derived)
			return verified(false)
		}
	}

	modulus, err := v.jwks.Modulus(ctx, sig.Issuer)
	if err != nil {
		return v.proofInvalid("provider key material unavailable", sig.Issuer, err)
	}

	// Pairing checks are expensive; bound how many run at once and stay
	// cancellable via the request context.
	if err := v.sem.Acquire(ctx, 1); err != nil {
		return v.proofInvalid("verification not started", sig.Issuer, err)
	}
	defer v.sem.Release(1)

	ok, err = v.proofs.Verify(ctx, sig, digest, epoch, req.Network.ProvingEnv(), zklogin.ProviderParams{Modulus: modulus})
	if err != nil {
		return v.proofInvalid("proof could not be evaluated", sig.Issuer, err)
	}
	return verified(ok)
}

// Providers exposes the allowlist for the transport's listing endpoint.
func (v *Verifier) Providers(network Network) []Provider {
	return v.allowlist.Providers(network)
}

// proofInvalid records a proof_invalid failure. Callers see it as an
// unverified signature; the reason only reaches the log.
func (v *Verifier) proofInvalid(msg, issuer string, err error) Outcome {
	v.logger.Warn("proof invalid", "reason", msg, "issuer", issuer, "error", err)
	return failed(failf(FailureProofInvalid, "%s: %v", msg, err))
}
