package verifier

import "fmt"

// FailureKind classifies a pipeline short-circuit. The kind is stable API:
// transports key status codes and callers key retry behaviour off it.
type FailureKind string

const (
	// FailureInvalidRequest is a structural or field-invariant violation in
	// the request itself. Caller error, never retried.
	FailureInvalidRequest FailureKind = "invalid_request"
	// FailureEpochFetch means the chain query for the current epoch failed
	// or timed out. Transient: retry, or supply an explicit epoch.
	FailureEpochFetch FailureKind = "epoch_fetch_failed"
	// FailureMalformedSignature means the signature envelope did not parse.
	FailureMalformedSignature FailureKind = "malformed_signature"
	// FailureUnsupportedProvider means the issuer embedded in the signature
	// is not trusted for the requested network. Policy rejection, distinct
	// from a cryptographically invalid proof.
	FailureUnsupportedProvider FailureKind = "unsupported_provider"
	// FailureProofInvalid means the proof material could not be evaluated at
	// all (malformed curve points, missing provider key material). Surfaced
	// to callers as an unverified signature, logged distinctly.
	FailureProofInvalid FailureKind = "proof_invalid"
)

// Failure is a classified pipeline error.
type Failure struct {
	Kind   FailureKind
	Reason string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Reason)
}

func failf(kind FailureKind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Outcome is the result of one pipeline run: either a definitive verified
// flag, or a classified failure. Verified(false) is a successful outcome
// reporting an invalid signature, not a failure.
type Outcome struct {
	Verified bool
	Failure  *Failure
}

func verified(b bool) Outcome   { return Outcome{Verified: b} }
func failed(f *Failure) Outcome { return Outcome{Failure: f} }
