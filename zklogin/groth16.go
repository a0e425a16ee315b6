package zklogin

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"math/big"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"

	"golang.org/x/crypto/blake2b"
)

// ProviderParams carries the per-issuer public material bound into the
// proof's public input: the RSA modulus of the JWK the OpenID token was
// signed with.
type ProviderParams struct {
	Modulus *big.Int
}

// Groth16Verifier checks decoded zkLogin signatures against the verifying
// key for a proving environment. It is safe for concurrent use; the registry
// is read-only after startup.
//
// Verify returns (false, nil) for a definitive negative — expired epoch,
// bad ephemeral signature, author mismatch or failed pairing check — and a
// non-nil error only when the proof material is malformed and the pairing
// check could not be evaluated at all.
type Groth16Verifier struct {
	keys *KeyRegistry
}

func NewGroth16Verifier(keys *KeyRegistry) *Groth16Verifier {
	return &Groth16Verifier{keys: keys}
}

func (v *Groth16Verifier) Verify(ctx context.Context, sig *Signature, digest [32]byte, epoch uint64, env Env, params ProviderParams) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// The proof only commits to epochs up to MaxEpoch; anything later is a
	// definitive rejection, not a malformed proof.
	if epoch > sig.MaxEpoch {
		return false, nil
	}

	if len(sig.EphemeralPublicKey) != ed25519.PublicKeySize {
		return false, fmt.Errorf("ephemeral public key is %d bytes", len(sig.EphemeralPublicKey))
	}
	if !ed25519.Verify(sig.EphemeralPublicKey, digest[:], sig.EphemeralSignature) {
		return false, nil
	}

	proof, err := parseProof(sig.Inputs.ProofPoints)
	if err != nil {
		return false, err
	}

	vk, err := v.keys.Get(env)
	if err != nil {
		return false, err
	}
	bvk, ok := vk.(*groth16_bn254.VerifyingKey)
	if !ok {
		return false, fmt.Errorf("verifying key for %q is not a BN254 key", env)
	}

	input, err := publicInputsHash(sig, params)
	if err != nil {
		return false, err
	}

	if err := groth16_bn254.Verify(proof, bvk, fr.Vector{input}); err != nil {
		return false, nil
	}
	return true, nil
}

// parseProof converts the envelope's decimal projective coordinates into
// affine BN254 points. Points are subgroup-checked before any pairing is
// attempted so malformed input fails closed instead of feeding the pairing
// undefined values.
func parseProof(pts ProofPoints) (*groth16_bn254.Proof, error) {
	var proof groth16_bn254.Proof
	var err error
	if proof.Ar, err = g1FromDecimal(pts.A); err != nil {
		return nil, fmt.Errorf("proof point a: %w", err)
	}
	if proof.Bs, err = g2FromDecimal(pts.B); err != nil {
		return nil, fmt.Errorf("proof point b: %w", err)
	}
	if proof.Krs, err = g1FromDecimal(pts.C); err != nil {
		return nil, fmt.Errorf("proof point c: %w", err)
	}
	return &proof, nil
}

func g1FromDecimal(coords []string) (curve.G1Affine, error) {
	var p curve.G1Affine
	if len(coords) != 3 {
		return p, fmt.Errorf("expected 3 projective coordinates, got %d", len(coords))
	}
	if coords[2] != "1" {
		return p, fmt.Errorf("unnormalized projective point")
	}
	if _, err := p.X.SetString(coords[0]); err != nil {
		return p, fmt.Errorf("invalid x coordinate: %w", err)
	}
	if _, err := p.Y.SetString(coords[1]); err != nil {
		return p, fmt.Errorf("invalid y coordinate: %w", err)
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, fmt.Errorf("point not in G1")
	}
	return p, nil
}

func g2FromDecimal(coords [][]string) (curve.G2Affine, error) {
	var p curve.G2Affine
	if len(coords) != 3 {
		return p, fmt.Errorf("expected 3 projective coordinates, got %d", len(coords))
	}
	for i, c := range coords {
		if len(c) != 2 {
			return p, fmt.Errorf("coordinate %d has %d limbs", i, len(c))
		}
	}
	if coords[2][0] != "1" || coords[2][1] != "0" {
		return p, fmt.Errorf("unnormalized projective point")
	}
	if _, err := p.X.A0.SetString(coords[0][0]); err != nil {
		return p, fmt.Errorf("invalid x coordinate: %w", err)
	}
	if _, err := p.X.A1.SetString(coords[0][1]); err != nil {
		return p, fmt.Errorf("invalid x coordinate: %w", err)
	}
	if _, err := p.Y.A0.SetString(coords[1][0]); err != nil {
		return p, fmt.Errorf("invalid y coordinate: %w", err)
	}
	if _, err := p.Y.A1.SetString(coords[1][1]); err != nil {
		return p, fmt.Errorf("invalid y coordinate: %w", err)
	}
	if !p.IsOnCurve() || !p.IsInSubGroup() {
		return p, fmt.Errorf("point not in G2")
	}
	return p, nil
}

// publicInputsHash compresses everything the circuit exposes publicly into
// the single field element the verifying key expects: the ephemeral key
// split into two halves, the address seed, the epoch bound, the issuer
// claim, the JWT header and the provider modulus.
func publicInputsHash(sig *Signature, params ProviderParams) (fr.Element, error) {
	var zero fr.Element
	if params.Modulus == nil || params.Modulus.Sign() <= 0 {
		return zero, fmt.Errorf("missing provider modulus")
	}
	seed, err := parseAddressSeed(sig.Inputs.AddressSeed)
	if err != nil {
		return zero, err
	}

	var elems []fr.Element
	push := func(b []byte) {
		var e fr.Element
		e.SetBytes(b)
		elems = append(elems, e)
	}
	push(sig.EphemeralPublicKey[:16])
	push(sig.EphemeralPublicKey[16:])
	push(seed.Bytes())
	var epoch fr.Element
	epoch.SetUint64(sig.MaxEpoch)
	elems = append(elems, epoch)
	issSum := blake2b.Sum256(append([]byte(sig.Inputs.IssBase64Details.Value), sig.Inputs.IssBase64Details.IndexMod4))
	push(issSum[:])
	hdrSum := blake2b.Sum256([]byte(sig.Inputs.HeaderBase64))
	push(hdrSum[:])
	modSum := blake2b.Sum256(params.Modulus.Bytes())
	push(modSum[:])

	h := mimc.NewMiMC()
	for i := range elems {
		b := elems[i].Bytes()
		if _, err := h.Write(b[:]); err != nil {
			return zero, err
		}
	}
	var out fr.Element
	out.SetBytes(h.Sum(nil))
	return out, nil
}
