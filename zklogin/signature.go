package zklogin

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
	"unicode/utf8"
)

// Signature scheme flags as they appear on the wire.
const (
	SchemeEd25519 byte = 0x00
	SchemeZkLogin byte = 0x05
)

// Decoding limits. A well-formed envelope stays far below these; anything
// larger is rejected before allocation.
const (
	maxEnvelopeSize = 4096
	maxStringLen    = 512
	maxVectorLen    = 8
)

// ProofPoints holds the three Groth16 proof points as decimal coordinate
// strings, exactly as embedded in the envelope. A and C are projective G1
// points (x, y, z), B is a projective G2 point with two-limb coordinates.
type ProofPoints struct {
	A []string
	B [][]string
	C []string
}

// Claim is a base64 slice of the JWT payload covering a single claim,
// together with its alignment within the original base64 encoding.
type Claim struct {
	Value     string
	IndexMod4 uint8
}

// Inputs are the provider-bound auxiliary values the proof commits to.
type Inputs struct {
	ProofPoints      ProofPoints
	IssBase64Details Claim
	HeaderBase64     string
	AddressSeed      string
}

// Signature is the decoded zkLogin envelope: the proof with its auxiliary
// inputs, the epoch bound, and the ephemeral key material that signed the
// payload.
type Signature struct {
	Inputs             Inputs
	MaxEpoch           uint64
	EphemeralSignature []byte
	EphemeralPublicKey []byte

	// Issuer is the OpenID issuer extracted from IssBase64Details. It is
	// claimed by the envelope and must not be trusted until checked against
	// the provider allowlist.
	Issuer string
}

// DecodeSignature parses a base64 zkLogin signature envelope. The layout is
// a scheme flag byte followed by the BCS serialization of the authenticator:
// proof points, iss claim slice, header, address seed, max epoch and the
// ephemeral user signature. Any structural mismatch returns an error; the
// input is attacker-controlled and decoding never panics.
func DecodeSignature(encoded string) (*Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("signature is not valid base64: %w", err)
	}
	if len(raw) > maxEnvelopeSize {
		return nil, fmt.Errorf("signature envelope exceeds %d bytes", maxEnvelopeSize)
	}

	d := &bcsReader{buf: raw}

	flag, err := d.byte()
	if err != nil {
		return nil, err
	}
	if flag != SchemeZkLogin {
		return nil, fmt.Errorf("unexpected signature scheme flag 0x%02x", flag)
	}

	var sig Signature
	if sig.Inputs.ProofPoints.A, err = d.stringVec(); err != nil {
		return nil, fmt.Errorf("proof point a: %w", err)
	}
	n, err := d.vecLen()
	if err != nil {
		return nil, fmt.Errorf("proof point b: %w", err)
	}
	sig.Inputs.ProofPoints.B = make([][]string, n)
	for i := range sig.Inputs.ProofPoints.B {
		if sig.Inputs.ProofPoints.B[i], err = d.stringVec(); err != nil {
			return nil, fmt.Errorf("proof point b[%d]: %w", i, err)
		}
	}
	if sig.Inputs.ProofPoints.C, err = d.stringVec(); err != nil {
		return nil, fmt.Errorf("proof point c: %w", err)
	}

	if sig.Inputs.IssBase64Details.Value, err = d.string(); err != nil {
		return nil, fmt.Errorf("iss claim: %w", err)
	}
	if sig.Inputs.IssBase64Details.IndexMod4, err = d.byte(); err != nil {
		return nil, fmt.Errorf("iss claim index: %w", err)
	}
	if sig.Inputs.HeaderBase64, err = d.string(); err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if sig.Inputs.AddressSeed, err = d.string(); err != nil {
		return nil, fmt.Errorf("address seed: %w", err)
	}
	if _, err := parseAddressSeed(sig.Inputs.AddressSeed); err != nil {
		return nil, err
	}

	if sig.MaxEpoch, err = d.uint64(); err != nil {
		return nil, fmt.Errorf("max epoch: %w", err)
	}

	userSig, err := d.bytes()
	if err != nil {
		return nil, fmt.Errorf("user signature: %w", err)
	}
	if len(userSig) != 1+64+32 || userSig[0] != SchemeEd25519 {
		return nil, fmt.Errorf("unexpected ephemeral signature layout (%d bytes)", len(userSig))
	}
	sig.EphemeralSignature = userSig[1:65]
	sig.EphemeralPublicKey = userSig[65:]

	if d.pos != len(d.buf) {
		return nil, fmt.Errorf("%d trailing bytes after envelope", len(d.buf)-d.pos)
	}

	if sig.Issuer, err = extractIssuer(sig.Inputs.IssBase64Details); err != nil {
		return nil, err
	}
	return &sig, nil
}

// parseAddressSeed checks the decimal address seed fits in 32 bytes and
// returns it as an integer.
func parseAddressSeed(seed string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(seed, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("address seed is not a decimal integer")
	}
	if n.BitLen() > 256 {
		return nil, fmt.Errorf("address seed exceeds 32 bytes")
	}
	return n, nil
}

// extractIssuer realigns the iss claim slice per its index mod 4, decodes it
// and pulls out the "iss" value. The slice covers exactly one claim of the
// JWT payload, so it decodes to `"iss":"<value>"` followed by ',' or '}'.
func extractIssuer(c Claim) (string, error) {
	decoded, err := decodeBase64URLSlice(c.Value, c.IndexMod4)
	if err != nil {
		return "", fmt.Errorf("iss claim: %w", err)
	}
	if len(decoded) < 2 {
		return "", fmt.Errorf("iss claim too short")
	}
	switch decoded[len(decoded)-1] {
	case ',', '}':
	default:
		return "", fmt.Errorf("iss claim not terminated by ',' or '}'")
	}
	var claim struct {
		Iss *string `json:"iss"`
	}
	fragment := append([]byte{'{'}, decoded[:len(decoded)-1]...)
	fragment = append(fragment, '}')
	if err := json.Unmarshal(fragment, &claim); err != nil {
		return "", fmt.Errorf("iss claim is not a JSON member: %w", err)
	}
	if claim.Iss == nil || *claim.Iss == "" {
		return "", fmt.Errorf("iss claim missing value")
	}
	return *claim.Iss, nil
}

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// decodeBase64URLSlice decodes a base64url fragment cut out of a larger
// encoding. indexMod4 is the fragment's starting offset mod 4; the leading
// and trailing 6-bit groups shared with neighbouring characters are dropped.
func decodeBase64URLSlice(s string, indexMod4 uint8) ([]byte, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("fragment too short")
	}
	bits := make([]byte, 0, len(s)*6)
	for i := 0; i < len(s); i++ {
		v := base64URLIndex(s[i])
		if v < 0 {
			return nil, fmt.Errorf("invalid base64url character %q", s[i])
		}
		for b := 5; b >= 0; b-- {
			bits = append(bits, byte(v>>b)&1)
		}
	}
	switch indexMod4 {
	case 0:
	case 1:
		bits = bits[2:]
	case 2:
		bits = bits[4:]
	default:
		return nil, fmt.Errorf("invalid index mod 4: %d", indexMod4)
	}
	switch (int(indexMod4) + len(s) - 1) % 4 {
	case 3:
	case 2:
		bits = bits[:len(bits)-2]
	case 1:
		bits = bits[:len(bits)-4]
	default:
		return nil, fmt.Errorf("fragment ends on a character boundary that cannot occur")
	}
	if len(bits)%8 != 0 {
		return nil, fmt.Errorf("fragment does not decode to whole bytes")
	}
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i*8+j]
		}
		out[i] = b
	}
	return out, nil
}

func base64URLIndex(c byte) int {
	switch {
	case c >= 'A' && c <= 'Z':
		return int(c - 'A')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 26
	case c >= '0' && c <= '9':
		return int(c-'0') + 52
	case c == '-':
		return 62
	case c == '_':
		return 63
	}
	return -1
}

// ==== BCS reader ====

// bcsReader walks a BCS buffer: ULEB128 length prefixes, little-endian
// integers, UTF-8 strings.
type bcsReader struct {
	buf []byte
	pos int
}

func (d *bcsReader) byte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, fmt.Errorf("truncated at offset %d", d.pos)
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

func (d *bcsReader) uleb128() (uint64, error) {
	var v uint64
	for shift := 0; shift < 64; shift += 7 {
		b, err := d.byte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, fmt.Errorf("uleb128 length overflows at offset %d", d.pos)
}

func (d *bcsReader) uint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, fmt.Errorf("truncated at offset %d", d.pos)
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *bcsReader) vecLen() (int, error) {
	n, err := d.uleb128()
	if err != nil {
		return 0, err
	}
	if n > maxVectorLen {
		return 0, fmt.Errorf("vector length %d exceeds limit", n)
	}
	return int(n), nil
}

func (d *bcsReader) bytes() ([]byte, error) {
	n, err := d.uleb128()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(d.buf)-d.pos) {
		return nil, fmt.Errorf("byte vector of %d at offset %d overruns buffer", n, d.pos)
	}
	out := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	return out, nil
}

func (d *bcsReader) string() (string, error) {
	n, err := d.uleb128()
	if err != nil {
		return "", err
	}
	if n > maxStringLen {
		return "", fmt.Errorf("string length %d exceeds limit", n)
	}
	if n > uint64(len(d.buf)-d.pos) {
		return "", fmt.Errorf("string of %d at offset %d overruns buffer", n, d.pos)
	}
	s := d.buf[d.pos : d.pos+int(n)]
	d.pos += int(n)
	if !utf8.Valid(s) {
		return "", fmt.Errorf("string at offset %d is not UTF-8", d.pos-int(n))
	}
	return string(s), nil
}

func (d *bcsReader) stringVec() ([]string, error) {
	n, err := d.vecLen()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.string(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
