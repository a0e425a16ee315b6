package zklogin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// AddressLength is the byte length of a derived address.
const AddressLength = 32

// DeriveAddress computes the address controlled by a zkLogin identity:
// blake2b-256 over the zkLogin scheme flag, the length-prefixed issuer
// string and the address seed as a 32-byte big-endian integer. The result
// is rendered as 0x-prefixed lowercase hex.
func DeriveAddress(issuer, addressSeed string) (string, error) {
	seed, err := parseAddressSeed(addressSeed)
	if err != nil {
		return "", err
	}
	if len(issuer) > maxStringLen {
		return "", fmt.Errorf("issuer exceeds %d bytes", maxStringLen)
	}

	var seed32 [AddressLength]byte
	seed.FillBytes(seed32[:])

	pre := make([]byte, 0, 2+len(issuer)+AddressLength)
	pre = append(pre, SchemeZkLogin)
	pre = appendULEB128(pre, uint64(len(issuer)))
	pre = append(pre, issuer...)
	pre = append(pre, seed32[:]...)

	sum := blake2b.Sum256(pre)
	return "0x" + hex.EncodeToString(sum[:]), nil
}

// NormalizeAddress lowercases a 0x-prefixed 32-byte hex address, reporting
// whether it is well-formed.
func NormalizeAddress(s string) (string, bool) {
	if len(s) != 2+2*AddressLength || (s[:2] != "0x" && s[:2] != "0X") {
		return "", false
	}
	body := strings.ToLower(s[2:])
	if _, err := hex.DecodeString(body); err != nil {
		return "", false
	}
	return "0x" + body, true
}
