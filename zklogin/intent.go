package zklogin

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// IntentScope tags what kind of payload a signature covers. A proof over one
// scope never verifies under the other: the scope is the first byte of the
// digested message.
type IntentScope byte

const (
	IntentTransactionData IntentScope = 0
	IntentPersonalMessage IntentScope = 3
)

func (s IntentScope) Valid() bool {
	return s == IntentTransactionData || s == IntentPersonalMessage
}

func (s IntentScope) String() string {
	switch s {
	case IntentTransactionData:
		return "TransactionData"
	case IntentPersonalMessage:
		return "PersonalMessage"
	}
	return fmt.Sprintf("IntentScope(%d)", byte(s))
}

// intent version and app id are pinned; only the scope varies.
const (
	intentVersion byte = 0
	intentAppID   byte = 0
)

// MessageDigest computes the intent-scoped blake2b-256 digest the ephemeral
// key signs: a three-byte intent prefix followed by the message. Personal
// messages are length-prefixed the way they are serialized on chain, so the
// same bytes digested under the two scopes never collide.
func MessageDigest(scope IntentScope, message []byte) ([32]byte, error) {
	if !scope.Valid() {
		return [32]byte{}, fmt.Errorf("invalid intent scope %d", byte(scope))
	}
	buf := make([]byte, 0, 3+len(message)+8)
	buf = append(buf, byte(scope), intentVersion, intentAppID)
	if scope == IntentPersonalMessage {
		buf = appendULEB128(buf, uint64(len(message)))
	}
	buf = append(buf, message...)
	return blake2b.Sum256(buf), nil
}

func appendULEB128(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}
