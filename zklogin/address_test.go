package zklogin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAddress(t *testing.T) {
	addr, err := DeriveAddress(testIssuer, testAddressSeed)
	require.NoError(t, err)
	assert.Equal(t, testAddress, addr)
}

func TestDeriveAddressRejectsBadSeed(t *testing.T) {
	_, err := DeriveAddress(testIssuer, "not-a-number")
	assert.Error(t, err)

	_, err = DeriveAddress(testIssuer, "1"+strings.Repeat("0", 78))
	assert.Error(t, err)
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"lowercase", testAddress, testAddress, true},
		{"uppercase hex", "0x" + strings.ToUpper(testAddress[2:]), testAddress, true},
		{"0X prefix", "0X" + testAddress[2:], testAddress, true},
		{"no prefix", testAddress[2:], "", false},
		{"too short", "0x1ca6", "", false},
		{"too long", testAddress + "00", "", false},
		{"not hex", "0x" + strings.Repeat("zz", 32), "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeAddress(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
