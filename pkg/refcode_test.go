package pkg

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestNewReferralCode(t *testing.T) {
	code, err := NewReferralCode()
	require.NoError(t, err)
	require.NotEmpty(t, code)

	raw, err := base58.Decode(code)
	require.NoError(t, err)
	require.Len(t, raw, refCodeBytes)
}

func TestNewReferralCodeIsRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewReferralCode()
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
