package pkg

import (
	"crypto/rand"

	"github.com/mr-tron/base58"
)

// refCodeBytes gives codes of 11-12 base58 characters, short enough
// to share by hand and long enough to be unguessable.
const refCodeBytes = 8

// NewReferralCode returns a fresh random referral code.
func NewReferralCode() (string, error) {
	buf := make([]byte, refCodeBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base58.Encode(buf), nil
}
