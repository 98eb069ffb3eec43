package common

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// AlphaNumeric is the default alphabet for MakeRandString.
const AlphaNumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MakeRandString returns a string of size characters drawn uniformly from
// alphabet using crypto/rand.
//
// It returns an error if alphabet is empty or the random source fails.
func MakeRandString(size int, alphabet string) (string, error) {
	if size <= 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errors.New("empty alphabet")
	}

	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, size)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}

	return string(b), nil
}
