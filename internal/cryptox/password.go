// Package cryptox implements the one-way credential scheme used to store
// user passwords.
//
// Credentials are PBKDF2 digests encoded as
//
//	pbkdf2:<hash>:<iterations>$<salt>$<hex digest>
//
// which is the same layout older deployments of the blog already keep in the
// users table, so those rows keep verifying after migration.
package cryptox

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 work factor for new credentials.
	DefaultIterations = 600000

	// legacyIterations applies when a stored method omits the iteration count.
	legacyIterations = 260000

	// SaltLength is the number of salt characters for new credentials.
	SaltLength = 16

	methodPrefix = "pbkdf2"
	defaultHash  = "sha256"
)

// HashPassword derives a salted credential for password. Two calls with the
// same password return different strings because each call draws a new salt.
func HashPassword(password string) (string, error) {
	return HashPasswordIterations(password, DefaultIterations)
}

// HashPasswordIterations is HashPassword with an explicit work factor.
func HashPasswordIterations(password string, iterations int) (string, error) {
	if iterations <= 0 {
		return "", fmt.Errorf("invalid iteration count %d", iterations)
	}

	salt, err := common.MakeRandString(SaltLength, common.AlphaNumeric)
	if err != nil {
		return "", fmt.Errorf("salt generation error: %w", err)
	}

	digest := derive(sha256.New, password, salt, iterations)

	return fmt.Sprintf("%s:%s:%d$%s$%s", methodPrefix, defaultHash, iterations, salt, digest), nil
}

// CheckPassword reports whether password matches credential. A malformed or
// unsupported credential never matches.
func CheckPassword(password, credential string) bool {
	parts := strings.Split(credential, "$")
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	newHash, iterations, ok := parseMethod(method)
	if !ok {
		return false
	}

	got := derive(newHash, password, salt, iterations)

	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// parseMethod understands "pbkdf2:<hash>[:<iterations>]".
func parseMethod(method string) (func() hash.Hash, int, bool) {
	fields := strings.Split(method, ":")
	if len(fields) < 2 || len(fields) > 3 || fields[0] != methodPrefix {
		return nil, 0, false
	}

	var h func() hash.Hash
	switch fields[1] {
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	default:
		return nil, 0, false
	}

	iterations := legacyIterations
	if len(fields) == 3 {
		n, err := strconv.Atoi(fields[2])
		if err != nil || n <= 0 {
			return nil, 0, false
		}
		iterations = n
	}

	return h, iterations, true
}

func derive(h func() hash.Hash, password, salt string, iterations int) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, h().Size(), h)
	return hex.EncodeToString(key)
}
