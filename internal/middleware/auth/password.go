package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters; Hash encodes them into the stored string so Verify never depends on them.
	Iterations = 65536
	SaltLength = 16
	KeyLength  = 32 // 256-bit derived key

	// MaxIterations bounds the work a stored hash can demand; larger counts are malformed.
	MaxIterations = 10 * Iterations
)

// dummyHash is verified against when the user does not exist so that both login failure
// paths cost one full PBKDF2 derivation.
var dummyHash = mustHash("mrp-timing-equaliser")

// HashPassword returns "iterations:base64(salt):base64(key)" for password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha256.New)

	return strconv.Itoa(Iterations) + ":" +
		base64.StdEncoding.EncodeToString(salt) + ":" +
		base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword checks password against a string produced by HashPassword.
// Malformed stored hashes verify as false.
func VerifyPassword(password, stored string) bool {
	parts := strings.Split(stored, ":")
	if len(parts) != 3 {
		return false
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 || iterations > MaxIterations {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}
	expected, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false
	}

	actual := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(expected, actual) == 1
}

// BurnVerify spends the same work as a real verification and always reports false.
func BurnVerify(password string) bool {
	VerifyPassword(password, dummyHash)
	return false
}

func mustHash(password string) string {
	h, err := HashPassword(password)
	if err != nil {
		// crypto/rand failing at init is not recoverable
		panic(err)
	}
	return h
}
