// internal/stub/identity.go
package stub

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/argon2"

	"bookshelf/internal/identity"
)

// TokenIssuer fakes the external identity provider: it checks a password
// and issues an HS256 token carrying the role claim the front end reads.
type TokenIssuer struct {
	secret    []byte
	adminUser string
	adminHash string
	adminSalt string
	ttl       time.Duration
}

// NewTokenIssuer hashes the admin password once at startup. Every other
// username authenticates with any password and gets the member role, which
// keeps local development friction-free.
func NewTokenIssuer(secret []byte, adminUser, adminPassword string, ttl time.Duration) (*TokenIssuer, error) {
	hash, salt, err := hashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &TokenIssuer{
		secret:    secret,
		adminUser: adminUser,
		adminHash: hash,
		adminSalt: salt,
		ttl:       ttl,
	}, nil
}

// Issue authenticates and returns a signed token. The admin username
// requires the configured password; the role claim is "admin" for the
// admin user and "member" otherwise.
func (t *TokenIssuer) Issue(username, password string) (string, error) {
	role := "member"
	if username == t.adminUser {
		ok, err := verifyPassword(password, t.adminSalt, t.adminHash)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("invalid credentials")
		}
		role = identity.RoleAdmin
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// hashPassword generates a salted Argon2id hash of the password.
func hashPassword(password string) (hash, salt string, err error) {
	rawSalt := make([]byte, 16)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", err
	}

	rawHash := argon2.IDKey([]byte(password), rawSalt, 1, 64*1024, 4, 32)

	return base64.StdEncoding.EncodeToString(rawHash),
		base64.StdEncoding.EncodeToString(rawSalt),
		nil
}

// verifyPassword compares a password with a salted hash.
func verifyPassword(password, salt, hash string) (bool, error) {
	rawSalt, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	rawHash, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false, fmt.Errorf("decode hash: %w", err)
	}

	comparison := argon2.IDKey([]byte(password), rawSalt, 1, 64*1024, 4, 32)
	return string(rawHash) == string(comparison), nil
}
