package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/hmsauth/domain"
)

// PlaintextVerifier implements domain.CredentialVerifier with a direct
// equality check. Demo accounts only; selected by config, never hardcoded
// at call sites, so it can be swapped for BcryptVerifier without touching
// the directory or the auth service.
type PlaintextVerifier struct{}

// NewPlaintextVerifier creates the demo credential verifier.
func NewPlaintextVerifier() domain.CredentialVerifier {
	return &PlaintextVerifier{}
}

// Hash implements domain.CredentialVerifier. Plaintext storage: the hash
// is the secret itself.
func (p *PlaintextVerifier) Hash(secret string) (string, error) {
	return secret, nil
}

// Verify implements domain.CredentialVerifier. Case-sensitive,
// constant-time equality.
func (p *PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

// BcryptVerifier implements domain.CredentialVerifier with bcrypt.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier creates the production credential verifier.
func NewBcryptVerifier() domain.CredentialVerifier {
	return &BcryptVerifier{cost: bcrypt.DefaultCost}
}

// Hash implements domain.CredentialVerifier.
func (b *BcryptVerifier) Hash(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify implements domain.CredentialVerifier.
func (b *BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
