package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/you/hmsauth/domain"
)

// DemoOTPCode is the fixed one-time code handed out in demo mode.
const DemoOTPCode = "123456"

// FixedCodeSource implements domain.CodeSource with a constant code. Demo
// mode only; a production deployment must select RandomCodeSource.
type FixedCodeSource struct {
	code string
}

// NewFixedCodeSource creates the demo code source.
func NewFixedCodeSource() domain.CodeSource {
	return &FixedCodeSource{code: DemoOTPCode}
}

// Generate implements domain.CodeSource.
func (s *FixedCodeSource) Generate() (string, error) {
	return s.code, nil
}

// RandomCodeSource implements domain.CodeSource with cryptographically
// random digit codes.
type RandomCodeSource struct {
	length int
}

// NewRandomCodeSource creates a code source producing codes of the given
// digit length.
func NewRandomCodeSource(length int) domain.CodeSource {
	if length <= 0 {
		length = 6
	}
	return &RandomCodeSource{length: length}
}

// Generate implements domain.CodeSource.
func (s *RandomCodeSource) Generate() (string, error) {
	digits := make([]byte, s.length)
	for i := 0; i < s.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
