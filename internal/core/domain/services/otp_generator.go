package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTPGenerator produces delivery confirmation codes.
type OTPGenerator interface {
	Generate() (string, error)
}

// NewOTPGenerator creates the default generator producing 5-digit numeric
// codes from a cryptographic randomness source.
func NewOTPGenerator() OTPGenerator {
	return &otpGenerator{}
}

type otpGenerator struct{}

// Generate returns a uniformly random 5-digit code, zero-padded.
func (g *otpGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}
