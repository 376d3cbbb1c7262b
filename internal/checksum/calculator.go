package checksum

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/vvka-141/repofs/internal/canon"
)

// Calculator is an interface for computing document checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of the canonical rendering of
	// content. Fails with repofs.ErrDataFormat when content is not JSON.
	CalculateNormalized(content []byte) (string, error)
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of content rendered canonically.
func (c SHA256) CalculateNormalized(content []byte) (string, error) {
	value, err := canon.Parse(content)
	if err != nil {
		return "", err
	}
	return c.CalculateRaw(canon.Pretty(value)), nil
}

var _ Calculator = SHA256{}
