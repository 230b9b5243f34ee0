package validation

import (
	"errors"
	"fmt"

	"github.com/bulletinchain/go-sdk/internal/hashing"
)

var (
	ErrEmptyString = errors.New("value must not be empty")
	ErrOutOfRange  = errors.New("value out of range")
	ErrTooLarge    = errors.New("value exceeds configured ceiling")
	ErrInvalidAlg  = errors.New("unrecognized hash algorithm")
)

// ValidateChunkSize checks a configured chunk size against the chain's
// per-extrinsic ceiling. A non-positive size is ErrOutOfRange; a size
// above maxChunkSize is the distinct ErrTooLarge, so callers can tell
// "misconfigured" from "exceeds the chain's own bound" apart.
func ValidateChunkSize(chunkSize, maxChunkSize int) error {
	if chunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d must be positive", ErrOutOfRange, chunkSize)
	}
	if chunkSize > maxChunkSize {
		return fmt.Errorf("%w: chunk size %d exceeds max %d", ErrTooLarge, chunkSize, maxChunkSize)
	}
	return nil
}

// ValidateFileSize checks a payload size against the configured ceiling,
// with the same ErrOutOfRange/ErrTooLarge split as ValidateChunkSize.
func ValidateFileSize(size, maxFileSize int64) error {
	if size <= 0 {
		return fmt.Errorf("%w: payload size %d must be positive", ErrOutOfRange, size)
	}
	if size > maxFileSize {
		return fmt.Errorf("%w: payload size %d exceeds max %d", ErrTooLarge, size, maxFileSize)
	}
	return nil
}

// ValidateAlgorithm checks that alg is one this SDK can compute digests
// for (as opposed to merely recognizing the multicodec tag).
func ValidateAlgorithm(alg hashing.Algorithm) error {
	if _, err := hashing.Sum(nil, alg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAlg, err)
	}
	return nil
}

// ValidateStringNonEmpty checks a required identifier-like field.
func ValidateStringNonEmpty(s string) error {
	if s == "" {
		return ErrEmptyString
	}
	return nil
}
