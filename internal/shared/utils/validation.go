package utils

import "fmt"

// MaxStateSize is the default limit for a state file read into memory
const MaxStateSize = 1 * 1024 * 1024 // 1MB

// SizeValidator rejects payloads larger than a limit
type SizeValidator struct {
	maxSize int
}

// NewSizeValidator creates a validator with the specified max size. A
// non-positive size disables the check.
func NewSizeValidator(maxSize int) *SizeValidator {
	return &SizeValidator{maxSize: maxSize}
}

// DefaultSizeValidator returns a validator with the default 1MB limit
func DefaultSizeValidator() *SizeValidator {
	return NewSizeValidator(MaxStateSize)
}

// ValidateSize checks if the data size is within limits
func (v *SizeValidator) ValidateSize(data []byte) error {
	if v == nil || v.maxSize <= 0 {
		return nil
	}
	if size := len(data); size > v.maxSize {
		return fmt.Errorf("size %d bytes exceeds maximum %d bytes", size, v.maxSize)
	}
	return nil
}
