package domain

import (
	"fmt"
	"strconv"
)

const (
	// VersionWidth is the fixed number of digits in a version string. Fixed width keeps
	// lexicographic order equal to numeric order, which range-keyed stores rely on.
	VersionWidth = 19

	// MaxVersion is the largest version representable in VersionWidth digits.
	MaxVersion uint64 = 9_999_999_999_999_999_999
)

// NextVersion returns the version that follows latest, or the first version when
// latest is nil.
func NextVersion(latest *uint64) (string, error) {
	if latest == nil {
		return FormatVersion(1)
	}
	if *latest >= MaxVersion {
		return "", ErrVersionOverflow
	}
	return FormatVersion(*latest + 1)
}

// FormatVersion zero-pads v to VersionWidth digits.
func FormatVersion(v uint64) (string, error) {
	if v > MaxVersion {
		return "", ErrVersionOverflow
	}
	return fmt.Sprintf("%0*d", VersionWidth, v), nil
}

// ParseVersion parses a VersionWidth-digit version string.
func ParseVersion(s string) (uint64, error) {
	if len(s) != VersionWidth {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return v, nil
}
