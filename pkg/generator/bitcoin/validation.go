package bitcoin

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

// Bech32 charset (excludes 1, b, i, o)
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// Base58 charset (excludes 0, O, I, l)
const base58Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var (
	// ErrEmptySuffix is returned when no suffix was given.
	ErrEmptySuffix = errors.New("suffix is required")
	// ErrInvalidSuffix is returned when the suffix holds characters the
	// target encoding can never produce.
	ErrInvalidSuffix = errors.New("suffix contains invalid characters")
)

// IsValidBech32Char checks if a character can appear in a Bech32/Bech32m
// data part. Matching is case-insensitive, so uppercase is accepted.
func IsValidBech32Char(c rune) bool {
	return strings.ContainsRune(bech32Charset, unicode.ToLower(c))
}

// IsValidBase58Char checks if a character, in either case, exists in the
// Base58 alphabet. Matching is case-insensitive, so 'l' is accepted because
// 'L' can appear, while '0' is rejected outright.
func IsValidBase58Char(c rune) bool {
	return strings.ContainsRune(base58Charset, unicode.ToLower(c)) ||
		strings.ContainsRune(base58Charset, unicode.ToUpper(c))
}

// InvalidChars returns the characters in suffix that cannot appear in the
// variant's encoding, in order of appearance and without duplicates.
func InvalidChars(suffix string, variant generator.AddressVariant) []rune {
	valid := IsValidBech32Char
	if IsBase58Variant(variant) {
		valid = IsValidBase58Char
	}

	var invalid []rune
	seen := make(map[rune]bool)
	for _, c := range suffix {
		if !valid(c) && !seen[c] {
			invalid = append(invalid, c)
			seen[c] = true
		}
	}
	return invalid
}

// ValidateSuffix checks that suffix is non-empty and only holds characters
// the variant's encoding can produce.
func ValidateSuffix(suffix string, variant generator.AddressVariant) error {
	if suffix == "" {
		return ErrEmptySuffix
	}
	if !IsBech32Variant(variant) && !IsBase58Variant(variant) {
		return ErrInvalidAddressVariant
	}

	if invalid := InvalidChars(suffix, variant); len(invalid) > 0 {
		encoding := "bech32"
		if IsBase58Variant(variant) {
			encoding = "Base58"
		}
		return fmt.Errorf("%w for %s addresses: %q", ErrInvalidSuffix, encoding, string(invalid))
	}
	return nil
}
