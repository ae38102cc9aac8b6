package bitcoin

import (
	"math"
	"strings"
	"unicode"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

// Matches reports whether address ends with suffix, ignoring case on both
// operands. A suffix longer than the address never matches.
func Matches(address, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(address), strings.ToLower(suffix))
}

// SuffixMatcher is the hot-loop form of Matches with the suffix lowered once.
type SuffixMatcher struct {
	suffix string
}

// NewSuffixMatcher creates a case-insensitive suffix matcher.
func NewSuffixMatcher(suffix string) *SuffixMatcher {
	return &SuffixMatcher{suffix: strings.ToLower(suffix)}
}

// Suffix returns the normalized (lowercase) suffix.
func (m *SuffixMatcher) Suffix() string {
	return m.suffix
}

// Matches checks if an address ends with the matcher's suffix.
func (m *SuffixMatcher) Matches(address string) bool {
	if len(address) < len(m.suffix) {
		return false
	}
	// Only the tail needs lowering
	return strings.ToLower(address[len(address)-len(m.suffix):]) == m.suffix
}

// Difficulty estimates the expected number of attempts to find suffix,
// treating each address character as uniform over the variant's alphabet.
// The result saturates at math.MaxUint64.
func Difficulty(suffix string, variant generator.AddressVariant) uint64 {
	expected := 1.0
	for _, c := range suffix {
		if IsBase58Variant(variant) {
			// Case-insensitive: 'a' matches 'a' or 'A', '1' only itself
			lo, up := unicode.ToLower(c), unicode.ToUpper(c)
			hits := 0.0
			if strings.ContainsRune(base58Charset, lo) {
				hits++
			}
			if up != lo && strings.ContainsRune(base58Charset, up) {
				hits++
			}
			if hits == 0 {
				return math.MaxUint64
			}
			expected *= float64(len(base58Charset)) / hits
			continue
		}
		expected *= float64(len(bech32Charset))
	}

	if expected >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(expected)
}
