package bitcoin

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		address string
		suffix  string
		want    bool
	}{
		{"uppercase address", "bc1qEXAMPLE", "example", true},
		{"uppercase suffix", "bc1qexample", "EXAMPLE", true},
		{"mixed case", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH", "samh", true},
		{"suffix longer than tail", "bc1qexampl", "example", false},
		{"suffix longer than address", "q", "qq", false},
		{"mismatch", "bc1qexample", "examplf", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.address, tt.suffix))
			assert.Equal(t, tt.want, NewSuffixMatcher(tt.suffix).Matches(tt.address))
		})
	}
}

func TestSuffixMatcherNormalizes(t *testing.T) {
	m := NewSuffixMatcher("SAMH")
	assert.Equal(t, "samh", m.Suffix())
}

func TestValidateSuffix(t *testing.T) {
	tests := []struct {
		name    string
		suffix  string
		variant generator.AddressVariant
		wantErr error
	}{
		{"bech32 ok", "qpzry9", generator.P2WPKH, nil},
		{"bech32 uppercase ok", "QPZRY9", generator.P2TR, nil},
		{"bech32 rejects b", "abc", generator.P2TR, ErrInvalidSuffix},
		{"bech32 rejects 1", "x1", generator.P2WPKH, ErrInvalidSuffix},
		{"bech32 rejects o", "o", generator.P2WPKH, ErrInvalidSuffix},
		{"base58 ok", "SAMH", generator.P2PKH, nil},
		{"base58 lowercase l folds to L", "l", generator.P2PKH, nil},
		{"base58 rejects zero", "a0", generator.P2PKH, ErrInvalidSuffix},
		{"base58 rejects symbol", "a-b", generator.P2PKH, ErrInvalidSuffix},
		{"empty", "", generator.P2TR, ErrEmptySuffix},
		{"unknown variant", "abc", generator.VariantUnknown, ErrInvalidAddressVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuffix(tt.suffix, tt.variant)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInvalidChars(t *testing.T) {
	assert.Equal(t, []rune{'b', 'o'}, InvalidChars("bobo", generator.P2TR))
	assert.Equal(t, []rune{'0'}, InvalidChars("a0a0", generator.P2PKH))
	assert.Empty(t, InvalidChars("qpzr", generator.P2WPKH))
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		suffix  string
		variant generator.AddressVariant
		want    uint64
	}{
		{"empty", "", generator.P2TR, 1},
		{"bech32 one char", "q", generator.P2WPKH, 32},
		{"bech32 case ignored", "QQ", generator.P2TR, 1024},
		{"base58 digit", "1", generator.P2PKH, 58},
		{"base58 letter in both cases", "a", generator.P2PKH, 29},
		{"base58 letter in one case", "l", generator.P2PKH, 58},
		{"base58 impossible", "0", generator.P2PKH, math.MaxUint64},
		{"saturates", strings.Repeat("q", 20), generator.P2TR, math.MaxUint64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Difficulty(tt.suffix, tt.variant))
		})
	}
}
