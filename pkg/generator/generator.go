// Package generator defines the shared model for Bitcoin vanity address search:
// address variants, networks, search configuration and results.
// The codec lives in the bitcoin subpackage and the search loop in cpu.
package generator

import (
	"fmt"
	"strings"
	"time"
)

// Network represents the Bitcoin network an address is encoded for.
type Network int

const (
	NetworkUnknown Network = iota
	Mainnet                // Bitcoin mainnet (bc1..., 1...)
	Testnet                // Bitcoin testnet3 (tb1..., m/n...)
)

// String returns the wire name of the network.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "bitcoin"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// ParseNetwork maps a wire name ("bitcoin", "testnet") to a Network.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bitcoin", "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	default:
		return NetworkUnknown, fmt.Errorf("unsupported network %q", s)
	}
}

// AddressVariant represents the Bitcoin address format.
type AddressVariant int

const (
	VariantUnknown AddressVariant = iota
	P2PKH                         // Legacy (1...), Base58Check
	P2WPKH                        // Native SegWit v0 (bc1q...), Bech32
	P2TR                          // Taproot SegWit v1 (bc1p...), Bech32m
)

// String returns the wire name of the address variant.
func (a AddressVariant) String() string {
	switch a {
	case P2PKH:
		return "p2pkh"
	case P2WPKH:
		return "p2wpkh"
	case P2TR:
		return "p2tr"
	default:
		return "unknown"
	}
}

// Description returns a human-readable label for the variant.
func (a AddressVariant) Description() string {
	switch a {
	case P2PKH:
		return "Legacy (P2PKH)"
	case P2WPKH:
		return "Native SegWit (P2WPKH)"
	case P2TR:
		return "Taproot (P2TR)"
	default:
		return "Unknown"
	}
}

// ParseAddressVariant maps a wire name ("p2pkh", "p2wpkh", "p2tr") to a variant.
func ParseAddressVariant(s string) (AddressVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p2pkh":
		return P2PKH, nil
	case "p2wpkh":
		return P2WPKH, nil
	case "p2tr":
		return P2TR, nil
	default:
		return VariantUnknown, fmt.Errorf("unsupported address type %q", s)
	}
}

// SearchConfig holds the configuration for one vanity search.
// It is immutable once a job starts.
type SearchConfig struct {
	Suffix  string
	Variant AddressVariant
	Network Network
}

// Result contains a found vanity address and its key material.
type Result struct {
	Address       string        // Encoded address
	PrivateKeyWIF string        // Compressed WIF for the configured network
	PrivateKeyHex string        // 32-byte scalar, hex
	PublicKeyHex  string        // 33-byte compressed public key, hex
	Duration      time.Duration // Loop start to match, monotonic
	Attempts      uint64        // Attempts up to and including the match
}

// Rate derives the floored attempts-per-second figure. It returns 0 when no
// attempts were made, the start time is unset, or no time has elapsed.
func Rate(attempts uint64, startedAt, now time.Time) uint64 {
	if attempts == 0 || startedAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(attempts) / elapsed)
}
