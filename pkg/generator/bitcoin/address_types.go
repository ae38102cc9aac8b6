// Package bitcoin provides Bitcoin vanity address derivation and matching.
// Supports P2PKH (Legacy), P2WPKH (Native SegWit) and P2TR (Taproot) on
// mainnet and testnet.
package bitcoin

import (
	"errors"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

var (
	// ErrInvalidNetwork is returned for a network with no chain parameters.
	ErrInvalidNetwork = errors.New("invalid network")
	// ErrInvalidAddressVariant is returned for an unknown address variant.
	ErrInvalidAddressVariant = errors.New("invalid address variant")
)

// NetworkParams returns the chain parameters for a network.
func NetworkParams(network generator.Network) (*chaincfg.Params, error) {
	switch network {
	case generator.Mainnet:
		return &chaincfg.MainNetParams, nil
	case generator.Testnet:
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, ErrInvalidNetwork
	}
}

// AddressPrefix returns the fixed leading characters for a variant on a network.
func AddressPrefix(variant generator.AddressVariant, network generator.Network) string {
	hrp := "bc"
	if network == generator.Testnet {
		hrp = "tb"
	}

	switch variant {
	case generator.P2TR:
		return hrp + "1p"
	case generator.P2WPKH:
		return hrp + "1q"
	case generator.P2PKH:
		if network == generator.Testnet {
			return "m/n"
		}
		return "1"
	default:
		return ""
	}
}

// IsBech32Variant returns true if the variant uses Bech32/Bech32m encoding.
func IsBech32Variant(variant generator.AddressVariant) bool {
	return variant == generator.P2WPKH || variant == generator.P2TR
}

// IsBase58Variant returns true if the variant uses Base58Check encoding.
func IsBase58Variant(variant generator.AddressVariant) bool {
	return variant == generator.P2PKH
}
