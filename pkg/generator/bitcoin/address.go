package bitcoin

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

// Deriver encodes public keys for one address variant on one network.
// Network and variant are resolved once at construction so the hot loop
// never re-checks them.
type Deriver struct {
	variant generator.AddressVariant
	params  *chaincfg.Params
}

// NewDeriver resolves chain parameters for the variant and network.
func NewDeriver(variant generator.AddressVariant, network generator.Network) (*Deriver, error) {
	params, err := NetworkParams(network)
	if err != nil {
		return nil, err
	}

	switch variant {
	case generator.P2PKH, generator.P2WPKH, generator.P2TR:
	default:
		return nil, ErrInvalidAddressVariant
	}

	return &Deriver{variant: variant, params: params}, nil
}

// Variant returns the address variant this deriver encodes.
func (d *Deriver) Variant() generator.AddressVariant {
	return d.variant
}

// Params returns the chain parameters this deriver encodes for.
func (d *Deriver) Params() *chaincfg.Params {
	return d.params
}

// Address encodes a public key as an address of the deriver's variant.
func (d *Deriver) Address(pubKey *btcec.PublicKey) (string, error) {
	switch d.variant {
	case generator.P2PKH:
		return deriveLegacyAddress(pubKey, d.params), nil
	case generator.P2WPKH:
		return deriveSegWitAddress(pubKey, d.params)
	case generator.P2TR:
		return deriveTaprootAddress(pubKey, d.params)
	default:
		return "", ErrInvalidAddressVariant
	}
}

// DeriveAddress derives the address for a raw 32-byte private key.
func (d *Deriver) DeriveAddress(privKey []byte) (string, error) {
	priv, err := ParsePrivateKey(privKey)
	if err != nil {
		return "", err
	}
	return d.Address(priv.PubKey())
}

// DeriveAddress derives a Bitcoin address from a raw 32-byte private key.
// It is deterministic and has no side effects.
func DeriveAddress(privKey []byte, variant generator.AddressVariant, network generator.Network) (string, error) {
	d, err := NewDeriver(variant, network)
	if err != nil {
		return "", err
	}
	return d.DeriveAddress(privKey)
}

// deriveLegacyAddress creates a P2PKH address using Base58Check encoding.
// Legacy address = Base58Check(version + HASH160(compressed_pubkey))
func deriveLegacyAddress(pubKey *btcec.PublicKey, params *chaincfg.Params) string {
	pubKeyHash := hash160(pubKey.SerializeCompressed())

	data := make([]byte, 1+len(pubKeyHash))
	data[0] = params.PubKeyHashAddrID
	copy(data[1:], pubKeyHash)

	return Base58CheckEncode(data)
}

// deriveSegWitAddress creates a P2WPKH address using Bech32 encoding.
// SegWit v0 address = Bech32(HRP, 0 || convertbits(HASH160(compressed_pubkey)))
func deriveSegWitAddress(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	program := hash160(pubKey.SerializeCompressed())
	return encodeSegWit(params.Bech32HRPSegwit, 0x00, program)
}

// deriveTaprootAddress creates a P2TR address using Bech32m encoding.
// The x-only key is the BIP-341 internal key with no script tree; the output
// key is internal + TaggedHash("TapTweak", internal_x)*G.
func deriveTaprootAddress(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
	return encodeSegWit(params.Bech32HRPSegwit, 0x01, schnorr.SerializePubKey(outputKey))
}

// encodeSegWit encodes a witness program. Version 0 uses Bech32, version 1+
// uses Bech32m.
func encodeSegWit(hrp string, version byte, program []byte) (string, error) {
	data, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert witness program: %w", err)
	}

	data = append([]byte{version}, data...)

	var addr string
	if version == 0 {
		addr, err = bech32.Encode(hrp, data)
	} else {
		addr, err = bech32.EncodeM(hrp, data)
	}
	if err != nil {
		return "", fmt.Errorf("encode segwit v%d: %w", version, err)
	}
	return addr, nil
}

// hash160 computes RIPEMD160(SHA256(data))
func hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	return ripemd.Sum(nil)
}

// Base58CheckEncode encodes data with a 4-byte double-SHA256 checksum in Base58.
func Base58CheckEncode(data []byte) string {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])

	full := make([]byte, len(data)+4)
	copy(full, data)
	copy(full[len(data):], second[:4])

	return base58.Encode(full)
}
