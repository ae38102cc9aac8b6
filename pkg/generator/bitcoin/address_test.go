package bitcoin

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

// keyOne is the scalar 1, whose public key is the generator point G.
var keyOne = mustHex("0000000000000000000000000000000000000000000000000000000000000001")

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestDeriveAddressKnownVectors(t *testing.T) {
	tests := []struct {
		name    string
		variant generator.AddressVariant
		network generator.Network
		want    string
	}{
		{"p2pkh mainnet", generator.P2PKH, generator.Mainnet, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"},
		{"p2wpkh mainnet", generator.P2WPKH, generator.Mainnet, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
		{"p2tr mainnet", generator.P2TR, generator.Mainnet, "bc1pmfr3p9j00pfxjh0zmgp99y8zftmd3s5pmedqhyptwy6lm87hf5sspknck9"},
		{"p2wpkh testnet", generator.P2WPKH, generator.Testnet, "tb1qw508d6qejxtdg4y5r3zarvary0c5xw7kxpjzsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := DeriveAddress(keyOne, tt.variant, tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr)
		})
	}
}

func TestTaprootBIP86Vector(t *testing.T) {
	// BIP-86 m/86'/0'/0'/0/0 for the "abandon ... about" mnemonic.
	internal, err := schnorr.ParsePubKey(mustHex("cc8a4bc64d897bddc5fbc2f670f7a8ba0b386779106cf1223c6fc5d7cd6fc115"))
	require.NoError(t, err)

	d, err := NewDeriver(generator.P2TR, generator.Mainnet)
	require.NoError(t, err)

	addr, err := d.Address(internal)
	require.NoError(t, err)
	assert.Equal(t, "bc1p5cyxnuxmeuwuvkwfem96lqzszd02n6xdcjrs20cac6yqjjwudpxqkedrcr", addr)
}

func TestDeriveAddressMatchesBtcutil(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, network := range []generator.Network{generator.Mainnet, generator.Testnet} {
		params, err := NetworkParams(network)
		require.NoError(t, err)

		for i := 0; i < 16; i++ {
			raw := make([]byte, PrivateKeySize)
			rng.Read(raw)
			priv, err := ParsePrivateKey(raw)
			require.NoError(t, err)
			pub := priv.PubKey()

			wantPKH, err := btcutil.NewAddressPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
			require.NoError(t, err)
			wantWPKH, err := btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pub.SerializeCompressed()), params)
			require.NoError(t, err)
			wantTR, err := btcutil.NewAddressTaproot(schnorr.SerializePubKey(txscript.ComputeTaprootKeyNoScript(pub)), params)
			require.NoError(t, err)

			want := map[generator.AddressVariant]string{
				generator.P2PKH:  wantPKH.EncodeAddress(),
				generator.P2WPKH: wantWPKH.EncodeAddress(),
				generator.P2TR:   wantTR.EncodeAddress(),
			}
			for variant, expected := range want {
				got, err := DeriveAddress(raw, variant, network)
				require.NoError(t, err)
				assert.Equal(t, expected, got, "%s/%s key %x", variant, network, raw)

				decoded, err := btcutil.DecodeAddress(got, params)
				require.NoError(t, err)
				assert.True(t, decoded.IsForNet(params))
			}
		}
	}
}

func TestDeriveAddressDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	raw := make([]byte, PrivateKeySize)
	rng.Read(raw)

	for _, variant := range []generator.AddressVariant{generator.P2PKH, generator.P2WPKH, generator.P2TR} {
		first, err := DeriveAddress(raw, variant, generator.Testnet)
		require.NoError(t, err)
		second, err := DeriveAddress(raw, variant, generator.Testnet)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.NotEmpty(t, first)
	}
}

func TestAddressPrefixes(t *testing.T) {
	tests := []struct {
		variant generator.AddressVariant
		network generator.Network
		prefix  string
	}{
		{generator.P2PKH, generator.Mainnet, "1"},
		{generator.P2WPKH, generator.Mainnet, "bc1q"},
		{generator.P2TR, generator.Mainnet, "bc1p"},
		{generator.P2WPKH, generator.Testnet, "tb1q"},
		{generator.P2TR, generator.Testnet, "tb1p"},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String()+"/"+tt.network.String(), func(t *testing.T) {
			addr, err := DeriveAddress(keyOne, tt.variant, tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.prefix, addr[:len(tt.prefix)])
		})
	}
}

func TestDeriveAddressErrors(t *testing.T) {
	_, err := DeriveAddress(keyOne, generator.P2WPKH, generator.NetworkUnknown)
	assert.ErrorIs(t, err, ErrInvalidNetwork)

	_, err = DeriveAddress(keyOne, generator.VariantUnknown, generator.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidAddressVariant)

	_, err = DeriveAddress(keyOne[:31], generator.P2WPKH, generator.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = DeriveAddress(make([]byte, PrivateKeySize), generator.P2WPKH, generator.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = DeriveAddress(bytes.Repeat([]byte{0xff}, PrivateKeySize), generator.P2WPKH, generator.Mainnet)
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestPrivateKeyToWIF(t *testing.T) {
	priv, err := ParsePrivateKey(keyOne)
	require.NoError(t, err)

	wif, err := PrivateKeyToWIF(priv, generator.Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn", wif)

	for _, network := range []generator.Network{generator.Mainnet, generator.Testnet} {
		params, err := NetworkParams(network)
		require.NoError(t, err)

		want, err := btcutil.NewWIF(priv, params, true)
		require.NoError(t, err)

		got, err := PrivateKeyToWIF(priv, network)
		require.NoError(t, err)
		assert.Equal(t, want.String(), got)

		decoded, err := btcutil.DecodeWIF(got)
		require.NoError(t, err)
		assert.True(t, decoded.IsForNet(params))
		assert.True(t, decoded.CompressPubKey)
	}

	_, err = PrivateKeyToWIF(priv, generator.NetworkUnknown)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
}

func TestGenerateKeyPairRedrawsOutOfRange(t *testing.T) {
	entropy := io.MultiReader(
		bytes.NewReader(bytes.Repeat([]byte{0xff}, PrivateKeySize)),
		bytes.NewReader(make([]byte, PrivateKeySize)),
		bytes.NewReader(keyOne),
	)

	priv, pub, err := GenerateKeyPair(entropy)
	require.NoError(t, err)
	assert.Equal(t, keyOne, priv.Serialize())
	assert.Equal(t, "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", hex.EncodeToString(pub.SerializeCompressed()))
}

func TestGenerateKeyPairEntropyFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	_, _, err := GenerateKeyPair(&failingReader{err: boom})
	assert.ErrorIs(t, err, boom)

	_, _, err = GenerateKeyPair(bytes.NewReader(make([]byte, PrivateKeySize*maxKeyDraws)))
	assert.ErrorIs(t, err, ErrInvalidPrivateKey)
}

func TestGenerateKeyPairDefaultsToCryptoRand(t *testing.T) {
	priv, pub, err := GenerateKeyPair(nil)
	require.NoError(t, err)
	assert.True(t, pub.IsEqual(priv.PubKey()))
	assert.Len(t, pub.SerializeCompressed(), btcec.PubKeyBytesLenCompressed)
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
