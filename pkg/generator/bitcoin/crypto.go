package bitcoin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Amr-9/btcvanity/pkg/generator"
)

const (
	// PrivateKeySize is the length of a raw secp256k1 private scalar.
	PrivateKeySize = 32

	// maxKeyDraws bounds the redraw loop for out-of-range scalars. The chance
	// of a single draw landing outside [1, n-1] is below 2^-127.
	maxKeyDraws = 8
)

// ErrInvalidPrivateKey is returned for a key of the wrong length or a
// scalar outside [1, n-1].
var ErrInvalidPrivateKey = errors.New("invalid private key")

// ParsePrivateKey validates a raw 32-byte scalar and returns the private key.
func ParsePrivateKey(b []byte) (*btcec.PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPrivateKey, len(b))
	}

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: scalar exceeds curve order", ErrInvalidPrivateKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero scalar", ErrInvalidPrivateKey)
	}

	return btcec.PrivKeyFromScalar(&scalar), nil
}

// GenerateKeyPair draws a random secp256k1 key pair from entropy, redrawing
// the rare out-of-range scalar. A nil reader uses crypto/rand.
func GenerateKeyPair(entropy io.Reader) (*btcec.PrivateKey, *btcec.PublicKey, error) {
	if entropy == nil {
		entropy = rand.Reader
	}

	var privKeyBytes [PrivateKeySize]byte
	for i := 0; i < maxKeyDraws; i++ {
		if _, err := io.ReadFull(entropy, privKeyBytes[:]); err != nil {
			return nil, nil, fmt.Errorf("read entropy: %w", err)
		}

		privKey, err := ParsePrivateKey(privKeyBytes[:])
		if err != nil {
			continue
		}
		return privKey, privKey.PubKey(), nil
	}

	return nil, nil, fmt.Errorf("%w: %d consecutive out-of-range draws", ErrInvalidPrivateKey, maxKeyDraws)
}

// PrivateKeyToWIF converts a private key to Wallet Import Format (WIF).
// Uses the compressed form (K/L on mainnet, c on testnet).
func PrivateKeyToWIF(privKey *btcec.PrivateKey, network generator.Network) (string, error) {
	params, err := NetworkParams(network)
	if err != nil {
		return "", err
	}

	// WIF = Base58Check(version + privKey + 0x01)
	data := make([]byte, 34)
	data[0] = params.PrivateKeyID
	copy(data[1:33], privKey.Serialize())
	data[33] = 0x01 // Compressed flag

	return Base58CheckEncode(data), nil
}
