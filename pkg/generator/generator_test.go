package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	tests := []struct {
		in      string
		want    Network
		wantErr bool
	}{
		{"bitcoin", Mainnet, false},
		{"mainnet", Mainnet, false},
		{" Testnet ", Testnet, false},
		{"regtest", NetworkUnknown, true},
		{"", NetworkUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNetwork(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAddressVariantRoundTrip(t *testing.T) {
	for _, v := range []AddressVariant{P2PKH, P2WPKH, P2TR} {
		got, err := ParseAddressVariant(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseAddressVariant("p2sh")
	assert.Error(t, err)
	assert.Equal(t, "unknown", VariantUnknown.String())
}

func TestNetworkWireNames(t *testing.T) {
	assert.Equal(t, "bitcoin", Mainnet.String())
	assert.Equal(t, "testnet", Testnet.String())
	assert.Equal(t, "unknown", NetworkUnknown.String())
}

func TestRate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, uint64(10), Rate(100, start, start.Add(10*time.Second)))
	// Floored
	assert.Equal(t, uint64(33), Rate(100, start, start.Add(3*time.Second)))
	assert.Zero(t, Rate(0, start, start.Add(time.Second)))
	assert.Zero(t, Rate(100, time.Time{}, start))
	assert.Zero(t, Rate(100, start, start))
	assert.Zero(t, Rate(100, start, start.Add(-time.Second)))
}
