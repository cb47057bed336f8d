package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"lowercase", "0x" + strings.Repeat("a", 40), false},
		{"mixed case", "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", false},
		{"digits", "0x" + strings.Repeat("0", 40), false},
		{"empty", "", true},
		{"no prefix", strings.Repeat("a", 40), true},
		{"uppercase prefix", "0X" + strings.Repeat("a", 40), true},
		{"too short", "0x" + strings.Repeat("a", 39), true},
		{"too long", "0x" + strings.Repeat("a", 41), true},
		{"non hex", "0x" + strings.Repeat("g", 40), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := NewAddress(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, addr.String())
		})
	}
}

func TestAddress_Checksum(t *testing.T) {
	addr, err := NewAddress("0x7fc66500c84a76ad7e9c93437bfc5ac33e2ddae9")
	require.NoError(t, err)
	assert.Equal(t, "0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", addr.Checksum())
}

func TestNewIconName(t *testing.T) {
	for _, ok := range []string{"logo.png", "a.png", "img/logo.png"} {
		_, err := NewIconName(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", ".png", "logo.svg", "logo.PNG", "logo.png.bak"} {
		_, err := NewIconName(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewLinkURL(t *testing.T) {
	for _, ok := range []string{"https://aave.com", "http://localhost:8080/pool?x=1"} {
		u, err := NewLinkURL(ok)
		require.NoError(t, err, ok)
		assert.Equal(t, ok, u.String())
	}
	for _, bad := range []string{"", "  ", "/pool", "ftp://aave.com", "wss://aave.com", "https://", "aave.com"} {
		_, err := NewLinkURL(bad)
		assert.Error(t, err, bad)
	}
}
