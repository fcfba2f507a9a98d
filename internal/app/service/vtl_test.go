package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVTLURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Tenz#0505", "https://vtl.lol/id/Tenz_0505"},
		{"  Some Name#EUW ", "https://vtl.lol/id/Some%20Name_EUW"},
		{"9B4F3A2E-1C7D-4E8F-A0B1-C2D3E4F5A6B7", "https://vtl.lol/id/9b4f3a2e-1c7d-4e8f-a0b1-c2d3e4f5a6b7"},
	}
	for _, tt := range tests {
		got, err := VTLURL(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestVTLURLInvalid(t *testing.T) {
	for _, in := range []string{"", "justaname", "#tag", "name#", "not-a-uuid-but-thirty-six-chars-long"} {
		_, err := VTLURL(in)
		assert.ErrorIs(t, err, ErrInvalidAccount, in)
	}
}
