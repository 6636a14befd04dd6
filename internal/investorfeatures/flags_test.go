package investorfeatures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected Flags
	}{
		{
			name: "plain ascii name",
			in:   "John Smith",
			expected: Flags{
				HasGermanChar:     false,
				HasNFKDNormalized: false,
				HasNickname:       true,
			},
		},
		{
			name: "german umlaut",
			in:   "Jürgen Müller",
			expected: Flags{
				HasGermanChar:     true,
				HasNFKDNormalized: true,
				HasNickname:       false,
			},
		},
		{
			name: "nickname first token",
			in:   "William Gates",
			expected: Flags{
				HasGermanChar:     false,
				HasNFKDNormalized: false,
				HasNickname:       true,
			},
		},
		{
			name: "accented non-german",
			in:   "José Rodríguez",
			expected: Flags{
				HasGermanChar:     false,
				HasNFKDNormalized: true,
				HasNickname:       false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.in)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNicknameMappingsSize(t *testing.T) {
	assert.Len(t, NicknameMappings, 63)
}
