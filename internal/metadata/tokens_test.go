package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emailguess/internal/namedecomp"
)

func TestParseToken_Separator(t *testing.T) {
	for _, sep := range []string{".", "_", "-"} {
		tok, err := ParseToken(sep)
		require.NoError(t, err)
		assert.True(t, tok.IsSeparator())
		assert.Equal(t, sep, tok.Separator)
	}
}

func TestParseToken_Initial(t *testing.T) {
	tests := []struct {
		in    string
		group namedecomp.Group
		index int
	}{
		{"f_0", namedecomp.First, 0},
		{"m_1", namedecomp.Middle, 1},
		{"l_2", namedecomp.Last, 2},
	}
	for _, tt := range tests {
		tok, err := ParseToken(tt.in)
		require.NoError(t, err)
		assert.True(t, tok.UseInitial)
		assert.Equal(t, tt.group, tok.Group)
		assert.Equal(t, tt.index, tok.Index)
		assert.False(t, tok.IsSeparator())
	}
}

func TestParseToken_FullComponent(t *testing.T) {
	tok, err := ParseToken("first_original_nfkd_0")
	require.NoError(t, err)
	assert.Equal(t, namedecomp.First, tok.Group)
	assert.Equal(t, 0, tok.Index)
	assert.True(t, tok.UseOriginal)
	assert.True(t, tok.UseNFKD)
	assert.False(t, tok.UseTranslit)

	tok2, err := ParseToken("last_surp_1")
	require.NoError(t, err)
	assert.Equal(t, namedecomp.Last, tok2.Group)
	assert.Equal(t, 1, tok2.Index)
	assert.True(t, tok2.UseSurnameParticle)
}

func TestParseToken_Errors(t *testing.T) {
	tests := []string{
		"unknown_0",
		"first_badflag_0",
		"first_original_notanumber",
		"first",
	}
	for _, in := range tests {
		_, err := ParseToken(in)
		assert.Error(t, err, in)
	}
}

func TestParseTokenSequence(t *testing.T) {
	seq := []string{"first_0", ".", "last_0"}
	tokens, err := ParseTokenSequence(seq)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.False(t, tokens[0].IsSeparator())
	assert.True(t, tokens[1].IsSeparator())
	assert.False(t, tokens[2].IsSeparator())
}
