package namedecomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected DecomposedName
	}{
		{
			name: "simple two token name",
			in:   "John Smith",
			expected: DecomposedName{
				FirstNames: []string{"john"},
				LastNames:  []string{"smith"},
			},
		},
		{
			name: "honorifics and suffix stripped",
			in:   "Mr. Dr. John Smith Jr",
			expected: DecomposedName{
				FirstNames: []string{"john"},
				LastNames:  []string{"smith"},
			},
		},
		{
			name: "middle name",
			in:   "Alice Beth Carter",
			expected: DecomposedName{
				FirstNames:  []string{"alice"},
				MiddleNames: []string{"beth"},
				LastNames:   []string{"carter"},
			},
		},
		{
			name: "surname particle",
			in:   "José de la Cruz",
			expected: DecomposedName{
				FirstNames: []string{"jose"},
				LastNames:  []string{"de", "la", "cruz"},
			},
		},
		{
			name: "von particle",
			in:   "Otto von Bismarck",
			expected: DecomposedName{
				FirstNames: []string{"otto"},
				LastNames:  []string{"von", "bismarck"},
			},
		},
		{
			name: "hyphenated first name",
			in:   "Mary-Jane Watson",
			expected: DecomposedName{
				FirstNames: []string{"mary", "jane"},
				LastNames:  []string{"watson"},
			},
		},
		{
			name:     "empty input",
			in:       "",
			expected: DecomposedName{},
		},
		{
			name:     "only honorifics",
			in:       "Mr. Dr.",
			expected: DecomposedName{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.in)
			assert.Equal(t, tt.expected.FirstNames, got.FirstNames)
			assert.Equal(t, tt.expected.MiddleNames, got.MiddleNames)
			assert.Equal(t, tt.expected.LastNames, got.LastNames)
		})
	}
}

func TestDecomposedName_Predicates(t *testing.T) {
	d := Decompose("Alice Beth Carol Carter")
	assert.True(t, d.HasMultipleMiddles())
	assert.True(t, d.HasMiddle())
	assert.False(t, d.HasMultipleFirsts())
	assert.False(t, d.HasMultipleLasts())
}

func TestDecomposedName_Names(t *testing.T) {
	d := Decompose("John Smith")
	assert.Equal(t, []string{"john"}, d.Names(First))
	assert.Nil(t, d.Names(Middle))
	assert.Equal(t, []string{"smith"}, d.Names(Last))
}

func TestDecomposeIdempotentOnNoParticle(t *testing.T) {
	// Decomposing the space-joined result of a decomposition with no
	// particle tokens reproduces the same first/middle/last partition.
	d1 := Decompose("Alice Beth Carter")
	joined := d1.FirstNames[0] + " " + d1.MiddleNames[0] + " " + d1.LastNames[0]
	d2 := Decompose(joined)
	assert.Equal(t, d1, d2)
}
