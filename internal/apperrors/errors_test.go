package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "configuration without cause",
			err:      Configuration("BAD_PATH", "template file not found", nil),
			expected: "configuration: template file not found",
		},
		{
			name:     "configuration with cause",
			err:      Configuration("BAD_PATH", "template file not found", errors.New("open x: no such file")),
			expected: "configuration: template file not found: open x: no such file",
		},
		{
			name:     "argument",
			err:      Argument("MATRIX_SIZE", "feature matrix length mismatch"),
			expected: "argument: feature matrix length mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestMissingDomain(t *testing.T) {
	err := MissingDomain("Acme Capital")
	assert.Equal(t, KindMissingDomain, err.Kind)
	assert.Equal(t, "MISSING_DOMAIN", err.Code)
	assert.Contains(t, err.Message, "Acme Capital")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Configuration("BAD_PATH", "bad", cause)
	assert.ErrorIs(t, err, cause)
}

func TestError_Is(t *testing.T) {
	a := Argument("MATRIX_SIZE", "one message")
	b := Argument("MATRIX_SIZE", "a different message")
	c := Argument("OTHER_CODE", "one message")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}
