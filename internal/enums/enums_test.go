package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var states = Set{
	{Code: "A", Label: "APPROVED"},
	{Code: "C", Label: "CANCELED"},
	{Code: "N", Label: "CREATED"},
}

func TestLabel(t *testing.T) {
	label, err := states.Label("C")
	require.NoError(t, err)
	assert.Equal(t, "CANCELED", label)

	_, err = states.Label("X")
	assert.Error(t, err)
}

func TestCode(t *testing.T) {
	code, err := states.Code("CREATED")
	require.NoError(t, err)
	assert.Equal(t, "N", code)

	_, err = states.Code("UNKNOWN")
	assert.Error(t, err)
}

func TestCodes(t *testing.T) {
	assert.Equal(t, []string{"A", "C", "N"}, states.Codes())
}

func TestValid(t *testing.T) {
	assert.True(t, states.Valid("A"))
	assert.False(t, states.Valid("a"))
	assert.False(t, states.Valid(""))
}
