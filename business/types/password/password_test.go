package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse("Secret123!")
	require.NoError(t, err)
	assert.Equal(t, "Secret123!", p.Value())

	_, err = Parse("short")
	assert.Error(t, err)

	_, err = Parse(strings.Repeat("x", 73))
	assert.Error(t, err)
}

func TestStringMasks(t *testing.T) {
	p := MustParse("Secret123!")

	assert.Equal(t, "**********", p.String())

	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.NotContains(t, string(text), "Secret")
}
