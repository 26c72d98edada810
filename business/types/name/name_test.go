package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"Acme Marketing", false},
		{"Bob", false},
		{"O'Neil-Smith 2", false},
		{"ab", true},
		{"", true},
		{"way@too!strange", true},
	}

	for _, tt := range tests {
		n, err := Parse(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.value, n.String())
	}
}

func TestParseNull(t *testing.T) {
	n, err := ParseNull("")
	require.NoError(t, err)
	assert.False(t, n.Valid())

	n, err = ParseNull("Acme")
	require.NoError(t, err)
	assert.True(t, n.Valid())
	assert.Equal(t, "Acme", n.String())

	_, err = ParseNull("x")
	assert.Error(t, err)
}
