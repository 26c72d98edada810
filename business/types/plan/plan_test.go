package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, value := range []string{"free", "pro", "business"} {
		p, err := Parse(value)
		require.NoError(t, err)
		assert.Equal(t, value, p.String())
	}

	_, err := Parse("enterprise")
	assert.Error(t, err)
}

func TestLimitsFor(t *testing.T) {
	assert.Equal(t, 3, LimitsFor(Free).Users)
	assert.Equal(t, 10, LimitsFor(Pro).Users)
	assert.Equal(t, 50, LimitsFor(Business).Users)

	assert.Greater(t, LimitsFor(Business).Campaigns, LimitsFor(Pro).Campaigns)
	assert.Greater(t, LimitsFor(Pro).Planning, LimitsFor(Free).Planning)
}

func TestIsZero(t *testing.T) {
	assert.True(t, Plan{}.IsZero())
	assert.False(t, Free.IsZero())
}
