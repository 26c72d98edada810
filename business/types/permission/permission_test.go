package permission

import (
	"testing"

	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"invites.view", false},
		{"workspace_users.change", false},
		{"custom_area.publish", false},
		{"invites", true},
		{".view", true},
		{"invites.", true},
		{"", true},
	}

	for _, tt := range tests {
		code, err := ParseCode(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.value, code.String())
	}
}

func TestNewCode(t *testing.T) {
	code := NewCode(resource.Invites, actions.View)
	assert.Equal(t, "invites.view", code.String())
}

func TestScopeCovers(t *testing.T) {
	assert.True(t, All.Covers(All))
	assert.True(t, All.Covers(Own))
	assert.True(t, Own.Covers(Own))
	assert.False(t, Own.Covers(All))
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("all")
	require.NoError(t, err)
	assert.True(t, scope.Equal(All))

	_, err = ParseScope("galaxy")
	assert.Error(t, err)
}

func TestRegistryCore(t *testing.T) {
	reg := NewRegistry(Core)

	defs := reg.Definitions()
	assert.Len(t, defs, 10, "five resources with view and change each")

	assert.True(t, reg.Known(NewCode(resource.Roles, actions.Change)))
	assert.False(t, reg.Known(MustParseCode("campaigns.publish")))
}

func TestRegistryScopes(t *testing.T) {
	reg := NewRegistry(Core)
	code := NewCode(resource.Invites, actions.View)

	scopes, exists := reg.Scopes(code)
	require.True(t, exists)
	assert.Len(t, scopes, 2)

	_, exists = reg.Scopes(MustParseCode("campaigns.publish"))
	assert.False(t, exists)

	assert.True(t, reg.Allows(code, Own))
	assert.True(t, reg.Allows(code, All))
	assert.False(t, reg.Allows(MustParseCode("campaigns.publish"), All))
}

func TestRegistryMerge(t *testing.T) {
	extra := sourceFunc(func() []Definition {
		return []Definition{
			{Code: MustParseCode("campaigns.publish"), Description: "publish campaigns", Scopes: []Scope{All}},
		}
	})

	reg := NewRegistry(Core, extra)
	assert.Len(t, reg.Definitions(), 11)
	assert.True(t, reg.Known(MustParseCode("campaigns.publish")))

	def, exists := reg.Lookup(MustParseCode("campaigns.publish"))
	require.True(t, exists)
	assert.Equal(t, "publish campaigns", def.Description)
}

type sourceFunc func() []Definition

func (f sourceFunc) Definitions() []Definition { return f() }
