package rolebus

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorer keeps the created roles in memory.
type mockStorer struct {
	roles map[uuid.UUID]Role
}

func newMockStorer() *mockStorer {
	return &mockStorer{roles: make(map[uuid.UUID]Role)}
}

func (m *mockStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return m, nil }

func (m *mockStorer) Create(ctx context.Context, rl Role) error {
	for _, existing := range m.roles {
		if existing.WorkspaceID == rl.WorkspaceID && existing.Name.Equal(rl.Name) {
			return ErrUniqueName
		}
	}
	m.roles[rl.ID] = rl
	return nil
}

func (m *mockStorer) Update(ctx context.Context, rl Role) error {
	m.roles[rl.ID] = rl
	return nil
}

func (m *mockStorer) Delete(ctx context.Context, rl Role) error {
	delete(m.roles, rl.ID)
	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, roleID uuid.UUID) (Role, error) {
	rl, exists := m.roles[roleID]
	if !exists {
		return Role{}, ErrNotFound
	}
	return rl, nil
}

func (m *mockStorer) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Role, error) {
	var out []Role
	for _, rl := range m.roles {
		if rl.WorkspaceID == workspaceID {
			out = append(out, rl)
		}
	}
	return out, nil
}

func newTestCore() (*Core, *mockStorer) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	storer := newMockStorer()
	return NewCore(log, storer), storer
}

func TestSeed(t *testing.T) {
	core, _ := newTestCore()
	reg := permission.NewRegistry(permission.Core)
	wsID := uuid.New()

	roles, err := core.Seed(context.Background(), reg, wsID)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	for _, roleName := range []string{RoleOwner, RoleEditor, RoleMember} {
		rl, exists := roles[roleName]
		require.True(t, exists, "role %q must be seeded", roleName)
		assert.True(t, rl.System)
		assert.Equal(t, wsID, rl.WorkspaceID)
	}

	assert.Len(t, roles[RoleOwner].Permissions, 10)
	assert.Len(t, roles[RoleEditor].Permissions, 4)
	assert.Len(t, roles[RoleMember].Permissions, 2)
}

func TestSeedTwiceFails(t *testing.T) {
	core, storer := newTestCore()
	reg := permission.NewRegistry(permission.Core)
	wsID := uuid.New()

	_, err := core.Seed(context.Background(), reg, wsID)
	require.NoError(t, err)

	_, err = core.Seed(context.Background(), reg, wsID)
	assert.ErrorIs(t, err, ErrUniqueName, "provisioning runs once, a rerun trips the name constraint")
	assert.Len(t, storer.roles, 3)

	// A different workspace seeds cleanly.
	_, err = core.Seed(context.Background(), reg, uuid.New())
	assert.NoError(t, err)
}

func TestSeedFiltersUnknownCodes(t *testing.T) {
	core, _ := newTestCore()

	// An empty registry recognises nothing, so the seeded roles carry no
	// grants at all.
	reg := permission.NewRegistry()

	roles, err := core.Seed(context.Background(), reg, uuid.New())
	require.NoError(t, err)
	require.Len(t, roles, 3)

	for roleName, rl := range roles {
		assert.Empty(t, rl.Permissions, "role %q must drop unrecognised codes", roleName)
	}
}

func TestSystemRoleReadOnly(t *testing.T) {
	core, _ := newTestCore()

	rl := Role{ID: uuid.New(), System: true}

	_, err := core.Update(context.Background(), rl, UpdateRole{})
	assert.ErrorIs(t, err, ErrSystemRole)

	err = core.Delete(context.Background(), rl)
	assert.ErrorIs(t, err, ErrSystemRole)
}

func TestCreateDedupesGrants(t *testing.T) {
	core, _ := newTestCore()

	code := permission.MustParseCode("invites.view")

	rl, err := core.Create(context.Background(), NewRole{
		WorkspaceID: uuid.New(),
		Name:        name.MustParse("Reviewer"),
		Permissions: []Permission{
			{Code: code, Scope: permission.Own},
			{Code: code, Scope: permission.All},
		},
	})
	require.NoError(t, err)

	require.Len(t, rl.Permissions, 1)
	assert.True(t, rl.Permissions[0].Scope.Equal(permission.All), "the later grant wins the merge")
}
