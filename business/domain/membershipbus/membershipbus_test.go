package membershipbus

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorer struct {
	memberships map[uuid.UUID]Membership
	overrides   map[uuid.UUID]map[string]Override
}

func newMockStorer() *mockStorer {
	return &mockStorer{
		memberships: make(map[uuid.UUID]Membership),
		overrides:   make(map[uuid.UUID]map[string]Override),
	}
}

func (m *mockStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return m, nil }

func (m *mockStorer) Create(ctx context.Context, mem Membership) error {
	for _, existing := range m.memberships {
		if existing.WorkspaceID == mem.WorkspaceID && existing.UserID == mem.UserID {
			return ErrUniqueMember
		}
	}
	m.memberships[mem.ID] = mem
	return nil
}

func (m *mockStorer) Update(ctx context.Context, mem Membership) error {
	m.memberships[mem.ID] = mem
	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, membershipID uuid.UUID) (Membership, error) {
	mem, exists := m.memberships[membershipID]
	if !exists {
		return Membership{}, ErrNotFound
	}
	return mem, nil
}

func (m *mockStorer) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Membership, error) {
	var out []Membership
	for _, mem := range m.memberships {
		if mem.WorkspaceID == workspaceID {
			out = append(out, mem)
		}
	}
	return out, nil
}

func (m *mockStorer) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (Membership, error) {
	for _, mem := range m.memberships {
		if mem.UserID == userID && mem.WorkspaceID == workspaceID {
			return mem, nil
		}
	}
	return Membership{}, ErrNotFound
}

func (m *mockStorer) CountActiveByWorkspace(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	count := 0
	for _, mem := range m.memberships {
		if mem.WorkspaceID == workspaceID && mem.Active {
			count++
		}
	}
	return count, nil
}

func (m *mockStorer) UpsertOverride(ctx context.Context, membershipID uuid.UUID, ovr Override) error {
	if m.overrides[membershipID] == nil {
		m.overrides[membershipID] = make(map[string]Override)
	}
	m.overrides[membershipID][ovr.Code.String()] = ovr
	return nil
}

func (m *mockStorer) DeleteOverride(ctx context.Context, membershipID uuid.UUID, code permission.Code) error {
	delete(m.overrides[membershipID], code.String())
	return nil
}

func newTestCore() (*Core, *mockStorer) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	storer := newMockStorer()
	return NewCore(log, storer), storer
}

func TestCreateDuplicateMember(t *testing.T) {
	core, _ := newTestCore()
	wsID := uuid.New()
	userID := uuid.New()

	_, err := core.Create(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID})
	require.NoError(t, err)

	_, err = core.Create(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID})
	assert.ErrorIs(t, err, ErrUniqueMember)
}

func TestEnrollNewMember(t *testing.T) {
	core, _ := newTestCore()

	roleID := uuid.New()
	mem, err := core.Enroll(context.Background(), NewMembership{
		WorkspaceID: uuid.New(),
		UserID:      uuid.New(),
		RoleID:      &roleID,
	})
	require.NoError(t, err)

	assert.True(t, mem.Active)
	require.NotNil(t, mem.RoleID)
	assert.Equal(t, roleID, *mem.RoleID)
}

func TestEnrollActiveMemberUnchanged(t *testing.T) {
	core, _ := newTestCore()
	wsID := uuid.New()
	userID := uuid.New()

	oldRole := uuid.New()
	created, err := core.Create(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID, RoleID: &oldRole})
	require.NoError(t, err)

	newRole := uuid.New()
	mem, err := core.Enroll(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID, RoleID: &newRole})
	require.NoError(t, err)

	assert.Equal(t, created.ID, mem.ID)
	require.NotNil(t, mem.RoleID)
	assert.Equal(t, oldRole, *mem.RoleID, "an active membership must not change on enroll")
}

func TestEnrollReactivates(t *testing.T) {
	core, _ := newTestCore()
	wsID := uuid.New()
	userID := uuid.New()

	created, err := core.Create(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID})
	require.NoError(t, err)

	inactive := false
	_, err = core.Update(context.Background(), created, UpdateMembership{Active: &inactive})
	require.NoError(t, err)

	roleID := uuid.New()
	mem, err := core.Enroll(context.Background(), NewMembership{WorkspaceID: wsID, UserID: userID, RoleID: &roleID})
	require.NoError(t, err)

	assert.Equal(t, created.ID, mem.ID, "the deactivated membership is reused, not duplicated")
	assert.True(t, mem.Active)
	require.NotNil(t, mem.RoleID)
	assert.Equal(t, roleID, *mem.RoleID)
}

func TestDeactivatePreservesRow(t *testing.T) {
	core, storer := newTestCore()

	mem, err := core.Create(context.Background(), NewMembership{WorkspaceID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	inactive := false
	got, err := core.Update(context.Background(), mem, UpdateMembership{Active: &inactive})
	require.NoError(t, err)

	assert.False(t, got.Active)
	assert.Len(t, storer.memberships, 1)
}

func TestOverrides(t *testing.T) {
	core, storer := newTestCore()

	mem, err := core.Create(context.Background(), NewMembership{WorkspaceID: uuid.New(), UserID: uuid.New()})
	require.NoError(t, err)

	code := permission.MustParseCode("invites.change")

	err = core.SetOverride(context.Background(), mem, Override{Code: code, Scope: permission.All, Allow: true})
	require.NoError(t, err)

	// One override per code: a second set replaces the first.
	err = core.SetOverride(context.Background(), mem, Override{Code: code, Scope: permission.Own, Allow: true})
	require.NoError(t, err)
	require.Len(t, storer.overrides[mem.ID], 1)
	assert.True(t, storer.overrides[mem.ID][code.String()].Scope.Equal(permission.Own))

	err = core.DeleteOverride(context.Background(), mem, code)
	require.NoError(t, err)
	assert.Empty(t, storer.overrides[mem.ID])
}
