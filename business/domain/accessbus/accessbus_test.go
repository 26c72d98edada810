package accessbus

import (
	"context"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorer serves canned grant material per user.
type mockStorer struct {
	grants map[uuid.UUID]MemberGrants
}

func (m *mockStorer) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (MemberGrants, error) {
	mg, exists := m.grants[userID]
	if !exists {
		return MemberGrants{}, ErrNoMembership
	}
	return mg, nil
}

func newTestCore(grants map[uuid.UUID]MemberGrants) *Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return NewCore(log, &mockStorer{grants: grants})
}

func TestDecideSuperuser(t *testing.T) {
	core := newTestCore(nil)

	sub := Subject{UserID: uuid.New(), Superuser: true}

	allowed, err := core.Decide(context.Background(), sub, uuid.New(), resource.Roles, actions.Change, nil)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestDecideNoMembership(t *testing.T) {
	core := newTestCore(nil)

	sub := Subject{UserID: uuid.New()}

	allowed, err := core.Decide(context.Background(), sub, uuid.New(), resource.Invites, actions.View, nil)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestDecideAllScope(t *testing.T) {
	userID := uuid.New()

	core := newTestCore(map[uuid.UUID]MemberGrants{
		userID: {
			Grants: []Grant{
				{Code: permission.NewCode(resource.Invites, actions.View), Scope: permission.All},
			},
		},
	})

	sub := Subject{UserID: userID}
	wsID := uuid.New()

	allowed, err := core.Decide(context.Background(), sub, wsID, resource.Invites, actions.View, nil)
	require.NoError(t, err)
	assert.True(t, allowed)

	// A grant for one code says nothing about any other.
	allowed, err = core.Decide(context.Background(), sub, wsID, resource.Invites, actions.Change, nil)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestDecideOwnScope(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	core := newTestCore(map[uuid.UUID]MemberGrants{
		userID: {
			Grants: []Grant{
				{Code: permission.NewCode(resource.Organization, actions.Change), Scope: permission.Own},
			},
		},
	})

	sub := Subject{UserID: userID}
	wsID := uuid.New()

	allowed, err := core.Decide(context.Background(), sub, wsID, resource.Organization, actions.Change, &userID)
	require.NoError(t, err)
	assert.True(t, allowed, "own grant must allow the caller's own record")

	allowed, err = core.Decide(context.Background(), sub, wsID, resource.Organization, actions.Change, &otherID)
	require.NoError(t, err)
	assert.False(t, allowed, "own grant must not reach another owner's record")

	allowed, err = core.Decide(context.Background(), sub, wsID, resource.Organization, actions.Change, nil)
	require.NoError(t, err)
	assert.False(t, allowed, "own grant without a known owner must deny")
}

func TestDecideOverrideWidens(t *testing.T) {
	userID := uuid.New()
	code := permission.NewCode(resource.WorkspaceUsers, actions.View)

	core := newTestCore(map[uuid.UUID]MemberGrants{
		userID: {
			Grants: []Grant{
				{Code: code, Scope: permission.Own},
			},
			Overrides: []Override{
				{Code: code, Scope: permission.All, Allow: true},
			},
		},
	})

	sub := Subject{UserID: userID}

	allowed, err := core.Decide(context.Background(), sub, uuid.New(), resource.WorkspaceUsers, actions.View, nil)
	require.NoError(t, err)
	assert.True(t, allowed, "an all override must widen an own role grant")
}

func TestDecideDenyOverrideGrantsNothing(t *testing.T) {
	userID := uuid.New()
	code := permission.NewCode(resource.Subscription, actions.Change)

	core := newTestCore(map[uuid.UUID]MemberGrants{
		userID: {
			Overrides: []Override{
				{Code: code, Scope: permission.All, Allow: false},
			},
		},
	})

	sub := Subject{UserID: userID}

	allowed, err := core.Decide(context.Background(), sub, uuid.New(), resource.Subscription, actions.Change, nil)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEffectiveMerge(t *testing.T) {
	view := permission.NewCode(resource.Roles, actions.View)
	change := permission.NewCode(resource.Roles, actions.Change)

	mg := MemberGrants{
		Grants: []Grant{
			{Code: view, Scope: permission.All},
			{Code: change, Scope: permission.Own},
		},
		Overrides: []Override{
			{Code: view, Scope: permission.Own, Allow: true},
			{Code: change, Scope: permission.All, Allow: true},
		},
	}

	// The narrow override must not shrink the wide view grant, and the
	// wide override must win over the narrow change grant.
	want := []Grant{
		{Code: view, Scope: permission.All},
		{Code: change, Scope: permission.All},
	}

	opts := []cmp.Option{
		cmpopts.SortSlices(func(a, b Grant) bool { return a.Code.String() < b.Code.String() }),
		cmp.Comparer(func(a, b permission.Code) bool { return a.Equal(b) }),
		cmp.Comparer(func(a, b permission.Scope) bool { return a.Equal(b) }),
	}

	if diff := cmp.Diff(want, Effective(mg), opts...); diff != "" {
		t.Errorf("effective grants mismatch (-want +got):\n%s", diff)
	}
}

func TestGrants(t *testing.T) {
	userID := uuid.New()
	code := permission.NewCode(resource.Invites, actions.View)

	core := newTestCore(map[uuid.UUID]MemberGrants{
		userID: {
			Grants: []Grant{{Code: code, Scope: permission.Own}},
		},
	})

	got, err := core.Grants(context.Background(), Subject{UserID: userID}, uuid.New())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Code.Equal(code))

	_, err = core.Grants(context.Background(), Subject{UserID: uuid.New()}, uuid.New())
	assert.Error(t, err, "no membership must surface to the caller")
}
