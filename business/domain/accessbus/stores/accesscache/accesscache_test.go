package accesscache

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStorer records how many times the database path runs.
type countingStorer struct {
	grants map[string]accessbus.MemberGrants
	calls  int
}

func key(userID, workspaceID uuid.UUID) string {
	return userID.String() + "|" + workspaceID.String()
}

func (s *countingStorer) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (accessbus.MemberGrants, error) {
	s.calls++
	mg, exists := s.grants[key(userID, workspaceID)]
	if !exists {
		return accessbus.MemberGrants{}, accessbus.ErrNoMembership
	}
	return mg, nil
}

func newTestStore(t *testing.T, storer accessbus.Storer) *Store {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	store, err := NewStore(log, storer)
	require.NoError(t, err)

	return store
}

func TestReadThrough(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()
	code := permission.MustParseCode("invites.view")

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userID, wsID): {
			Grants: []accessbus.Grant{{Code: code, Scope: permission.All}},
		},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	mg, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	require.Len(t, mg.Grants, 1)
	assert.Equal(t, 1, db.calls)

	// Second read must come from the cache.
	mg, err = store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	require.Len(t, mg.Grants, 1)
	assert.True(t, mg.Grants[0].Code.Equal(code))
	assert.True(t, mg.Grants[0].Scope.Equal(permission.All))
	assert.Equal(t, 1, db.calls)
}

func TestZeroGrantMemberIsCached(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userID, wsID): {},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	_, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)

	_, err = store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	assert.Equal(t, 1, db.calls, "a member with no grants must still be cached")
}

func TestErrorsAreNotCached(t *testing.T) {
	db := &countingStorer{grants: map[string]accessbus.MemberGrants{}}

	store := newTestStore(t, db)
	ctx := context.Background()
	userID := uuid.New()
	wsID := uuid.New()

	_, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	assert.ErrorIs(t, err, accessbus.ErrNoMembership)

	_, err = store.QueryByUserWorkspace(ctx, userID, wsID)
	assert.ErrorIs(t, err, accessbus.ErrNoMembership)
	assert.Equal(t, 2, db.calls)
}

func TestInvalidate(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()
	code := permission.MustParseCode("roles.view")

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userID, wsID): {
			Grants: []accessbus.Grant{{Code: code, Scope: permission.Own}},
		},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	_, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	assert.Equal(t, 1, db.calls)

	store.Invalidate(ctx, userID, wsID)

	_, err = store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	assert.Equal(t, 2, db.calls, "an invalidated entry must reload from the database")
}

func TestInvalidateWorkspace(t *testing.T) {
	wsID := uuid.New()
	otherWsID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()
	code := permission.MustParseCode("roles.view")

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userA, wsID):      {Grants: []accessbus.Grant{{Code: code, Scope: permission.All}}},
		key(userB, wsID):      {Grants: []accessbus.Grant{{Code: code, Scope: permission.All}}},
		key(userA, otherWsID): {Grants: []accessbus.Grant{{Code: code, Scope: permission.All}}},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	for _, k := range []struct{ u, w uuid.UUID }{{userA, wsID}, {userB, wsID}, {userA, otherWsID}} {
		_, err := store.QueryByUserWorkspace(ctx, k.u, k.w)
		require.NoError(t, err)
	}
	require.Equal(t, 3, db.calls)

	store.InvalidateWorkspace(ctx, wsID)

	_, err := store.QueryByUserWorkspace(ctx, userA, wsID)
	require.NoError(t, err)
	_, err = store.QueryByUserWorkspace(ctx, userB, wsID)
	require.NoError(t, err)
	assert.Equal(t, 5, db.calls, "every member of the workspace must reload")

	// The other workspace stays cached.
	_, err = store.QueryByUserWorkspace(ctx, userA, otherWsID)
	require.NoError(t, err)
	assert.Equal(t, 5, db.calls)
}

func TestInvalidateWorkspaceClearsZeroGrantMember(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()
	code := permission.MustParseCode("invites.view")

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userID, wsID): {},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	mg, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	require.Empty(t, mg.Grants)
	require.Equal(t, 1, db.calls)

	// A role edit grants the member a permission, then flushes the workspace.
	db.grants[key(userID, wsID)] = accessbus.MemberGrants{
		Grants: []accessbus.Grant{{Code: code, Scope: permission.All}},
	}
	store.InvalidateWorkspace(ctx, wsID)

	mg, err = store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	assert.Equal(t, 2, db.calls, "a member cached with zero grants must reload")
	require.Len(t, mg.Grants, 1)
	assert.True(t, mg.Grants[0].Code.Equal(code))
}

func TestCacheMergesOverrides(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()
	code := permission.MustParseCode("invites.view")

	db := &countingStorer{grants: map[string]accessbus.MemberGrants{
		key(userID, wsID): {
			Grants:    []accessbus.Grant{{Code: code, Scope: permission.Own}},
			Overrides: []accessbus.Override{{Code: code, Scope: permission.All, Allow: true}},
		},
	}}

	store := newTestStore(t, db)
	ctx := context.Background()

	_, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)

	mg, err := store.QueryByUserWorkspace(ctx, userID, wsID)
	require.NoError(t, err)
	require.Len(t, mg.Grants, 1)
	assert.True(t, mg.Grants[0].Scope.Equal(permission.All), "the cache holds the effective merge")
	assert.Empty(t, mg.Overrides)
}
