package mid

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/sdk/web"
	"github.com/planora/planora/business/types/actions"
	"github.com/planora/planora/business/types/resource"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGrantStorer serves the grant material for at most one member.
type stubGrantStorer struct {
	grants map[string]accessbus.MemberGrants
}

func (s *stubGrantStorer) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (accessbus.MemberGrants, error) {
	mg, exists := s.grants[userID.String()+"|"+workspaceID.String()]
	if !exists {
		return accessbus.MemberGrants{}, accessbus.ErrNoMembership
	}
	return mg, nil
}

func newTestAccess(grants map[string]accessbus.MemberGrants) (*logger.Logger, *accessbus.Core) {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return log, accessbus.NewCore(log, &stubGrantStorer{grants: grants})
}

func gate(t *testing.T, mw web.MidFunc, ctx context.Context, r *http.Request) (web.Encoder, bool) {
	t.Helper()

	nextCalled := false
	next := func(ctx context.Context, r *http.Request) web.Encoder {
		nextCalled = true
		return nil
	}

	return mw(next)(ctx, r), nextCalled
}

func TestAuthorizeMissingWorkspaceDenies(t *testing.T) {
	log, access := newTestAccess(nil)

	ctx := setUserID(context.Background(), uuid.New())
	r := httptest.NewRequest(http.MethodGet, "/v1/invites", nil)

	resp, nextCalled := gate(t, Authorize(log, access, resource.Invites, actions.View), ctx, r)
	assert.False(t, nextCalled)

	err, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, err.Code, "no workspace must land on the same denial as no membership")
}

func TestAuthorizeNoMembershipDenies(t *testing.T) {
	log, access := newTestAccess(nil)

	ctx := setUserID(context.Background(), uuid.New())
	ctx = setWorkspaceID(ctx, uuid.New())
	r := httptest.NewRequest(http.MethodGet, "/v1/invites", nil)

	resp, nextCalled := gate(t, Authorize(log, access, resource.Invites, actions.View), ctx, r)
	assert.False(t, nextCalled)

	err, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, err.Code)
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	log, access := newTestAccess(nil)

	r := httptest.NewRequest(http.MethodGet, "/v1/invites", nil)

	resp, nextCalled := gate(t, Authorize(log, access, resource.Invites, actions.View), context.Background(), r)
	assert.False(t, nextCalled)

	err, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.Unauthenticated, err.Code)
}

func TestAuthorizeMemberMissingWorkspaceDenies(t *testing.T) {
	log, access := newTestAccess(nil)

	ctx := setUserID(context.Background(), uuid.New())
	r := httptest.NewRequest(http.MethodGet, "/v1/workspaces", nil)

	resp, nextCalled := gate(t, AuthorizeMember(log, access), ctx, r)
	assert.False(t, nextCalled)

	err, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, err.Code)
}

func TestAuthorizeMemberAdmits(t *testing.T) {
	userID := uuid.New()
	wsID := uuid.New()

	log, access := newTestAccess(map[string]accessbus.MemberGrants{
		userID.String() + "|" + wsID.String(): {},
	})

	ctx := setUserID(context.Background(), userID)
	ctx = setWorkspaceID(ctx, wsID)
	r := httptest.NewRequest(http.MethodGet, "/v1/workspaces/"+wsID.String(), nil)

	resp, nextCalled := gate(t, AuthorizeMember(log, access), ctx, r)
	assert.Nil(t, resp)
	assert.True(t, nextCalled, "a member with zero grants still belongs to the workspace")
}
