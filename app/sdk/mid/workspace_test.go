package mid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/app/sdk/errs"
	"github.com/planora/planora/business/sdk/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, r *http.Request) (uuid.UUID, error, web.Encoder) {
	t.Helper()

	var gotID uuid.UUID
	var gotErr error

	next := func(ctx context.Context, r *http.Request) web.Encoder {
		gotID, gotErr = GetWorkspaceID(ctx)
		return nil
	}

	resp := ResolveWorkspace()(next)(context.Background(), r)

	return gotID, gotErr, resp
}

func TestResolveWorkspaceHeader(t *testing.T) {
	wsID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	r.Header.Set("X-Workspace-ID", wsID.String())

	gotID, gotErr, resp := resolve(t, r)
	assert.Nil(t, resp)
	require.NoError(t, gotErr)
	assert.Equal(t, wsID, gotID)
}

func TestResolveWorkspaceQuery(t *testing.T) {
	wsID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/v1/members?workspace_id="+wsID.String(), nil)

	gotID, gotErr, resp := resolve(t, r)
	assert.Nil(t, resp)
	require.NoError(t, gotErr)
	assert.Equal(t, wsID, gotID)
}

func TestResolveWorkspacePath(t *testing.T) {
	wsID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/v1/workspaces/"+wsID.String(), nil)
	r.SetPathValue("workspace_id", wsID.String())

	gotID, gotErr, resp := resolve(t, r)
	assert.Nil(t, resp)
	require.NoError(t, gotErr)
	assert.Equal(t, wsID, gotID)
}

func TestResolveWorkspaceHeaderWins(t *testing.T) {
	headerID := uuid.New()
	queryID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/v1/members?workspace_id="+queryID.String(), nil)
	r.Header.Set("X-Workspace-ID", headerID.String())

	gotID, _, _ := resolve(t, r)
	assert.Equal(t, headerID, gotID)
}

func TestResolveWorkspaceAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)

	_, gotErr, resp := resolve(t, r)
	assert.Nil(t, resp, "a request without a workspace must pass through")
	assert.Error(t, gotErr, "no workspace id must be set on the context")
}

func TestResolveWorkspaceInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	r.Header.Set("X-Workspace-ID", "not-a-uuid")

	nextCalled := false
	next := func(ctx context.Context, r *http.Request) web.Encoder {
		nextCalled = true
		return nil
	}

	resp := ResolveWorkspace()(next)(context.Background(), r)

	require.NotNil(t, resp)
	assert.False(t, nextCalled)

	err, ok := resp.(*errs.Error)
	require.True(t, ok)
	assert.Equal(t, errs.InvalidArgument, err.Code)
}
