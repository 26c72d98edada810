package accesscache

import (
	"context"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/business/types/permission"
	"github.com/planora/planora/foundation/logger"
)

// The policy store doubles as the cache: one policy row per effective grant
// with sub = "userID|workspaceID", obj = code, act = scope. A grouping rule
// against MEMBER marks a subject as cached, which keeps a member with zero
// grants apart from a member we have never loaded.
const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, "MEMBER") && r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

const memberMarker = "MEMBER"

type memoryCache struct {
	log      *logger.Logger
	enforcer *casbin.SyncedEnforcer
}

func newMemoryCache(log *logger.Logger) (*memoryCache, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	return &memoryCache{
		log:      log,
		enforcer: e,
	}, nil
}

func (c *memoryCache) read(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (accessbus.MemberGrants, bool) {
	sub := subject(userID, workspaceID)

	cached, err := c.enforcer.HasGroupingPolicy(sub, memberMarker)
	if err != nil || !cached {
		return accessbus.MemberGrants{}, false
	}

	rows, err := c.enforcer.GetFilteredPolicy(0, sub)
	if err != nil {
		c.log.Error(ctx, "accesscache: casbin get policy failed", "sub", sub, "err", err)
		return accessbus.MemberGrants{}, false
	}

	grants := make([]accessbus.Grant, 0, len(rows))
	for _, row := range rows {
		code, err := permission.ParseCode(row[1])
		if err != nil {
			c.log.Error(ctx, "accesscache: bad cached code", "sub", sub, "code", row[1], "err", err)
			return accessbus.MemberGrants{}, false
		}

		scope, err := permission.ParseScope(row[2])
		if err != nil {
			c.log.Error(ctx, "accesscache: bad cached scope", "sub", sub, "scope", row[2], "err", err)
			return accessbus.MemberGrants{}, false
		}

		grants = append(grants, accessbus.Grant{Code: code, Scope: scope})
	}

	return accessbus.MemberGrants{Grants: grants}, true
}

func (c *memoryCache) write(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID, mg accessbus.MemberGrants) {
	sub := subject(userID, workspaceID)

	c.clear(ctx, userID, workspaceID)

	for _, g := range accessbus.Effective(mg) {
		if _, err := c.enforcer.AddPolicy(sub, g.Code.String(), g.Scope.String()); err != nil {
			c.log.Error(ctx, "accesscache: casbin add policy failed", "sub", sub, "code", g.Code, "err", err)
			return
		}
	}

	if _, err := c.enforcer.AddGroupingPolicy(sub, memberMarker); err != nil {
		c.log.Error(ctx, "accesscache: casbin mark member failed", "sub", sub, "err", err)
	}
}

func (c *memoryCache) clear(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) {
	sub := subject(userID, workspaceID)

	if _, err := c.enforcer.RemoveFilteredPolicy(0, sub); err != nil {
		c.log.Error(ctx, "accesscache: casbin clear policies failed", "sub", sub, "err", err)
	}

	if _, err := c.enforcer.RemoveFilteredGroupingPolicy(0, sub); err != nil {
		c.log.Error(ctx, "accesscache: casbin clear marker failed", "sub", sub, "err", err)
	}
}

func (c *memoryCache) clearWorkspace(ctx context.Context, workspaceID uuid.UUID) {
	suffix := "|" + workspaceID.String()

	// A member with zero grants has no policy row, only the marker, so the
	// subjects must be gathered from the grouping rules as well.
	subs, err := c.enforcer.GetAllSubjects()
	if err != nil {
		c.log.Error(ctx, "accesscache: casbin get subjects failed", "err", err)
		return
	}

	markers, err := c.enforcer.GetFilteredGroupingPolicy(1, memberMarker)
	if err != nil {
		c.log.Error(ctx, "accesscache: casbin get markers failed", "err", err)
		return
	}
	for _, row := range markers {
		subs = append(subs, row[0])
	}

	seen := make(map[string]struct{}, len(subs))
	for _, sub := range subs {
		if !strings.HasSuffix(sub, suffix) {
			continue
		}
		if _, dup := seen[sub]; dup {
			continue
		}
		seen[sub] = struct{}{}

		if _, err := c.enforcer.RemoveFilteredPolicy(0, sub); err != nil {
			c.log.Error(ctx, "accesscache: casbin clear policies failed", "sub", sub, "err", err)
		}
		if _, err := c.enforcer.RemoveFilteredGroupingPolicy(0, sub); err != nil {
			c.log.Error(ctx, "accesscache: casbin clear marker failed", "sub", sub, "err", err)
		}
	}
}

func subject(userID uuid.UUID, workspaceID uuid.UUID) string {
	return userID.String() + "|" + workspaceID.String()
}
