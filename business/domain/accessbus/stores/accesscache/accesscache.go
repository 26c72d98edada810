// Package accesscache keeps effective grants in memory so the hot
// authorization path does not hit the database on every request.
package accesscache

import (
	"context"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/accessbus"
	"github.com/planora/planora/foundation/logger"
)

// Store implements the accessbus.Storer interface with a read-through cache.
// A miss falls back to the database and repairs the cache with the result.
// Mutating handlers call Invalidate after changing roles, overrides or
// memberships so the next decision sees fresh data.
type Store struct {
	log    *logger.Logger
	storer accessbus.Storer
	cache  *memoryCache
}

// NewStore constructs the cached store.
func NewStore(log *logger.Logger, storer accessbus.Storer) (*Store, error) {
	mem, err := newMemoryCache(log)
	if err != nil {
		return nil, err
	}

	return &Store{
		log:    log,
		storer: storer,
		cache:  mem,
	}, nil
}

// QueryByUserWorkspace returns the member's grant material. Cached entries
// hold the effective merge only. Decisions computed from the merge match
// decisions computed from the raw material, so nothing is lost on the
// deciding path.
func (s *Store) QueryByUserWorkspace(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) (accessbus.MemberGrants, error) {
	if mg, ok := s.cache.read(ctx, userID, workspaceID); ok {
		return mg, nil
	}

	mg, err := s.storer.QueryByUserWorkspace(ctx, userID, workspaceID)
	if err != nil {
		return accessbus.MemberGrants{}, err
	}

	s.log.Info(ctx, "accesscache: cache miss/repair triggered", "user_id", userID, "workspace_id", workspaceID)
	s.cache.write(ctx, userID, workspaceID, mg)

	return mg, nil
}

// Invalidate drops the cached grants for one member.
func (s *Store) Invalidate(ctx context.Context, userID uuid.UUID, workspaceID uuid.UUID) {
	s.cache.clear(ctx, userID, workspaceID)
}

// InvalidateWorkspace drops the cached grants for every member of the
// workspace. Used after role edits, which touch many members at once.
func (s *Store) InvalidateWorkspace(ctx context.Context, workspaceID uuid.UUID) {
	s.cache.clearWorkspace(ctx, workspaceID)
}
