package subscriptionbus

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/plan"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorer struct {
	subs map[uuid.UUID]Subscription
}

func newMockStorer() *mockStorer {
	return &mockStorer{subs: make(map[uuid.UUID]Subscription)}
}

func (m *mockStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return m, nil }

func (m *mockStorer) Create(ctx context.Context, sb Subscription) error {
	for _, existing := range m.subs {
		if existing.WorkspaceID == sb.WorkspaceID {
			return ErrUniqueWorkspace
		}
	}
	m.subs[sb.ID] = sb
	return nil
}

func (m *mockStorer) Update(ctx context.Context, sb Subscription) error {
	m.subs[sb.ID] = sb
	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, subscriptionID uuid.UUID) (Subscription, error) {
	sb, exists := m.subs[subscriptionID]
	if !exists {
		return Subscription{}, ErrNotFound
	}
	return sb, nil
}

func (m *mockStorer) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) (Subscription, error) {
	for _, sb := range m.subs {
		if sb.WorkspaceID == workspaceID {
			return sb, nil
		}
	}
	return Subscription{}, ErrNotFound
}

func newTestCore() *Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return NewCore(log, newMockStorer())
}

func TestCreate(t *testing.T) {
	core := newTestCore()
	wsID := uuid.New()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: wsID, Plan: plan.Free})
	require.NoError(t, err)

	assert.Equal(t, StatusActive, sb.Status)
	assert.Equal(t, plan.LimitsFor(plan.Free), sb.Limits)

	_, err = core.Create(context.Background(), NewSubscription{WorkspaceID: wsID, Plan: plan.Pro})
	assert.ErrorIs(t, err, ErrUniqueWorkspace)
}

func TestChoosePlanSame(t *testing.T) {
	core := newTestCore()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: uuid.New(), Plan: plan.Free})
	require.NoError(t, err)

	_, err = core.ChoosePlan(context.Background(), sb, plan.Free)
	assert.ErrorIs(t, err, ErrSamePlan)
}

func TestChoosePlanFreeAppliesImmediately(t *testing.T) {
	core := newTestCore()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: uuid.New(), Plan: plan.Pro})
	require.NoError(t, err)

	got, err := core.ChoosePlan(context.Background(), sb, plan.Free)
	require.NoError(t, err)

	assert.True(t, got.Plan.Equal(plan.Free))
	assert.True(t, got.PendingPlan.IsZero())
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, plan.LimitsFor(plan.Free), got.Limits)
}

func TestChoosePlanPaidStaysPending(t *testing.T) {
	core := newTestCore()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: uuid.New(), Plan: plan.Free})
	require.NoError(t, err)

	got, err := core.ChoosePlan(context.Background(), sb, plan.Business)
	require.NoError(t, err)

	assert.True(t, got.Plan.Equal(plan.Free), "the current plan stays until payment confirms")
	assert.True(t, got.PendingPlan.Equal(plan.Business))
	assert.Equal(t, StatusPendingChange, got.Status)
	assert.Equal(t, plan.LimitsFor(plan.Free), got.Limits)
}

func TestConfirmPlan(t *testing.T) {
	core := newTestCore()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: uuid.New(), Plan: plan.Free})
	require.NoError(t, err)

	pending, err := core.ChoosePlan(context.Background(), sb, plan.Pro)
	require.NoError(t, err)

	got, err := core.ConfirmPlan(context.Background(), pending)
	require.NoError(t, err)

	assert.True(t, got.Plan.Equal(plan.Pro))
	assert.True(t, got.PendingPlan.IsZero())
	assert.Equal(t, StatusActive, got.Status)
	assert.Equal(t, plan.LimitsFor(plan.Pro), got.Limits)
}

func TestConfirmPlanNoPending(t *testing.T) {
	core := newTestCore()

	sb, err := core.Create(context.Background(), NewSubscription{WorkspaceID: uuid.New(), Plan: plan.Free})
	require.NoError(t, err)

	_, err = core.ConfirmPlan(context.Background(), sb)
	assert.ErrorIs(t, err, ErrNoPendingPlan)
}
