package invitebus

import (
	"context"
	"io"
	"net/mail"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorer struct {
	invites map[uuid.UUID]Invite
}

func newMockStorer() *mockStorer {
	return &mockStorer{invites: make(map[uuid.UUID]Invite)}
}

func (m *mockStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return m, nil }

func (m *mockStorer) Create(ctx context.Context, inv Invite) error {
	for _, existing := range m.invites {
		if existing.WorkspaceID == inv.WorkspaceID && existing.Email.Address == inv.Email.Address {
			return ErrUniqueInvite
		}
	}
	m.invites[inv.ID] = inv
	return nil
}

func (m *mockStorer) Delete(ctx context.Context, inv Invite) error {
	delete(m.invites, inv.ID)
	return nil
}

func (m *mockStorer) Accept(ctx context.Context, inv Invite) error {
	existing, exists := m.invites[inv.ID]
	if !exists {
		return ErrNotFound
	}
	if existing.Accepted {
		return ErrAlreadyAccepted
	}
	m.invites[inv.ID] = inv
	return nil
}

func (m *mockStorer) QueryByID(ctx context.Context, inviteID uuid.UUID) (Invite, error) {
	inv, exists := m.invites[inviteID]
	if !exists {
		return Invite{}, ErrNotFound
	}
	return inv, nil
}

func (m *mockStorer) QueryByToken(ctx context.Context, token string) (Invite, error) {
	for _, inv := range m.invites {
		if inv.Token == token {
			return inv, nil
		}
	}
	return Invite{}, ErrNotFound
}

func (m *mockStorer) QueryByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]Invite, error) {
	var out []Invite
	for _, inv := range m.invites {
		if inv.WorkspaceID == workspaceID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func newTestCore() *Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return NewCore(log, newMockStorer())
}

func TestCreateIssuesToken(t *testing.T) {
	core := newTestCore()

	inv, err := core.Create(context.Background(), NewInvite{
		WorkspaceID: uuid.New(),
		Email:       mail.Address{Address: "ana@example.com"},
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, inv.Token)
	assert.False(t, inv.Accepted)

	got, err := core.QueryByToken(context.Background(), inv.Token)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
}

func TestCreateDuplicateEmail(t *testing.T) {
	core := newTestCore()
	wsID := uuid.New()

	ni := NewInvite{
		WorkspaceID: wsID,
		Email:       mail.Address{Address: "dup@example.com"},
		CreatedBy:   uuid.New(),
	}

	_, err := core.Create(context.Background(), ni)
	require.NoError(t, err)

	_, err = core.Create(context.Background(), ni)
	assert.ErrorIs(t, err, ErrUniqueInvite)
}

func TestAccept(t *testing.T) {
	core := newTestCore()

	inv, err := core.Create(context.Background(), NewInvite{
		WorkspaceID: uuid.New(),
		Email:       mail.Address{Address: "invitee@example.com"},
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)

	accepted, err := core.Accept(context.Background(), inv, mail.Address{Address: "invitee@example.com"})
	require.NoError(t, err)
	assert.True(t, accepted.Accepted)
	require.NotNil(t, accepted.AcceptedAt)

	// Single use.
	_, err = core.Accept(context.Background(), accepted, mail.Address{Address: "invitee@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
}

func TestAcceptEmailMismatch(t *testing.T) {
	core := newTestCore()

	inv, err := core.Create(context.Background(), NewInvite{
		WorkspaceID: uuid.New(),
		Email:       mail.Address{Address: "right@example.com"},
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)

	_, err = core.Accept(context.Background(), inv, mail.Address{Address: "wrong@example.com"})
	assert.ErrorIs(t, err, ErrEmailMismatch)
}

func TestAcceptEmailCaseInsensitive(t *testing.T) {
	core := newTestCore()

	inv, err := core.Create(context.Background(), NewInvite{
		WorkspaceID: uuid.New(),
		Email:       mail.Address{Address: "Mixed.Case@Example.com"},
		CreatedBy:   uuid.New(),
	})
	require.NoError(t, err)

	_, err = core.Accept(context.Background(), inv, mail.Address{Address: "mixed.case@example.com"})
	assert.NoError(t, err)
}
