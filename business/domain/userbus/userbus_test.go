package userbus

import (
	"context"
	"net/mail"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/planora/planora/business/sdk/order"
	"github.com/planora/planora/business/sdk/page"
	"github.com/planora/planora/business/sdk/sqldb"
	"github.com/planora/planora/business/types/name"
	"github.com/planora/planora/business/types/password"
	"github.com/planora/planora/business/types/role"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorer struct {
	users map[uuid.UUID]User
}

func newMockStorer() *mockStorer {
	return &mockStorer{users: make(map[uuid.UUID]User)}
}

func (m *mockStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return m, nil }

func (m *mockStorer) Create(ctx context.Context, usr User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email.Address, usr.Email.Address) {
			return ErrUniqueEmail
		}
	}
	m.users[usr.ID] = usr
	return nil
}

func (m *mockStorer) Update(ctx context.Context, usr User) error {
	m.users[usr.ID] = usr
	return nil
}

func (m *mockStorer) Delete(ctx context.Context, usr User) error {
	delete(m.users, usr.ID)
	return nil
}

func (m *mockStorer) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]User, error) {
	var out []User
	for _, usr := range m.users {
		out = append(out, usr)
	}
	return out, nil
}

func (m *mockStorer) Count(ctx context.Context, filter QueryFilter) (int, error) {
	return len(m.users), nil
}

func (m *mockStorer) QueryByID(ctx context.Context, userID uuid.UUID) (User, error) {
	usr, exists := m.users[userID]
	if !exists {
		return User{}, ErrNotFound
	}
	return usr, nil
}

func (m *mockStorer) QueryByEmail(ctx context.Context, email mail.Address) (User, error) {
	for _, usr := range m.users {
		if strings.EqualFold(usr.Email.Address, email.Address) {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func newUser(email string) NewUser {
	return NewUser{
		Name:     name.MustParse("Test User"),
		Email:    mail.Address{Address: email},
		Role:     role.User,
		Password: password.MustParse("Secret123!"),
	}
}

func TestCreateHashesPassword(t *testing.T) {
	core := NewCore(newMockStorer())

	usr, err := core.Create(context.Background(), newUser("ana@example.com"))
	require.NoError(t, err)

	assert.True(t, usr.Enabled)
	assert.NotEmpty(t, usr.PasswordHash)
	assert.NotContains(t, string(usr.PasswordHash), "Secret123!")
}

func TestCreateDuplicateEmail(t *testing.T) {
	core := NewCore(newMockStorer())

	_, err := core.Create(context.Background(), newUser("dup@example.com"))
	require.NoError(t, err)

	_, err = core.Create(context.Background(), newUser("dup@example.com"))
	assert.ErrorIs(t, err, ErrUniqueEmail)
}

func TestAuthenticate(t *testing.T) {
	core := NewCore(newMockStorer())

	created, err := core.Create(context.Background(), newUser("login@example.com"))
	require.NoError(t, err)

	usr, err := core.Authenticate(context.Background(), mail.Address{Address: "login@example.com"}, "Secret123!")
	require.NoError(t, err)
	assert.Equal(t, created.ID, usr.ID)

	_, err = core.Authenticate(context.Background(), mail.Address{Address: "login@example.com"}, "WrongSecret!")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)

	_, err = core.Authenticate(context.Background(), mail.Address{Address: "ghost@example.com"}, "Secret123!")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticateDisabled(t *testing.T) {
	storer := newMockStorer()
	core := NewCore(storer)

	usr, err := core.Create(context.Background(), newUser("off@example.com"))
	require.NoError(t, err)

	enabled := false
	_, err = core.Update(context.Background(), usr, UpdateUser{Enabled: &enabled})
	require.NoError(t, err)

	_, err = core.Authenticate(context.Background(), mail.Address{Address: "off@example.com"}, "Secret123!")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}
