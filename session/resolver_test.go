package session

import (
	"context"
	"path/filepath"
	"testing"

	"class-order/mirror"
	"class-order/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopStore satisfies mirror.RemoteStore without any remote; the resolver
// tests only need the mirror's local order map.
type nopStore struct{}

func (nopStore) LoadOrders(context.Context) (map[string]models.Order, error) {
	return map[string]models.Order{}, nil
}

func (nopStore) LoadSettings(context.Context) (models.SystemSettings, bool, error) {
	return models.DefaultSettings(), true, nil
}

func (nopStore) PutOrder(context.Context, string, models.Order) error { return nil }
func (nopStore) DeleteOrder(context.Context, string) error            { return nil }
func (nopStore) DeleteAllOrders(context.Context) error                { return nil }
func (nopStore) PutSettings(context.Context, models.SystemSettings) error {
	return nil
}

func (nopStore) Watch(context.Context) <-chan struct{} {
	return make(chan struct{})
}

func newResolver(t *testing.T, file string) (*Resolver, *mirror.Mirror) {
	t.Helper()
	m := mirror.New(nopStore{}, models.DefaultSettings())
	return NewResolver(m, "admin", "小老師", file), m
}

func TestSanitizeSeat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"05", "05"},
		{" 05 ", "05"},
		{"5/3", "53"},
		{"#1.b", "1b"},
		{"[12]", "12"},
		{"１２", "１２"},
		{"a\tb\nc", "abc"},
		{"　３　", "３"},
		{"$#.[]/", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeSeat(c.in), "SanitizeSeat(%q)", c.in)
	}
}

func TestStudentLogin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	r, m := newResolver(t, file)

	token, id, err := r.Login("小明", " 05 ", false, "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "05", id.ID)
	assert.Equal(t, "05", id.SeatNumber)
	assert.Equal(t, models.RoleStudent, id.Role)

	// First login creates the draft order.
	o, ok := m.OrderFor("05")
	require.True(t, ok)
	assert.Equal(t, models.StatusDraft, o.Status)

	// Same seat, later login: same order, new token.
	token2, id2, err := r.Login("小明", "05", false, "")
	require.NoError(t, err)
	assert.NotEqual(t, token, token2)
	assert.Equal(t, id.ID, id2.ID)
	o2, _ := m.OrderFor("05")
	assert.Equal(t, o.ID, o2.ID)
}

func TestStudentLoginValidation(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	r, _ := newResolver(t, file)

	_, _, err := r.Login("   ", "05", false, "")
	assert.ErrorIs(t, err, ErrBadName)

	_, _, err = r.Login("小明", " .#/ ", false, "")
	assert.ErrorIs(t, err, ErrBadSeat)
}

func TestAdminLogin(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	r, m := newResolver(t, file)

	_, _, err := r.Login("", "", true, "nope")
	assert.ErrorIs(t, err, ErrBadPassword)

	token, id, err := r.Login("", "", true, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.AdminID, id.ID)
	assert.Equal(t, "小老師", id.Name)
	assert.Equal(t, "ADMIN", id.SeatNumber)
	assert.True(t, id.IsAdmin())

	got, ok := r.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, id, got)

	// Admin login never creates an order document.
	_, ok = m.OrderFor(models.AdminID)
	assert.False(t, ok)
}

func TestSessionsSurviveRestart(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	r, _ := newResolver(t, file)
	token, id, err := r.Login("小明", "05", false, "")
	require.NoError(t, err)

	r2, _ := newResolver(t, file)
	got, ok := r2.Resolve(token)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestLogout(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sessions.json")
	r, m := newResolver(t, file)
	token, _, err := r.Login("小明", "05", false, "")
	require.NoError(t, err)

	r.Logout(token)
	_, ok := r.Resolve(token)
	assert.False(t, ok)
	// The order itself stays.
	_, ok = m.OrderFor("05")
	assert.True(t, ok)

	// Logging out a token twice is harmless.
	r.Logout(token)
}
