package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/agentic-oms/agent/contract"
)

func TestUsersByID(t *testing.T) {
	t.Parallel()

	users := NewUsers([]contractx.User{
		{UserID: "user_1", Name: "Alice", Role: contractx.RoleCustomer},
		{UserID: "admin_1", Name: "Pat", Role: contractx.RoleAdmin},
	})

	u, ok := users.ByID("admin_1")
	require.True(t, ok)
	assert.Equal(t, contractx.RoleAdmin, u.Role)

	_, ok = users.ByID("user_missing")
	assert.False(t, ok)
}

func TestUsersListIsACopy(t *testing.T) {
	t.Parallel()

	users := NewUsers([]contractx.User{
		{UserID: "user_1", Name: "Alice", Role: contractx.RoleCustomer},
	})

	list := users.List()
	list[0].Role = contractx.RoleAdmin

	u, ok := users.ByID("user_1")
	require.True(t, ok)
	assert.Equal(t, contractx.RoleCustomer, u.Role)
}
