package store

import contractx "github.com/tanpawarit/agentic-oms/agent/contract"

// Users is a read-only view over the user collection. User records are
// owned by an external collaborator; this core only looks them up.
type Users struct {
	users []contractx.User
}

func NewUsers(users []contractx.User) *Users {
	return &Users{users: append([]contractx.User(nil), users...)}
}

func (u *Users) ByID(userID string) (contractx.User, bool) {
	for _, usr := range u.users {
		if usr.UserID == userID {
			return usr, true
		}
	}
	return contractx.User{}, false
}

func (u *Users) List() []contractx.User {
	return append([]contractx.User(nil), u.users...)
}
