package testing

import (
	stdtesting "testing"

	"github.com/ABHINAV2087/REST-API-Learning/pkg/userstore"
)

// AssertUserCount asserts the store holds exactly want records.
func (u *UserServer) AssertUserCount(t stdtesting.TB, want int) {
	t.Helper()
	if got := u.Store().Count(); got != want {
		t.Errorf("user count = %d, want %d", got, want)
	}
}

// AssertUserExists asserts a record with the given id exists and
// returns it for further checks.
func (u *UserServer) AssertUserExists(t stdtesting.TB, id int) *userstore.User {
	t.Helper()
	user, err := u.Store().Get(id)
	if err != nil {
		t.Errorf("expected user %d to exist: %v", id, err)
		return nil
	}
	return user
}

// AssertNoUser asserts no record with the given id exists.
func (u *UserServer) AssertNoUser(t stdtesting.TB, id int) {
	t.Helper()
	if user, err := u.Store().Get(id); err == nil {
		t.Errorf("expected no user %d, found %q", id, user.Name)
	}
}

// AssertUserNamed asserts some record has the given name and returns
// the first match.
func (u *UserServer) AssertUserNamed(t stdtesting.TB, name string) *userstore.User {
	t.Helper()
	for _, user := range u.Store().List() {
		if user.Name == name {
			return user
		}
	}
	t.Errorf("expected a user named %q", name)
	return nil
}
