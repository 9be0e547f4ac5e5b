package userstore

// User is a single record in the store.
//
// The id is assigned by the store on create and never changes. No uniqueness
// is enforced on name or email.
type User struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Clone returns a copy of the user. Handlers hand clones to callers so
// nothing outside the store can mutate a stored record.
func (u *User) Clone() *User {
	c := *u
	return &c
}
