// Package userstore provides the in-memory user record store behind the
// userd HTTP API.
//
// The store owns an ordered collection of user records and answers the four
// CRUD operations over it:
//
//   - Create assigns the next id and appends the record
//   - List returns all records in insertion order
//   - Get, Update, Delete address one record by id
//
// Ids come from a monotonically increasing counter owned by the store, so an
// id is never reused after a delete. Records live only as long as the
// process; there is no persistence.
//
// Thread Safety:
//
// All operations are guarded by a single sync.RWMutex, so the store is safe
// for the concurrent handlers net/http runs. Reads proceed concurrently,
// writes are serialized.
//
// Usage:
//
//	store := userstore.New()
//	u := store.Create("John Doe", "john@example.com")
//	all := store.List()
//	u, err := store.Get(u.ID)
//	u, err = store.Update(u.ID, "Jane Doe", "jane@example.com")
//	err = store.Delete(u.ID)
//
//	// Test isolation
//	store.Reset()
package userstore
