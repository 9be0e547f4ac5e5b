package userstore

import "sync"

// Seed describes a record applied to the store at construction and on Reset.
// Seeds flow through the normal create path, so a store seeded with N
// entries holds records with ids 1..N.
type Seed struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Store holds the ordered collection of user records.
//
// The zero value is not usable; construct with New or NewSeeded. The store
// keeps records in insertion order and assigns ids from a counter that only
// moves forward, so deleting a record never frees its id for reuse.
type Store struct {
	mu     sync.RWMutex
	users  []*User
	nextID int
	seeds  []Seed
}

// New returns an empty store.
func New() *Store {
	return NewSeeded(nil)
}

// NewSeeded returns a store pre-populated with one record per seed entry,
// in order. Reset restores exactly this state.
func NewSeeded(seeds []Seed) *Store {
	s := &Store{seeds: append([]Seed(nil), seeds...)}
	s.reset()
	return s
}

// Create assigns the next id, appends the record, and returns a copy of it.
// Name and email are stored as given; empty values are accepted.
func (s *Store) Create(name, email string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(name, email).Clone()
}

// createLocked appends a record under an already-held write lock.
func (s *Store) createLocked(name, email string) *User {
	u := &User{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.users = append(s.users, u)
	return u
}

// List returns copies of all records in insertion order. The result is never
// nil, so an empty store lists as an empty JSON array rather than null.
func (s *Store) List() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// Get returns a copy of the first record whose id matches, or a
// *NotFoundError when no record has that id.
func (s *Store) Get(id int) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Update overwrites the record's name and email unconditionally and returns
// a copy of the updated record. The id never changes. Returns a
// *NotFoundError when no record has that id, leaving the collection intact.
func (s *Store) Update(id int, name, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			u.Name = name
			u.Email = email
			return u.Clone(), nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

// Delete removes the record with the given id. Returns a *NotFoundError when
// no record has that id, leaving the collection intact.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// Count returns the number of records currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Reset restores the store to its seed state: all records are dropped, the
// id counter rewinds, and the seeds are re-applied. Intended for test
// isolation between runs.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.users = make([]*User, 0, len(s.seeds))
	s.nextID = 1
	for _, seed := range s.seeds {
		s.createLocked(seed.Name, seed.Email)
	}
}

// Clear removes every record without touching the id counter, and reports
// how many were removed. Unlike Reset it does not re-apply seeds and ids
// keep climbing from where they were.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.users)
	s.users = s.users[:0]
	return n
}
