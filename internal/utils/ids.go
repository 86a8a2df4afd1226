package utils // package utils provides identifier generation shared by the stores

import (
	"sync"

	"github.com/google/uuid"
)

// NewID returns a random (version 4) UUID string.  Bookings and orders use
// these identifiers so that two records never share an id, even when the
// payloads are identical.
func NewID() string {
	return uuid.NewString()
}

// IDFunc produces identifiers for new records.  Stores accept one so that
// tests can supply predictable values.
type IDFunc func() string

// Sequence hands out monotonically increasing integer ids.  Ids are never
// reused: removing a record does not rewind the sequence.
type Sequence struct {
	mu   sync.Mutex
	last int
}

// NewSequence returns a Sequence whose first Next() value is start+1.
func NewSequence(start int) *Sequence {
	return &Sequence{last: start}
}

// Next returns the next id.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}

// Observe moves the sequence forward so that future ids are greater than
// id.  It is used when records with preassigned ids are loaded.
func (s *Sequence) Observe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}

// Last returns the most recently issued (or observed) id.
func (s *Sequence) Last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
