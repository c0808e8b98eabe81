package fake

import (
	"sort"
	"strings"
	"sync"
)

// InMemoryJournal is a fake journal that keeps the records in a map.
type InMemoryJournal struct {
	sync.Mutex

	values   map[string][]byte
	ErrRead  error
	ErrWrite error
}

// NewJournal creates a new empty journal.
func NewJournal() *InMemoryJournal {
	return &InMemoryJournal{
		values: make(map[string][]byte),
	}
}

// NewBadJournal creates a new empty journal that will always return an error.
func NewBadJournal() *InMemoryJournal {
	return &InMemoryJournal{
		values:   make(map[string][]byte),
		ErrRead:  fakeErr,
		ErrWrite: fakeErr,
	}
}

// Read returns the record of the key.
func (j *InMemoryJournal) Read(key string) ([]byte, error) {
	j.Lock()
	defer j.Unlock()

	return j.values[key], j.ErrRead
}

// Write stores the record under the key.
func (j *InMemoryJournal) Write(key string, value []byte) error {
	j.Lock()
	defer j.Unlock()

	if j.ErrWrite != nil {
		return j.ErrWrite
	}

	j.values[key] = value

	return nil
}

// Scan calls the function for the records whose key has the prefix, in the
// order of the keys.
func (j *InMemoryJournal) Scan(prefix string, fn func(string, []byte) error) error {
	j.Lock()
	defer j.Unlock()

	if j.ErrRead != nil {
		return j.ErrRead
	}

	keys := make([]string, 0, len(j.values))
	for key := range j.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	for _, key := range keys {
		err := fn(key, j.values[key])
		if err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of records.
func (j *InMemoryJournal) Len() int {
	j.Lock()
	defer j.Unlock()

	return len(j.values)
}

// Close does nothing.
func (j *InMemoryJournal) Close() error {
	return nil
}
