package kv

import (
	"iter"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It
// acts as a map but uses linear search instead, which proves to be more
// efficient on relatively low amount of entries, which often enough is the
// case for request headers. Lookup is case-insensitive.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// Add adds a new pair of key and value without looking for duplicates.
func (s *Storage) Add(key, value string) *Storage {
	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// Set inserts the pair, overwriting the value of an already existing key.
func (s *Storage) Set(key, value string) *Storage {
	for i, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			s.pairs[i].Value = value
			return s
		}
	}

	return s.Add(key, value)
}

// Value returns the first value, corresponding to the key. Otherwise, empty
// string is returned.
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the first value corresponding to the key or custom
// value, defined via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If
// it wasn't, it'll be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(key, pair.Key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// Iter returns an iterator over the pairs.
func (s *Storage) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

func (s *Storage) Empty() bool {
	return s.Len() == 0
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Clear all the entries. However, all the allocated space won't be freed.
func (s *Storage) Clear() *Storage {
	s.pairs = s.pairs[:0]
	return s
}
