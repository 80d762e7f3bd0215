// Package store implements the default attribute store of a document: an
// arena of nodes addressed by generational handles, each holding a small
// set of tagged attribute values.
package store

import "fmt"

// Handle addresses a node in a [Store]. Handles of destroyed nodes stay
// distinguishable from handles of nodes that later reuse the same slot.
// The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.index, h.gen)
}

// Tag identifies an attribute.
type Tag uint16

type slot struct {
	gen   uint32
	alive bool
	attrs map[Tag]any
}

// Store is an arena of attribute sets. The zero value is ready to use.
type Store struct {
	slots []slot
	free  []uint32
	live  int
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Create allocates a new node without attributes.
func (s *Store) Create() Handle {
	s.live++
	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		sl := &s.slots[idx]
		sl.alive = true
		return Handle{index: idx, gen: sl.gen}
	}
	s.slots = append(s.slots, slot{gen: 1, alive: true})
	return Handle{index: uint32(len(s.slots) - 1), gen: 1}
}

// Destroy frees the node and all of its attributes. Destroying an invalid
// handle does nothing.
func (s *Store) Destroy(h Handle) {
	sl := s.lookup(h)
	if sl == nil {
		return
	}
	sl.alive = false
	sl.attrs = nil
	sl.gen++
	s.free = append(s.free, h.index)
	s.live--
}

// Valid reports whether h refers to a live node.
func (s *Store) Valid(h Handle) bool {
	return s.lookup(h) != nil
}

// Len returns the number of live nodes.
func (s *Store) Len() int {
	return s.live
}

func (s *Store) lookup(h Handle) *slot {
	if h.gen == 0 || int(h.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.index]
	if !sl.alive || sl.gen != h.gen {
		return nil
	}
	return sl
}

func (s *Store) Has(h Handle, tag Tag) bool {
	_, ok := s.Get(h, tag)
	return ok
}

func (s *Store) Get(h Handle, tag Tag) (any, bool) {
	sl := s.lookup(h)
	if sl == nil {
		return nil, false
	}
	v, ok := sl.attrs[tag]
	return v, ok
}

// Set stores v under tag. It reports false if h is not valid.
func (s *Store) Set(h Handle, tag Tag, v any) bool {
	sl := s.lookup(h)
	if sl == nil {
		return false
	}
	if sl.attrs == nil {
		sl.attrs = make(map[Tag]any, 4)
	}
	sl.attrs[tag] = v
	return true
}

// Remove deletes the attribute. It reports whether the attribute existed.
func (s *Store) Remove(h Handle, tag Tag) bool {
	sl := s.lookup(h)
	if sl == nil {
		return false
	}
	if _, ok := sl.attrs[tag]; !ok {
		return false
	}
	delete(sl.attrs, tag)
	return true
}

// Getter is the read side of an attribute store.
type Getter interface {
	Get(h Handle, tag Tag) (any, bool)
}

// GetOr returns the attribute as a T, or def if it is missing or has a
// different type.
func GetOr[T any](s Getter, h Handle, tag Tag, def T) T {
	v, ok := s.Get(h, tag)
	if !ok {
		return def
	}
	tv, ok := v.(T)
	if !ok {
		return def
	}
	return tv
}
