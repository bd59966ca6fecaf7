// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package weakset provides a set keyed by object identity that never
// keeps its members alive.
//
// Membership is decided by pointer identity, not value equality: two
// distinct tensors with equal contents are two distinct members. Entries
// hold only weak references, so adding an object to a set does not
// prevent it from being garbage collected; once an object has been
// reclaimed it is simply no longer a member. Stale entries are treated
// as absent lazily and may linger in the backing map; compaction
// timing is unspecified and does not affect correctness.
package weakset

import (
	"errors"
	"weak"
)

// ErrNilItem is returned by Add when the item is nil.
var ErrNilItem = errors.New("weakset: nil item")

// Set is an identity-keyed weak set of *T.
//
// The zero value is not usable; create sets with New. Set is not safe
// for concurrent use.
type Set[T any] struct {
	items map[weak.Pointer[T]]struct{}
}

// New creates an empty Set.
func New[T any]() *Set[T] {
	return &Set[T]{items: make(map[weak.Pointer[T]]struct{})}
}

// Add inserts an object by identity.
//
// Adding an object that is already a member is a no-op. A nil item is
// a programming error and returns ErrNilItem.
func (s *Set[T]) Add(item *T) error {
	if item == nil {
		return ErrNilItem
	}
	// weak.Make yields equal Pointer values for the same object and
	// distinct values for distinct objects, even across address reuse.
	s.items[weak.Make(item)] = struct{}{}
	return nil
}

// Contains reports whether the object was added and has not been
// reclaimed. A nil item is never a member.
func (s *Set[T]) Contains(item *T) bool {
	if item == nil {
		return false
	}
	_, ok := s.items[weak.Make(item)]
	return ok
}

// Len returns the number of live members. Entries whose referent has
// been reclaimed are not counted.
func (s *Set[T]) Len() int {
	n := 0
	for ptr := range s.items {
		if ptr.Value() != nil {
			n++
		}
	}
	return n
}
