/*
Copyright © 2026 the erica authors.
This file is part of erica.

erica is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

erica is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with erica.  If not, see <http://www.gnu.org/licenses/>.
*/

package erica

// OrderedSet is a set of strings that remembers the order in which
// its members were first added.
type OrderedSet struct {
	order []string
	index map[string]int
}

// NewOrderedSet returns a set holding the given members, in order,
// with duplicates dropped.
func NewOrderedSet(members ...string) *OrderedSet {
	s := &OrderedSet{index: make(map[string]int)}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add adds m to the set. Adding an existing member is a no-op.
func (s *OrderedSet) Add(m string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[m]; ok {
		return
	}
	s.index[m] = len(s.order)
	s.order = append(s.order, m)
}

// Contains reports whether m is a member of the set.
func (s *OrderedSet) Contains(m string) bool {
	_, ok := s.index[m]
	return ok
}

// Len returns the number of members.
func (s *OrderedSet) Len() int { return len(s.order) }

// Slice returns a copy of the members in insertion order.
func (s *OrderedSet) Slice() []string {
	o := make([]string, len(s.order))
	copy(o, s.order)
	return o
}

// Clone returns an independent copy of s.
func (s *OrderedSet) Clone() *OrderedSet {
	return NewOrderedSet(s.order...)
}
