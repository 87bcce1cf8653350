// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgl

import "github.com/gogpu/glkit"

type locKey struct {
	program glkit.Program
	name    string
}

// locationTable maps uniform location objects to small integer handles.
// Handles released when a program is relinked or deleted are reused.
type locationTable[V any] struct {
	slots []locSlot[V]
	index map[locKey]glkit.UniformLocation
	free  []glkit.UniformLocation
}

type locSlot[V any] struct {
	value V
	live  bool
}

func newLocationTable[V any]() *locationTable[V] {
	return &locationTable[V]{index: make(map[locKey]glkit.UniformLocation)}
}

// lookup returns the handle of name in p, if it is cached.
func (t *locationTable[V]) lookup(p glkit.Program, name string) (glkit.UniformLocation, bool) {
	loc, ok := t.index[locKey{program: p, name: name}]
	return loc, ok
}

// add stores v as the location of name in p and returns its handle.
func (t *locationTable[V]) add(p glkit.Program, name string, v V) glkit.UniformLocation {
	var loc glkit.UniformLocation
	if n := len(t.free); n > 0 {
		loc = t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[loc] = locSlot[V]{value: v, live: true}
	} else {
		loc = glkit.UniformLocation(len(t.slots))
		t.slots = append(t.slots, locSlot[V]{value: v, live: true})
	}
	t.index[locKey{program: p, name: name}] = loc
	return loc
}

// get returns the value behind loc. ok is false for a released or unknown
// handle.
func (t *locationTable[V]) get(loc glkit.UniformLocation) (v V, ok bool) {
	if loc < 0 || int(loc) >= len(t.slots) || !t.slots[loc].live {
		return v, false
	}
	return t.slots[loc].value, true
}

// forget releases every handle of p.
func (t *locationTable[V]) forget(p glkit.Program) {
	for key, loc := range t.index {
		if key.program != p {
			continue
		}
		t.slots[loc] = locSlot[V]{}
		t.free = append(t.free, loc)
		delete(t.index, key)
	}
}

// live returns the number of handles in use.
func (t *locationTable[V]) live() int { return len(t.index) }

// size returns the number of slots ever allocated.
func (t *locationTable[V]) size() int { return len(t.slots) }
