// Package htlist contains an ordered sequence of items,
// used to assemble the input of a hash tree
// and to hold the steps of a proof.
package htlist

import (
	"fmt"
	"iter"
	"strings"
)

// List is a singly linked sequence with stable insertion order.
//
// Appending at either end is constant time.
// List is not safe for concurrent use;
// it is intended to be fully built before being handed to a consumer.
type List[T any] struct {
	head, tail *node[T]
	size       int

	// Incremented on every mutation,
	// so that iteration can detect modification underneath it.
	mods uint64

	eq func(a, b T) bool
}

type node[T any] struct {
	v    T
	next *node[T]
}

// New returns an empty list which uses eq to match values in [*List.Remove].
func New[T any](eq func(a, b T) bool) *List[T] {
	if eq == nil {
		panic(fmt.Errorf("BUG: htlist.New requires a non-nil equality function"))
	}
	return &List[T]{eq: eq}
}

// NewComparable returns an empty list of comparable values,
// matched with == in [*List.Remove].
func NewComparable[T comparable]() *List[T] {
	return New(func(a, b T) bool { return a == b })
}

// From returns a list holding vs in order.
func From[T any](eq func(a, b T) bool, vs ...T) *List[T] {
	l := New(eq)
	for _, v := range vs {
		l.PushBack(v)
	}
	return l
}

// Len reports the number of values in the list.
func (l *List[T]) Len() int {
	return l.size
}

// PushFront inserts v at the start of the list.
func (l *List[T]) PushFront(v T) {
	n := &node[T]{v: v, next: l.head}
	if l.size == 0 {
		l.tail = n
	}
	l.head = n
	l.size++
	l.mods++
}

// PushBack appends v at the end of the list.
func (l *List[T]) PushBack(v T) {
	n := &node[T]{v: v}
	if l.size == 0 {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
	l.mods++
}

// Remove removes the first value matching v.
// It reports whether a value was removed.
func (l *List[T]) Remove(v T) bool {
	if l.size == 0 {
		return false
	}

	if l.eq(l.head.v, v) {
		l.head = l.head.next
		if l.head == nil {
			l.tail = nil
		}
		l.size--
		l.mods++
		return true
	}

	// prev.next is the candidate.
	for prev := l.head; prev.next != nil; prev = prev.next {
		if !l.eq(prev.next.v, v) {
			continue
		}

		prev.next = prev.next.next
		if prev.next == nil {
			l.tail = prev
		}
		l.size--
		l.mods++
		return true
	}

	return false
}

// All returns an iterator over the values in insertion order.
//
// The iteration panics if the list is modified
// before the iteration completes.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		expMods := l.mods
		for n := l.head; n != nil; n = n.next {
			if !yield(n.v) {
				return
			}
			if l.mods != expMods {
				panic(fmt.Errorf(
					"BUG: list modified during iteration (%d modifications)",
					l.mods-expMods,
				))
			}
		}
	}
}

// Values returns a newly allocated slice of the values in insertion order.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.size)
	for v := range l.All() {
		out = append(out, v)
	}
	return out
}

// String renders one "Data: <value>" line per value.
// An empty list renders as the empty string.
func (l *List[T]) String() string {
	var b strings.Builder
	for v := range l.All() {
		fmt.Fprintf(&b, "Data: %v\n", v)
	}
	return b.String()
}
