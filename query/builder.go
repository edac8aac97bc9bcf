/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package query

import (
	"strings"
	"unicode"
)

// Optional is a filter that may or may not take part in a query.
type Optional struct {
	pred    Predicate
	present bool
}

// Some wraps a predicate that always takes part.
func Some(p Predicate) Optional {
	return Optional{pred: p, present: p != nil}
}

// None is the absent filter.
func None() Optional { return Optional{} }

// Get returns the predicate and whether it is present.
func (o Optional) Get() (Predicate, bool) { return o.pred, o.present }

// When builds the predicate only if cond holds.
func When(cond bool, fn func() Predicate) Optional {
	if !cond {
		return None()
	}
	return Some(fn())
}

// Present builds the predicate from *v when v is non-nil.
func Present[T any](v *T, fn func(T) Predicate) Optional {
	if v == nil {
		return None()
	}
	return Some(fn(*v))
}

// HasText builds the predicate from *s when s is non-nil and not blank.
func HasText(s *string, fn func(string) Predicate) Optional {
	if !IsText(s) {
		return None()
	}
	return Some(fn(*s))
}

// IsText reports whether s holds at least one non-whitespace character.
// No-break spaces (U+00A0, U+2007, U+202F) and NEL (U+0085) count as text;
// the information separators U+001C..U+001F count as whitespace.
func IsText(s *string) bool {
	return s != nil && strings.IndexFunc(*s, func(r rune) bool { return !isBlank(r) }) >= 0
}

func isBlank(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f', '\u0085':
		return false
	case '\u001c', '\u001d', '\u001e', '\u001f':
		return true
	}
	return unicode.IsSpace(r)
}

// AllOf folds the present filters into one conjunction, in argument order.
// With nothing present the result is the match-all predicate.
func AllOf(opts ...Optional) Predicate {
	var terms []Predicate
	for _, o := range opts {
		if p, ok := o.Get(); ok {
			terms = append(terms, p)
		}
	}
	return Conjunction{Terms: terms}
}

// BooleanBuilder accumulates a predicate step by step.
type BooleanBuilder struct {
	pred Predicate
}

// NewBooleanBuilder returns an empty builder.
func NewBooleanBuilder() *BooleanBuilder {
	return &BooleanBuilder{}
}

// And appends p with AND. A nil p is ignored.
func (b *BooleanBuilder) And(p Predicate) *BooleanBuilder {
	if p == nil {
		return b
	}
	switch cur := b.pred.(type) {
	case nil:
		b.pred = p
	case Conjunction:
		terms := make([]Predicate, 0, len(cur.Terms)+1)
		terms = append(terms, cur.Terms...)
		b.pred = Conjunction{Terms: append(terms, p)}
	default:
		b.pred = Conjunction{Terms: []Predicate{cur, p}}
	}
	return b
}

// AndIf appends o with AND when it is present.
func (b *BooleanBuilder) AndIf(o Optional) *BooleanBuilder {
	if p, ok := o.Get(); ok {
		return b.And(p)
	}
	return b
}

// Or combines everything accumulated so far with p using OR.
func (b *BooleanBuilder) Or(p Predicate) *BooleanBuilder {
	if p == nil {
		return b
	}
	if b.pred == nil {
		b.pred = p
		return b
	}
	b.pred = Disjunction{Terms: []Predicate{b.pred, p}}
	return b
}

// HasValue reports whether any predicate was added.
func (b *BooleanBuilder) HasValue() bool { return b.pred != nil }

// Predicate returns the accumulated predicate, or match-all when empty.
func (b *BooleanBuilder) Predicate() Predicate {
	if b.pred == nil {
		return MatchAll()
	}
	return b.pred
}
