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
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Operator is a binary comparison operator.
type Operator string

const (
	OpEq  Operator = "="
	OpNe  Operator = "<>"
	OpGt  Operator = ">"
	OpGoe Operator = ">="
	OpLt  Operator = "<"
	OpLoe Operator = "<="
)

// Predicate is a boolean expression evaluated per row. Implementations are
// plain values so that equal inputs build structurally equal trees.
type Predicate interface {
	appendSQL(w *sqlWriter)
	String() string
}

type sqlWriter struct {
	qualifier Qualifier
	sb        strings.Builder
	args      []any
}

func (w *sqlWriter) write(s string, args ...any) {
	w.sb.WriteString(s)
	w.args = append(w.args, args...)
}

// SQL renders p as a bun query template ("?" placeholders) and its arguments.
// A match-all predicate renders as the empty string.
func SQL(p Predicate, q Qualifier) (string, []any) {
	if IsMatchAll(p) {
		return "", nil
	}
	w := &sqlWriter{qualifier: q}
	p.appendSQL(w)
	return w.sb.String(), w.args
}

// IsMatchAll reports whether p places no restriction on rows.
func IsMatchAll(p Predicate) bool {
	if p == nil {
		return true
	}
	c, ok := p.(Conjunction)
	return ok && len(c.Terms) == 0
}

// MatchAll returns the empty conjunction.
func MatchAll() Predicate { return Conjunction{} }

// Comparison compares a column against a literal value.
type Comparison struct {
	Path  Path
	Op    Operator
	Value any
}

func (c Comparison) appendSQL(w *sqlWriter) {
	w.write("? "+string(c.Op)+" ?", c.Path.ident(w.qualifier), c.Value)
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Path, c.Op, formatValue(c.Value))
}

// ColumnComparison compares two columns, e.g. a join condition.
type ColumnComparison struct {
	Left  Path
	Op    Operator
	Right Path
}

func (c ColumnComparison) appendSQL(w *sqlWriter) {
	w.write("? "+string(c.Op)+" ?", c.Left.ident(w.qualifier), c.Right.ident(w.qualifier))
}

func (c ColumnComparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Left, c.Op, c.Right)
}

// Between matches Lo <= column <= Hi.
type Between struct {
	Path Path
	Lo   any
	Hi   any
}

func (b Between) appendSQL(w *sqlWriter) {
	w.write("? BETWEEN ? AND ?", b.Path.ident(w.qualifier), b.Lo, b.Hi)
}

func (b Between) String() string {
	return fmt.Sprintf("%s BETWEEN %s AND %s", b.Path, formatValue(b.Lo), formatValue(b.Hi))
}

// In matches when the column equals any of Values. An empty list matches nothing.
type In struct {
	Path   Path
	Values []any
}

func (in In) appendSQL(w *sqlWriter) {
	if len(in.Values) == 0 {
		w.write("1 = 0")
		return
	}
	w.write("? IN (?)", in.Path.ident(w.qualifier), bun.In(in.Values))
}

func (in In) String() string {
	parts := make([]string, len(in.Values))
	for i, v := range in.Values {
		parts[i] = formatValue(v)
	}
	return fmt.Sprintf("%s IN (%s)", in.Path, strings.Join(parts, ", "))
}

// NullCheck is IS NULL, or IS NOT NULL when Not is set.
type NullCheck struct {
	Path Path
	Not  bool
}

func (n NullCheck) appendSQL(w *sqlWriter) {
	if n.Not {
		w.write("? IS NOT NULL", n.Path.ident(w.qualifier))
		return
	}
	w.write("? IS NULL", n.Path.ident(w.qualifier))
}

func (n NullCheck) String() string {
	if n.Not {
		return n.Path.String() + " IS NOT NULL"
	}
	return n.Path.String() + " IS NULL"
}

// Conjunction is the AND of Terms. With no terms it matches every row.
type Conjunction struct {
	Terms []Predicate
}

func (c Conjunction) appendSQL(w *sqlWriter) {
	appendJoined(w, c.Terms, " AND ", "1 = 1")
}

func (c Conjunction) String() string {
	return joinStrings(c.Terms, " AND ", "TRUE")
}

// Disjunction is the OR of Terms. With no terms it matches no row.
type Disjunction struct {
	Terms []Predicate
}

func (d Disjunction) appendSQL(w *sqlWriter) {
	appendJoined(w, d.Terms, " OR ", "1 = 0")
}

func (d Disjunction) String() string {
	return joinStrings(d.Terms, " OR ", "FALSE")
}

// And combines the non-nil predicates with AND.
func And(ps ...Predicate) Predicate {
	var terms []Predicate
	for _, p := range ps {
		if p != nil {
			terms = append(terms, p)
		}
	}
	return Conjunction{Terms: terms}
}

// Or combines the non-nil predicates with OR.
func Or(ps ...Predicate) Predicate {
	var terms []Predicate
	for _, p := range ps {
		if p != nil {
			terms = append(terms, p)
		}
	}
	return Disjunction{Terms: terms}
}

func appendJoined(w *sqlWriter, terms []Predicate, sep, empty string) {
	switch len(terms) {
	case 0:
		w.write(empty)
	case 1:
		terms[0].appendSQL(w)
	default:
		for i, t := range terms {
			if i > 0 {
				w.write(sep)
			}
			w.write("(")
			t.appendSQL(w)
			w.write(")")
		}
	}
}

func joinStrings(terms []Predicate, sep, empty string) string {
	switch len(terms) {
	case 0:
		return empty
	case 1:
		return terms[0].String()
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = "(" + t.String() + ")"
	}
	return strings.Join(parts, sep)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
