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
	"github.com/uptrace/bun"
)

// Qualifier controls how column references are rendered.
type Qualifier int

const (
	// Qualified renders "alias"."column".
	Qualified Qualifier = iota
	// Unqualified renders "column" only, for single-table UPDATE/DELETE statements.
	Unqualified
)

// Entity names a table together with the alias it is queried under.
type Entity struct {
	Table string
	Alias string
}

// NewEntity returns an entity for the given table and alias.
func NewEntity(table, alias string) Entity {
	return Entity{Table: table, Alias: alias}
}

// Path returns a reference to one column of the entity.
func (e Entity) Path(column string) Path {
	return Path{Entity: e, Column: column}
}

func (e Entity) String() string {
	if e.Alias == "" || e.Alias == e.Table {
		return e.Table
	}
	return e.Table + " " + e.Alias
}

// Path addresses a single column of an entity.
type Path struct {
	Entity Entity
	Column string
}

// As projects the path under a result column name.
func (p Path) As(name string) Column {
	return Column{Path: p, As: name}
}

// Asc orders ascending by this path.
func (p Path) Asc() Order { return Order{Path: p} }

// Desc orders descending by this path.
func (p Path) Desc() Order { return Order{Path: p, Desc: true} }

// IsNull matches rows where the column is NULL.
func (p Path) IsNull() Predicate { return NullCheck{Path: p} }

// IsNotNull matches rows where the column is not NULL.
func (p Path) IsNotNull() Predicate { return NullCheck{Path: p, Not: true} }

// EqPath matches rows where both columns are equal.
func (p Path) EqPath(o Path) Predicate {
	return ColumnComparison{Left: p, Op: OpEq, Right: o}
}

// Ident returns the qualified column identifier of p for raw bun expressions.
func Ident(p Path) bun.Ident { return p.ident(Qualified) }

func (p Path) ident(q Qualifier) bun.Ident {
	if q == Unqualified || p.Entity.Alias == "" {
		return bun.Ident(p.Column)
	}
	return bun.Ident(p.Entity.Alias + "." + p.Column)
}

func (p Path) String() string {
	if p.Entity.Alias == "" {
		return p.Column
	}
	return p.Entity.Alias + "." + p.Column
}

// StringPath is a text column.
type StringPath struct {
	Path
}

// NewStringPath declares a text column of e.
func NewStringPath(e Entity, column string) StringPath {
	return StringPath{Path: e.Path(column)}
}

func (p StringPath) Eq(v string) Predicate { return Comparison{Path: p.Path, Op: OpEq, Value: v} }
func (p StringPath) Ne(v string) Predicate { return Comparison{Path: p.Path, Op: OpNe, Value: v} }
func (p StringPath) EqPath(o StringPath) Predicate {
	return ColumnComparison{Left: p.Path, Op: OpEq, Right: o.Path}
}

func (p StringPath) In(vs ...string) Predicate {
	values := make([]any, len(vs))
	for i, v := range vs {
		values[i] = v
	}
	return In{Path: p.Path, Values: values}
}

// Number is the set of Go types usable as numeric column values.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberPath is a numeric column holding values of type N.
type NumberPath[N Number] struct {
	Path
}

// NewNumberPath declares a numeric column of e.
func NewNumberPath[N Number](e Entity, column string) NumberPath[N] {
	return NumberPath[N]{Path: e.Path(column)}
}

func (p NumberPath[N]) Eq(v N) Predicate { return Comparison{Path: p.Path, Op: OpEq, Value: v} }
func (p NumberPath[N]) Ne(v N) Predicate { return Comparison{Path: p.Path, Op: OpNe, Value: v} }
func (p NumberPath[N]) Gt(v N) Predicate { return Comparison{Path: p.Path, Op: OpGt, Value: v} }
func (p NumberPath[N]) Goe(v N) Predicate { return Comparison{Path: p.Path, Op: OpGoe, Value: v} }
func (p NumberPath[N]) Lt(v N) Predicate { return Comparison{Path: p.Path, Op: OpLt, Value: v} }
func (p NumberPath[N]) Loe(v N) Predicate { return Comparison{Path: p.Path, Op: OpLoe, Value: v} }

// Between is inclusive on both ends.
func (p NumberPath[N]) Between(lo, hi N) Predicate {
	return Between{Path: p.Path, Lo: lo, Hi: hi}
}

func (p NumberPath[N]) EqPath(o NumberPath[N]) Predicate {
	return ColumnComparison{Left: p.Path, Op: OpEq, Right: o.Path}
}

func (p NumberPath[N]) In(vs ...N) Predicate {
	values := make([]any, len(vs))
	for i, v := range vs {
		values[i] = v
	}
	return In{Path: p.Path, Values: values}
}
