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

	"github.com/tomoncle/querydsl/types"
)

// JoinKind is the SQL join operator.
type JoinKind string

const (
	InnerJoin JoinKind = "JOIN"
	LeftJoin  JoinKind = "LEFT JOIN"
)

// Join attaches Target to the query using the On condition.
type Join struct {
	Kind   JoinKind
	Target Entity
	On     Predicate
}

// Column is one projected result column.
type Column struct {
	Path Path
	As   string
}

// Descriptor describes a select statement before execution: source entity,
// joins, filter, projection, ordering and the optional page window.
type Descriptor struct {
	From    Entity
	Joins   []Join
	Where   Predicate
	Columns []Column
	Orders  []Order
	Page    *types.PageRequest
}

// WithOrder returns a copy of d with orders appended after any existing ones.
func (d Descriptor) WithOrder(orders ...Order) Descriptor {
	merged := make([]Order, 0, len(d.Orders)+len(orders))
	merged = append(merged, d.Orders...)
	d.Orders = append(merged, orders...)
	return d
}

// WithPage returns a copy of d restricted to the page window.
func (d Descriptor) WithPage(page *types.PageRequest) Descriptor {
	if page == nil {
		d.Page = nil
		return d
	}
	p := *page
	d.Page = &p
	return d
}

func (d Descriptor) String() string {
	var sb strings.Builder
	cols := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = c.Path.String()
		if c.As != "" {
			cols[i] += " AS " + c.As
		}
	}
	if len(cols) == 0 {
		cols = append(cols, "*")
	}
	sb.WriteString("SELECT " + strings.Join(cols, ", ") + " FROM " + d.From.String())
	for _, j := range d.Joins {
		sb.WriteString(fmt.Sprintf(" %s %s ON %s", j.Kind, j.Target, j.On))
	}
	if !IsMatchAll(d.Where) {
		sb.WriteString(" WHERE " + d.Where.String())
	}
	if len(d.Orders) > 0 {
		keys := make([]string, len(d.Orders))
		for i, o := range d.Orders {
			keys[i] = o.String()
		}
		sb.WriteString(" ORDER BY " + strings.Join(keys, ", "))
	}
	if d.Page != nil {
		sb.WriteString(fmt.Sprintf(" OFFSET %d LIMIT %d", d.Page.GetOffset(), d.Page.GetLimit()))
	}
	return sb.String()
}
