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

// ApplySelect renders d onto q. q must not carry a model or table of its own.
func ApplySelect(q *bun.SelectQuery, d Descriptor) *bun.SelectQuery {
	q = q.TableExpr("? AS ?", bun.Ident(d.From.Table), bun.Ident(d.From.Alias))
	for _, c := range d.Columns {
		if c.As == "" {
			q = q.ColumnExpr("?", c.Path.ident(Qualified))
			continue
		}
		q = q.ColumnExpr("? AS ?", c.Path.ident(Qualified), bun.Ident(c.As))
	}
	q = ApplyJoins(q, d.Joins...)
	q = q.ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
		return ApplyWhere(qb, d.Where, Qualified)
	})
	q = ApplyOrder(q, d.Orders...)
	if d.Page != nil {
		q = q.Offset(d.Page.GetOffset()).Limit(d.Page.GetLimit())
	}
	return q
}

// ApplyJoins appends the joins in order.
func ApplyJoins(q *bun.SelectQuery, joins ...Join) *bun.SelectQuery {
	for _, j := range joins {
		q = q.Join(string(j.Kind)+" ? AS ?", bun.Ident(j.Target.Table), bun.Ident(j.Target.Alias))
		if s, args := SQL(j.On, Qualified); s != "" {
			q = q.JoinOn(s, args...)
		}
	}
	return q
}

// ApplyWhere adds p as a WHERE condition. Match-all adds nothing.
func ApplyWhere(qb bun.QueryBuilder, p Predicate, q Qualifier) bun.QueryBuilder {
	if s, args := SQL(p, q); s != "" {
		return qb.Where(s, args...)
	}
	return qb
}

// ApplyWhereAll is ApplyWhere for UPDATE and DELETE statements, which bun
// refuses to run without a WHERE clause: match-all renders as "1 = 1".
func ApplyWhereAll(qb bun.QueryBuilder, p Predicate, q Qualifier) bun.QueryBuilder {
	if IsMatchAll(p) {
		return qb.Where("1 = 1")
	}
	return ApplyWhere(qb, p, q)
}

// ApplyOrder appends ORDER BY keys. Null placement is expressed as an extra
// "IS NULL" key so it works on dialects without NULLS FIRST/LAST.
func ApplyOrder(q *bun.SelectQuery, orders ...Order) *bun.SelectQuery {
	for _, o := range orders {
		id := o.Path.ident(Qualified)
		switch o.Nulls {
		case NullsFirst:
			q = q.OrderExpr("? IS NOT NULL", id)
		case NullsLast:
			q = q.OrderExpr("? IS NULL", id)
		}
		if o.Desc {
			q = q.OrderExpr("? DESC", id)
		} else {
			q = q.OrderExpr("? ASC", id)
		}
	}
	return q
}
