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

package search

import (
	"github.com/tomoncle/querydsl/query"
)

// MemberWhereBuilder builds a member filter incrementally. Each Add method is
// a no-op for an absent value, following the same inclusion rules as
// BuildSearchQuery.
type MemberWhereBuilder struct {
	b *query.BooleanBuilder
}

// NewMemberWhereBuilder returns an empty builder.
func NewMemberWhereBuilder() *MemberWhereBuilder {
	return &MemberWhereBuilder{b: query.NewBooleanBuilder()}
}

func (w *MemberWhereBuilder) Username(username *string) *MemberWhereBuilder {
	w.b.AndIf(usernameEq(username))
	return w
}

func (w *MemberWhereBuilder) TeamName(teamName *string) *MemberWhereBuilder {
	w.b.AndIf(teamNameEq(teamName))
	return w
}

func (w *MemberWhereBuilder) AgeGoe(age *int) *MemberWhereBuilder {
	w.b.AndIf(ageGoe(age))
	return w
}

func (w *MemberWhereBuilder) AgeLoe(age *int) *MemberWhereBuilder {
	w.b.AndIf(ageLoe(age))
	return w
}

// Age adds an exact age match.
func (w *MemberWhereBuilder) Age(age *int) *MemberWhereBuilder {
	w.b.AndIf(query.Present(age, member.Age.Eq))
	return w
}

// Predicate returns the accumulated filter, match-all when nothing was added.
func (w *MemberWhereBuilder) Predicate() query.Predicate {
	return w.b.Predicate()
}

// FromCondition feeds every field of cond through the builder. The result is
// structurally equal to Where(cond).
func FromCondition(cond MemberSearchCondition) query.Predicate {
	p := NewMemberWhereBuilder().
		Username(cond.Username).
		TeamName(cond.TeamName).
		AgeGoe(cond.AgeGoe).
		AgeLoe(cond.AgeLoe).
		Predicate()
	if c, ok := p.(query.Conjunction); ok {
		return c
	}
	return query.Conjunction{Terms: []query.Predicate{p}}
}

// UsernameAndAge is the username/exact-age filter in declarative form.
func UsernameAndAge(username *string, age *int) query.Predicate {
	return query.AllOf(usernameEq(username), query.Present(age, member.Age.Eq))
}
