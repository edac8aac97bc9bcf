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
	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/types"
)

var (
	member = entity.QMember
	team   = entity.QTeam
)

// BuildSearchQuery translates cond into a select descriptor: the AND of the
// populated filters, a left join from member to team, the MemberTeamDto
// projection and, when page is non-nil, its offset/limit window. No ordering
// is added; callers layer it with Descriptor.WithOrder.
//
// Blank text fields count as absent. Contradictory bounds are not rejected and
// simply match no rows.
func BuildSearchQuery(cond MemberSearchCondition, page *types.PageRequest) query.Descriptor {
	d := query.Descriptor{
		From: member.Entity,
		Joins: []query.Join{{
			Kind:   query.LeftJoin,
			Target: team.Entity,
			On:     member.TeamID.EqPath(team.ID),
		}},
		Where:   Where(cond),
		Columns: memberTeamColumns(),
	}
	return d.WithPage(page)
}

// Where is the filter part of BuildSearchQuery, reusable by count or bulk queries.
func Where(cond MemberSearchCondition) query.Predicate {
	return query.AllOf(
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageGoe(cond.AgeGoe),
		ageLoe(cond.AgeLoe),
	)
}

func memberTeamColumns() []query.Column {
	return []query.Column{
		member.ID.As("member_id"),
		member.Username.As("username"),
		member.Age.As("age"),
		team.ID.As("team_id"),
		team.Name.As("team_name"),
	}
}

func usernameEq(username *string) query.Optional {
	return query.HasText(username, member.Username.Eq)
}

func teamNameEq(teamName *string) query.Optional {
	return query.HasText(teamName, team.Name.Eq)
}

func ageGoe(age *int) query.Optional {
	return query.Present(age, member.Age.Goe)
}

func ageLoe(age *int) query.Optional {
	return query.Present(age, member.Age.Loe)
}

// AgeBetween combines both bounds; a missing bound is left open.
func AgeBetween(goe, loe *int) query.Predicate {
	return query.AllOf(ageGoe(goe), ageLoe(loe))
}
