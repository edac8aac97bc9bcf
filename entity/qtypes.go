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

package entity

import "github.com/tomoncle/querydsl/query"

// QTeamType exposes typed column paths of the teams table.
type QTeamType struct {
	query.Entity
	ID   query.NumberPath[int64]
	Name query.StringPath
}

// QMemberType exposes typed column paths of the members table.
type QMemberType struct {
	query.Entity
	ID       query.NumberPath[int64]
	Username query.StringPath
	Age      query.NumberPath[int]
	TeamID   query.NumberPath[int64]
}

// NewQTeam declares the teams table under alias. Aliases must be unique per query.
func NewQTeam(alias string) QTeamType {
	e := query.NewEntity("teams", alias)
	return QTeamType{
		Entity: e,
		ID:     query.NewNumberPath[int64](e, "id"),
		Name:   query.NewStringPath(e, "name"),
	}
}

// NewQMember declares the members table under alias, e.g. for a self-join.
func NewQMember(alias string) QMemberType {
	e := query.NewEntity("members", alias)
	return QMemberType{
		Entity:   e,
		ID:       query.NewNumberPath[int64](e, "id"),
		Username: query.NewStringPath(e, "username"),
		Age:      query.NewNumberPath[int](e, "age"),
		TeamID:   query.NewNumberPath[int64](e, "team_id"),
	}
}

// Default aliases match the bun model aliases and relation names, so these
// paths can be used against Model queries as well.
var (
	QMember = NewQMember("m")
	QTeam   = NewQTeam("team")
)
