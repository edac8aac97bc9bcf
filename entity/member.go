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

import (
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tomoncle/querydsl/database"
)

// Member belongs to at most one team through TeamID. Team is only populated
// when a query fetch-joins the relation.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID       int64   `bun:"id,pk,autoincrement" json:"id"`
	Username *string `bun:"username" json:"username"`
	Age      int     `bun:"age,notnull" json:"age"`
	TeamID   *int64  `bun:"team_id" json:"team_id"`
	Team     *Team   `bun:"rel:belongs-to,join:team_id=id" json:"team,omitempty"`
}

// NewMember returns an unsaved member. A nil team leaves the member teamless.
func NewMember(username string, age int, team *Team) *Member {
	m := &Member{Username: &username, Age: age}
	m.ChangeTeam(team)
	return m
}

// ChangeTeam points the member at team, which must already be persisted.
func (m *Member) ChangeTeam(team *Team) {
	if team == nil {
		m.TeamID = nil
		m.Team = nil
		return
	}
	id := team.ID
	m.TeamID = &id
	m.Team = team
}

// Name returns the username, or the empty string when it is NULL.
func (m *Member) Name() string {
	if m.Username == nil {
		return ""
	}
	return *m.Username
}

func (m *Member) String() string {
	return fmt.Sprintf("Member(id=%d, username=%s, age=%d)", m.ID, m.Name(), m.Age)
}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Member)(nil), 20))
}
