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

// MemberTeamDto is the flattened member/team search row.
type MemberTeamDto struct {
	MemberID int64   `bun:"member_id" json:"memberId"`
	Username *string `bun:"username" json:"username"`
	Age      int     `bun:"age" json:"age"`
	TeamID   *int64  `bun:"team_id" json:"teamId"`
	TeamName *string `bun:"team_name" json:"teamName"`
}

// MemberDto is the username/age projection.
type MemberDto struct {
	Username *string `bun:"username" json:"username"`
	Age      int     `bun:"age" json:"age"`
}

// AgeStats aggregates ages over a set of members.
type AgeStats struct {
	Count int64   `bun:"count" json:"count"`
	Sum   int64   `bun:"sum" json:"sum"`
	Avg   float64 `bun:"avg" json:"avg"`
	Max   int     `bun:"max" json:"max"`
	Min   int     `bun:"min" json:"min"`
}

// TeamAgeAverage is the average member age of one team.
type TeamAgeAverage struct {
	TeamName string  `bun:"team_name" json:"teamName"`
	AvgAge   float64 `bun:"avg_age" json:"avgAge"`
}
