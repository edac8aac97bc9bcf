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

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/entity"
)

// newTestDB opens a private in-memory sqlite database with all registered
// tables created.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()
	manager := database.NewDatabaseManager(&database.ConnectionConfig{
		Type:           "sqlite",
		DBName:         database.MemoryDBName,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, manager.Connect(ctx))
	t.Cleanup(func() { _ = manager.Disconnect() })
	require.NoError(t, manager.CreateSchema(ctx, database.SchemaConfig{WithForeignKeys: true}))
	return manager.GetDB()
}

type fixture struct {
	teamA, teamB *entity.Team
	members      []*entity.Member
}

// seedFixture stores member1..member4 aged 10..40, the first two in teamA and
// the others in teamB.
func seedFixture(t *testing.T, db *bun.DB) fixture {
	t.Helper()
	ctx := context.Background()
	f := fixture{teamA: entity.NewTeam("teamA"), teamB: entity.NewTeam("teamB")}
	require.NoError(t, NewRepository[entity.Team](db).Create(ctx, f.teamA, f.teamB))
	f.members = []*entity.Member{
		entity.NewMember("member1", 10, f.teamA),
		entity.NewMember("member2", 20, f.teamA),
		entity.NewMember("member3", 30, f.teamB),
		entity.NewMember("member4", 40, f.teamB),
	}
	require.NoError(t, NewRepository[entity.Member](db).Create(ctx, f.members...))
	return f
}

func usernamesOf(rows []entity.MemberTeamDto) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		if r.Username != nil {
			names[i] = *r.Username
		}
	}
	return names
}

func memberNames(members []*entity.Member) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name()
	}
	return names
}
