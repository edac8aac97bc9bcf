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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/search"
	"github.com/tomoncle/querydsl/types"
)

func TestSearchByUsername(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewMemberRepository(db)

	rows, err := repo.Search(context.Background(), search.MemberSearchCondition{Username: search.Str("member1")})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	teamName := "teamA"
	assert.Equal(t, entity.MemberTeamDto{
		MemberID: f.members[0].ID,
		Username: search.Str("member1"),
		Age:      10,
		TeamID:   &f.teamA.ID,
		TeamName: &teamName,
	}, rows[0])
}

func TestSearchByTeamAndAgeGoe(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)

	rows, err := repo.Search(context.Background(), search.MemberSearchCondition{
		TeamName: search.Str("teamB"),
		AgeGoe:   search.Int(25),
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"member3", "member4"}, usernamesOf(rows))
}

func TestSearchPage(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)

	rows, err := repo.SearchPage(context.Background(), search.MemberSearchCondition{},
		types.NewPageRequest(1, 2), entity.QMember.Age.Asc())
	require.NoError(t, err)
	assert.Equal(t, []string{"member2", "member3"}, usernamesOf(rows))
}

func TestSearchBlankUsernameMatchesAll(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)

	for _, blank := range []string{"", "   ", "\t"} {
		rows, err := repo.Search(context.Background(), search.MemberSearchCondition{Username: search.Str(blank)})
		require.NoError(t, err)
		assert.Len(t, rows, 4, "username %q", blank)
	}
}

func TestSearchKeepsMembersWithoutTeam(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	ctx := context.Background()
	repo := NewMemberRepository(db)
	require.NoError(t, repo.Create(ctx, entity.NewMember("loner", 50, nil)))

	rows, err := repo.Search(ctx, search.MemberSearchCondition{})
	require.NoError(t, err)
	require.Len(t, rows, 5)

	rows, err = repo.Search(ctx, search.MemberSearchCondition{Username: search.Str("loner")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50, rows[0].Age)
	assert.Nil(t, rows[0].TeamID)
	assert.Nil(t, rows[0].TeamName)
}

func TestSearchAgeBounds(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	bounds := []*int{nil, search.Int(0), search.Int(10), search.Int(15), search.Int(20), search.Int(40), search.Int(50)}
	for _, goe := range bounds {
		for _, loe := range bounds {
			var want []string
			for _, m := range f.members {
				if (goe == nil || m.Age >= *goe) && (loe == nil || m.Age <= *loe) {
					want = append(want, m.Name())
				}
			}
			rows, err := repo.Search(ctx, search.MemberSearchCondition{AgeGoe: goe, AgeLoe: loe})
			require.NoError(t, err)
			if want == nil {
				assert.Empty(t, rows)
				continue
			}
			assert.ElementsMatch(t, want, usernamesOf(rows))
		}
	}
}

func TestSearchContradictoryBoundsIsEmpty(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)

	rows, err := NewMemberRepository(db).Search(context.Background(), search.MemberSearchCondition{
		AgeGoe: search.Int(30),
		AgeLoe: search.Int(20),
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchPagination(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	cond := search.MemberSearchCondition{AgeGoe: search.Int(20)}
	page, err := repo.SearchPagination(ctx, cond, types.NewPageRequestByNumber(2, 2), entity.QMember.Age.Asc())
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 40, page.Items[0].Age)

	empty, err := repo.SearchPagination(ctx, search.MemberSearchCondition{TeamName: search.Str("teamC")}, nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Empty(t, empty.Items)
}

func TestSearchErrorsPassThrough(t *testing.T) {
	db := newTestDB(t)
	_, err := db.NewDropTable().Model((*entity.Member)(nil)).Exec(context.Background())
	require.NoError(t, err)

	_, err = NewMemberRepository(db).Search(context.Background(), search.MemberSearchCondition{})
	require.Error(t, err)
	is, kind := database.IsSqlError(err)
	assert.True(t, is)
	assert.Equal(t, database.NoTableErr, kind)
}

func TestOrderNullsLast(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx,
		&entity.Member{Age: 100},
		entity.NewMember("member5", 100, nil),
		entity.NewMember("member6", 100, nil),
	))

	members, err := repo.List(ctx, entity.QMember.Age.Eq(100),
		entity.QMember.Age.Desc(), entity.QMember.Username.Asc().NullsLast())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "member5", members[0].Name())
	assert.Equal(t, "member6", members[1].Name())
	assert.Nil(t, members[2].Username)

	members, err = repo.List(ctx, entity.QMember.Age.Eq(100), entity.QMember.Username.Asc().NullsFirst())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Nil(t, members[0].Username)
}

func TestFindByTeam(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entity.NewMember("loner", 15, nil)))

	members, err := repo.FindByTeam(ctx, "teamA")
	require.NoError(t, err)
	assert.Equal(t, []string{"member1", "member2"}, memberNames(members))

	members, err = repo.FindByTeam(ctx, "teamC")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestFindMembersLoadsTeam(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewMemberRepository(db)

	members, err := repo.FindMembers(context.Background(), entity.QMember.Username.Eq("member3"))
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.NotNil(t, members[0].Team)
	assert.Equal(t, f.teamB.ID, members[0].Team.ID)
	assert.Equal(t, "teamB", members[0].Team.Name)

	members, err = repo.FindMembers(context.Background(), entity.QTeam.Name.Eq("teamA"), entity.QMember.Age.Desc())
	require.NoError(t, err)
	assert.Equal(t, []string{"member2", "member1"}, memberNames(members))
}

func TestFindByUsername(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	members, err := NewMemberRepository(db).FindByUsername(context.Background(), "member2")
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, f.members[1].ID, members[0].ID)
	assert.Equal(t, f.teamA.ID, *members[0].TeamID)
}

func TestFindDtos(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)

	dtos, err := NewMemberRepository(db).FindDtos(context.Background(),
		entity.QMember.Age.Between(15, 35), entity.QMember.Age.Asc())
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "member2", *dtos[0].Username)
	assert.Equal(t, 30, dtos[1].Age)
}

func TestBulkUpdateUsername(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	n, err := repo.BulkUpdateUsername(ctx, entity.QMember.Age.Lt(28), "guest")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	members, err := repo.FindByUsername(ctx, "guest")
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestBulkAgeArithmetic(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	n, err := repo.BulkAddAge(ctx, query.MatchAll(), 1)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)

	n, err = repo.BulkMultiplyAge(ctx, entity.QMember.Username.Eq("member1"), 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	dtos, err := repo.FindDtos(ctx, query.MatchAll(), entity.QMember.ID.Asc())
	require.NoError(t, err)
	ages := make([]int, len(dtos))
	for i, d := range dtos {
		ages[i] = d.Age
	}
	assert.Equal(t, []int{22, 21, 31, 41}, ages)
}

func TestBulkDelete(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	n, err := repo.BulkDelete(ctx, entity.QMember.Age.Gt(18))
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	remaining, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"member1"}, memberNames(remaining))

	n, err = repo.BulkDelete(ctx, query.MatchAll())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAgeStats(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()

	stats, err := repo.AgeStats(ctx, query.MatchAll())
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Count)
	assert.EqualValues(t, 100, stats.Sum)
	assert.InDelta(t, 25.0, stats.Avg, 1e-9)
	assert.Equal(t, 40, stats.Max)
	assert.Equal(t, 10, stats.Min)

	stats, err = repo.AgeStats(ctx, search.Where(search.MemberSearchCondition{TeamName: search.Str("teamB")}))
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Count)
	assert.EqualValues(t, 70, stats.Sum)
	assert.Equal(t, 30, stats.Min)

	stats, err = repo.AgeStats(ctx, entity.QMember.Age.Gt(100))
	require.NoError(t, err)
	assert.Equal(t, entity.AgeStats{}, *stats)

	// An unknown team matches nothing and still scans as zeros.
	stats, err = repo.AgeStats(ctx, search.Where(search.MemberSearchCondition{TeamName: search.Str("teamC")}))
	require.NoError(t, err)
	assert.Equal(t, entity.AgeStats{}, *stats)
}

func TestAverageAgeByTeam(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewMemberRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, entity.NewMember("loner", 99, nil)))

	rows, err := repo.AverageAgeByTeam(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "teamA", rows[0].TeamName)
	assert.InDelta(t, 15.0, rows[0].AvgAge, 1e-9)
	assert.Equal(t, "teamB", rows[1].TeamName)
	assert.InDelta(t, 35.0, rows[1].AvgAge, 1e-9)

	minAvg := 20.0
	rows, err = repo.AverageAgeByTeam(ctx, &minAvg)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "teamB", rows[0].TeamName)
}

func TestSeedSampleData(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	teams, members, err := SeedSampleData(ctx, db, 10)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	require.Len(t, members, 10)

	repo := NewMemberRepository(db)
	teamA, err := repo.FindByTeam(ctx, "teamA")
	require.NoError(t, err)
	assert.Len(t, teamA, 5)
	assert.Equal(t, "member0", teamA[0].Name())

	teamB, err := repo.FindByTeam(ctx, "teamB")
	require.NoError(t, err)
	assert.Len(t, teamB, 5)
	assert.Equal(t, 1, teamB[0].Age)

	_, _, err = SeedSampleData(ctx, db, -1)
	assert.Error(t, err)

	_, _, err = SeedSampleData(ctx, db, 10)
	assert.ErrorIs(t, err, ErrAlreadySeeded)
	n, err := repo.Count(ctx, query.MatchAll())
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestSeedSampleDataRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.NewDropTable().Model((*entity.Member)(nil)).Exec(ctx)
	require.NoError(t, err)

	_, _, err = SeedSampleData(ctx, db, 2)
	require.Error(t, err)

	n, err := NewRepository[entity.Team](db).Count(ctx, query.MatchAll())
	require.NoError(t, err)
	assert.Zero(t, n)
}
