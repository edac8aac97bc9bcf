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
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/search"
	"github.com/tomoncle/querydsl/types"
	"github.com/tomoncle/querydsl/utils"
)

var (
	qMember = entity.QMember
	qTeam   = entity.QTeam
)

// MemberRepository executes member queries. Driver and bun errors are
// returned unmodified.
type MemberRepository struct {
	Repository[entity.Member]
	db     *bun.DB
	logger database.Logger
}

// NewMemberRepository returns a member repository backed by db.
func NewMemberRepository(db *bun.DB) *MemberRepository {
	return &MemberRepository{
		Repository: NewRepository[entity.Member](db),
		db:         db,
		logger:     database.GetLogger(),
	}
}

// Search runs the member/team search for cond without paging or ordering.
func (r *MemberRepository) Search(ctx context.Context, cond search.MemberSearchCondition) ([]entity.MemberTeamDto, error) {
	return r.runSearch(ctx, search.BuildSearchQuery(cond, nil))
}

// SearchPage runs the search restricted to page, ordered by orders.
func (r *MemberRepository) SearchPage(ctx context.Context, cond search.MemberSearchCondition, page *types.PageRequest, orders ...query.Order) ([]entity.MemberTeamDto, error) {
	return r.runSearch(ctx, search.BuildSearchQuery(cond, page).WithOrder(orders...))
}

// SearchCount counts the rows Search would return.
func (r *MemberRepository) SearchCount(ctx context.Context, cond search.MemberSearchCondition) (int, error) {
	d := search.BuildSearchQuery(cond, nil)
	d.Columns = nil
	return query.ApplySelect(r.db.NewSelect(), d).Count(ctx)
}

// SearchPagination combines SearchPage with SearchCount. The page query is
// skipped when nothing matches.
func (r *MemberRepository) SearchPagination(ctx context.Context, cond search.MemberSearchCondition, page *types.PageRequest, orders ...query.Order) (*types.Pagination[entity.MemberTeamDto], error) {
	if page == nil {
		page = types.NewPageRequest(0, types.DefaultLimit)
	}
	pagination := types.NewDefaultPagination[entity.MemberTeamDto](page)
	total, err := r.SearchCount(ctx, cond)
	if err != nil || total == 0 {
		return pagination, err
	}
	rows, err := r.SearchPage(ctx, cond, page, orders...)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	for i := range rows {
		pagination.Items = append(pagination.Items, &rows[i])
	}
	return pagination, nil
}

func (r *MemberRepository) runSearch(ctx context.Context, d query.Descriptor) ([]entity.MemberTeamDto, error) {
	start := time.Now()
	rows := make([]entity.MemberTeamDto, 0)
	if err := query.ApplySelect(r.db.NewSelect(), d).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	r.logger.Debug("Member search", "query", d.String(), "rows", len(rows), "elapsed", utils.Elapsed(start))
	return rows, nil
}

// FindMembers loads members matching where together with their team in a
// single statement.
func (r *MemberRepository) FindMembers(ctx context.Context, where query.Predicate, orders ...query.Order) ([]*entity.Member, error) {
	members := make([]*entity.Member, 0)
	q := r.db.NewSelect().Model(&members).Relation("Team").
		ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
			return query.ApplyWhere(qb, where, query.Qualified)
		})
	if err := query.ApplyOrder(q, orders...).Scan(ctx); err != nil {
		return nil, err
	}
	return members, nil
}

// FindByUsername returns the members with exactly this username.
func (r *MemberRepository) FindByUsername(ctx context.Context, username string) ([]*entity.Member, error) {
	return r.List(ctx, qMember.Username.Eq(username), qMember.ID.Asc())
}

// FindByTeam returns the members of the named team using an inner join, so
// teamless members never appear.
func (r *MemberRepository) FindByTeam(ctx context.Context, teamName string) ([]*entity.Member, error) {
	members := make([]*entity.Member, 0)
	q := query.ApplyJoins(r.db.NewSelect().Model(&members), memberTeamJoin(query.InnerJoin))
	q = q.ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
		return query.ApplyWhere(qb, qTeam.Name.Eq(teamName), query.Qualified)
	})
	if err := query.ApplyOrder(q, qMember.ID.Asc()).Scan(ctx); err != nil {
		return nil, err
	}
	return members, nil
}

// FindDtos projects the members matching where onto username and age.
func (r *MemberRepository) FindDtos(ctx context.Context, where query.Predicate, orders ...query.Order) ([]entity.MemberDto, error) {
	d := query.Descriptor{
		From:    qMember.Entity,
		Where:   where,
		Columns: []query.Column{qMember.Username.As("username"), qMember.Age.As("age")},
		Orders:  orders,
	}
	rows := make([]entity.MemberDto, 0)
	if err := query.ApplySelect(r.db.NewSelect(), d).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Bulk statements run directly against the table, bypassing loaded entities.
// Their predicates may only reference member columns.

// BulkUpdateUsername sets username on every member matching where.
func (r *MemberRepository) BulkUpdateUsername(ctx context.Context, where query.Predicate, username string) (int64, error) {
	return r.bulkUpdate(ctx, where, "? = ?", bun.Ident(qMember.Username.Column), username)
}

// BulkAddAge adds delta to the age of every member matching where.
func (r *MemberRepository) BulkAddAge(ctx context.Context, where query.Predicate, delta int) (int64, error) {
	age := bun.Ident(qMember.Age.Column)
	return r.bulkUpdate(ctx, where, "? = ? + ?", age, age, delta)
}

// BulkMultiplyAge multiplies the age of every member matching where by factor.
func (r *MemberRepository) BulkMultiplyAge(ctx context.Context, where query.Predicate, factor int) (int64, error) {
	age := bun.Ident(qMember.Age.Column)
	return r.bulkUpdate(ctx, where, "? = ? * ?", age, age, factor)
}

// BulkDelete deletes every member matching where.
func (r *MemberRepository) BulkDelete(ctx context.Context, where query.Predicate) (int64, error) {
	res, err := r.db.NewDelete().
		TableExpr("?", bun.Ident(qMember.Table)).
		ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
			return query.ApplyWhereAll(qb, where, query.Unqualified)
		}).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *MemberRepository) bulkUpdate(ctx context.Context, where query.Predicate, set string, args ...interface{}) (int64, error) {
	res, err := r.db.NewUpdate().
		TableExpr("?", bun.Ident(qMember.Table)).
		Set(set, args...).
		ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
			return query.ApplyWhereAll(qb, where, query.Unqualified)
		}).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// AgeStats aggregates the ages of the members matching where. Teams are left
// joined, so where may filter on team columns. An empty selection yields zero
// values.
func (r *MemberRepository) AgeStats(ctx context.Context, where query.Predicate) (*entity.AgeStats, error) {
	age := qMember.Age.Path
	stats := new(entity.AgeStats)
	q := r.db.NewSelect().
		TableExpr("? AS ?", bun.Ident(qMember.Table), bun.Ident(qMember.Alias))
	err := query.ApplyJoins(q, memberTeamJoin(query.LeftJoin)).
		ColumnExpr("COUNT(*) AS ?", bun.Ident("count")).
		ColumnExpr("COALESCE(SUM(?), 0) AS ?", query.Ident(age), bun.Ident("sum")).
		ColumnExpr("COALESCE(AVG(?), 0.0) AS ?", query.Ident(age), bun.Ident("avg")).
		ColumnExpr("COALESCE(MAX(?), 0) AS ?", query.Ident(age), bun.Ident("max")).
		ColumnExpr("COALESCE(MIN(?), 0) AS ?", query.Ident(age), bun.Ident("min")).
		ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
			return query.ApplyWhere(qb, where, query.Qualified)
		}).
		Scan(ctx, stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// AverageAgeByTeam averages member ages per team, ordered by team name.
// Teamless members are excluded. When minAvg is non-nil only teams whose
// average exceeds it are returned.
func (r *MemberRepository) AverageAgeByTeam(ctx context.Context, minAvg *float64) ([]entity.TeamAgeAverage, error) {
	name := query.Ident(qTeam.Name.Path)
	avg := query.Ident(qMember.Age.Path)
	q := r.db.NewSelect().
		TableExpr("? AS ?", bun.Ident(qMember.Table), bun.Ident(qMember.Alias)).
		ColumnExpr("? AS ?", name, bun.Ident("team_name")).
		ColumnExpr("AVG(?) AS ?", avg, bun.Ident("avg_age"))
	q = query.ApplyJoins(q, memberTeamJoin(query.InnerJoin))
	q = q.GroupExpr("?", name)
	if minAvg != nil {
		q = q.Having("AVG(?) > ?", avg, *minAvg)
	}
	rows := make([]entity.TeamAgeAverage, 0)
	if err := query.ApplyOrder(q, qTeam.Name.Asc()).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func memberTeamJoin(kind query.JoinKind) query.Join {
	return query.Join{Kind: kind, Target: qTeam.Entity, On: qMember.TeamID.EqPath(qTeam.ID)}
}
