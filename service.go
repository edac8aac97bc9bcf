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

package querydsl

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/repository"
	"github.com/tomoncle/querydsl/search"
	"github.com/tomoncle/querydsl/types"
)

type Service[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// All returns all entities.
	All(ctx context.Context) ([]*T, error)

	// List returns entities that match where, in the given order.
	List(ctx context.Context, where query.Predicate, orders ...query.Order) ([]*T, error)

	// Count returns the number of entities that match where.
	Count(ctx context.Context, where query.Predicate) (int, error)

	// Page returns one page of the entities that match where.
	Page(ctx context.Context, where query.Predicate, page *types.PageRequest, orders ...query.Order) (*types.Pagination[T], error)

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id any) error

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// SaveOrUpdate upserts entities based on fields and duplicate keys.
	SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, model ...*T) error

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery
}

type baseServiceImpl[T any] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service using the generic repository over the global
// database. The database is resolved on first use, so services may be
// declared before database.InitDB runs.
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

func (s *baseServiceImpl[T]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.NewRepository[T](database.GetDB()) })
	return s.repo
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, model ...*T) error {
	return s.baseRepo().Create(ctx, model...)
}

func (s *baseServiceImpl[T]) SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, model ...*T) error {
	return s.baseRepo().Upsert(ctx, fields, duplicateKeys, model...)
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	return s.baseRepo().GetOne(ctx, id)
}

func (s *baseServiceImpl[T]) All(ctx context.Context) ([]*T, error) {
	return s.baseRepo().GetAll(ctx)
}

func (s *baseServiceImpl[T]) List(ctx context.Context, where query.Predicate, orders ...query.Order) ([]*T, error) {
	return s.baseRepo().List(ctx, where, orders...)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, where query.Predicate) (int, error) {
	return s.baseRepo().Count(ctx, where)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, where query.Predicate, page *types.PageRequest, orders ...query.Order) (*types.Pagination[T], error) {
	return s.baseRepo().Page(ctx, where, page, orders...)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, model *T) error {
	return s.baseRepo().Update(ctx, model)
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, id any) error {
	return s.baseRepo().Delete(ctx, id)
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}

// MemberService exposes member search and reporting over the global database.
type MemberService struct {
	Service[entity.Member]
	repo *repository.MemberRepository
	once sync.Once
}

func NewMemberService() *MemberService {
	return &MemberService{Service: NewService[entity.Member]()}
}

func (s *MemberService) members() *repository.MemberRepository {
	s.once.Do(func() { s.repo = repository.NewMemberRepository(database.GetDB()) })
	return s.repo
}

// Search returns the member/team rows matching cond, one page at a time when
// page is non-nil.
func (s *MemberService) Search(ctx context.Context, cond search.MemberSearchCondition, page *types.PageRequest, orders ...query.Order) ([]entity.MemberTeamDto, error) {
	if page == nil && len(orders) == 0 {
		return s.members().Search(ctx, cond)
	}
	return s.members().SearchPage(ctx, cond, page, orders...)
}

func (s *MemberService) SearchPagination(ctx context.Context, cond search.MemberSearchCondition, page *types.PageRequest, orders ...query.Order) (*types.Pagination[entity.MemberTeamDto], error) {
	return s.members().SearchPagination(ctx, cond, page, orders...)
}

func (s *MemberService) MembersOfTeam(ctx context.Context, teamName string) ([]*entity.Member, error) {
	return s.members().FindByTeam(ctx, teamName)
}

// AgeStats aggregates the ages of the members matching cond.
func (s *MemberService) AgeStats(ctx context.Context, cond search.MemberSearchCondition) (*entity.AgeStats, error) {
	return s.members().AgeStats(ctx, search.Where(cond))
}

func (s *MemberService) AverageAgeByTeam(ctx context.Context, minAvg *float64) ([]entity.TeamAgeAverage, error) {
	return s.members().AverageAgeByTeam(ctx, minAvg)
}

// Seed stores n sample members split over teamA and teamB.
func (s *MemberService) Seed(ctx context.Context, n int) error {
	_, _, err := repository.SeedSampleData(ctx, database.GetDB(), n)
	return err
}
