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

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/types"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	GetAll(ctx context.Context) ([]*T, error)

	// List returns the rows matching where, in the given order.
	List(ctx context.Context, where query.Predicate, orders ...query.Order) ([]*T, error)

	Count(ctx context.Context, where query.Predicate) (int, error)

	Create(ctx context.Context, entity ...*T) error

	// Upsert inserts the entities, updating fields on conflict with duplicateKeys.
	Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}

// PageQueryRepository defines pagination over a predicate.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, where query.Predicate, page *types.PageRequest, orders ...query.Order) (*types.Pagination[T], error)
}

// Repository combines CRUD and pagination and exposes Bun query builders for
// statements the generic methods do not cover.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
