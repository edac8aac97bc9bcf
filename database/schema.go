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

package database

import (
	"context"
	"fmt"
	"slices"

	"github.com/uptrace/bun"
)

// SchemaManager creates and drops the tables of registered models.
type SchemaManager struct {
	db       *bun.DB
	logger   Logger
	registry ModelRegistry
}

// NewSchemaManager returns a schema manager over the default model registry.
func NewSchemaManager(db *bun.DB, logger Logger) *SchemaManager {
	return NewSchemaManagerWithRegistry(db, logger, defaultRegistry)
}

// NewSchemaManagerWithRegistry returns a schema manager over the given registry.
func NewSchemaManagerWithRegistry(db *bun.DB, logger Logger, registry ModelRegistry) *SchemaManager {
	if logger == nil {
		logger = GetLogger()
	}
	return &SchemaManager{db: db, logger: logger, registry: registry}
}

// Sync drops the tables first when opts.DropFirst is set, then creates any
// missing tables.
func (m *SchemaManager) Sync(ctx context.Context, opts SchemaConfig) error {
	if opts.DropFirst {
		if err := m.DropTables(ctx); err != nil {
			return err
		}
	}
	return m.CreateTables(ctx, opts.WithForeignKeys)
}

// CreateTables creates tables in ascending model priority, so referenced
// tables exist before the tables pointing at them.
func (m *SchemaManager) CreateTables(ctx context.Context, withForeignKeys bool) error {
	for _, model := range m.registry.Models() {
		q := m.db.NewCreateTable().Model(model.Instance()).IfNotExists()
		if withForeignKeys {
			q = q.WithForeignKeys()
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model.Instance(), err)
		}
		m.logger.Debug("Table ready", "model", fmt.Sprintf("%T", model.Instance()))
	}
	return nil
}

// DropTables drops tables in descending model priority.
func (m *SchemaManager) DropTables(ctx context.Context) error {
	models := m.registry.Models()
	slices.Reverse(models)
	for _, model := range models {
		if _, err := m.db.NewDropTable().Model(model.Instance()).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", model.Instance(), err)
		}
		m.logger.Debug("Table dropped", "model", fmt.Sprintf("%T", model.Instance()))
	}
	return nil
}
