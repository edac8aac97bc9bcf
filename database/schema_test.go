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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type schemaOwner struct {
	bun.BaseModel `bun:"table:schema_owners,alias:o"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

type schemaPet struct {
	bun.BaseModel `bun:"table:schema_pets,alias:p"`

	ID      int64        `bun:"id,pk,autoincrement"`
	OwnerID int64        `bun:"owner_id"`
	Owner   *schemaOwner `bun:"rel:belongs-to,join:owner_id=id"`
}

func memoryConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Type:           "sqlite",
		DBName:         MemoryDBName,
		ConnectTimeout: 5 * time.Second,
	}
}

func connectMemory(t *testing.T) AbstractDatabaseManager {
	t.Helper()
	m := NewDatabaseManager(memoryConfig())
	require.NoError(t, m.Connect(context.Background()))
	t.Cleanup(func() { _ = m.Disconnect() })
	return m
}

func tableExists(t *testing.T, db *bun.DB, name string) bool {
	t.Helper()
	n, err := db.NewSelect().
		TableExpr("sqlite_master").
		Where("type = 'table' AND name = ?", name).
		Count(context.Background())
	require.NoError(t, err)
	return n > 0
}

func TestSchemaManagerSync(t *testing.T) {
	m := connectMemory(t)
	db := m.GetDB()
	ctx := context.Background()

	registry := NewModelRegistry()
	registry.Register(NewModelAdapter((*schemaPet)(nil), 20))
	registry.Register(NewModelAdapter((*schemaOwner)(nil), 10))
	sm := NewSchemaManagerWithRegistry(db, nil, registry)

	require.NoError(t, sm.Sync(ctx, SchemaConfig{WithForeignKeys: true}))
	assert.True(t, tableExists(t, db, "schema_owners"))
	assert.True(t, tableExists(t, db, "schema_pets"))

	// IF NOT EXISTS makes a second sync a no-op.
	_, err := db.NewInsert().Model(&schemaOwner{Name: "kim"}).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, sm.Sync(ctx, SchemaConfig{}))
	n, err := db.NewSelect().Model((*schemaOwner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, sm.Sync(ctx, SchemaConfig{DropFirst: true}))
	n, err = db.NewSelect().Model((*schemaOwner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, sm.DropTables(ctx))
	assert.False(t, tableExists(t, db, "schema_owners"))
	assert.False(t, tableExists(t, db, "schema_pets"))
}
