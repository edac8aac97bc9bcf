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
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		is     bool
		expect SQLError
	}{
		{"nil", nil, false, UnknownErr},
		{"no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql wrapped fk", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1452}), true, ForeignKeyViolationErr},
		{"mysql unmapped", &mysql.MySQLError{Number: 9999}, true, UnknownErr},
		{"postgres missing table", &pq.Error{Code: "42P01"}, true, NoTableErr},
		{"postgres not null", &pq.Error{Code: "23502"}, true, NotNullViolationErr},
		{"postgres unmapped", &pq.Error{Code: "08006"}, true, UnknownErr},
		{"sqlite missing table", errors.New("SQL logic error: no such table: members (1)"), true, NoTableErr},
		{"sqlite missing column", errors.New("no such column: m.nick"), true, NoColumnErr},
		{"sqlite unique", errors.New("UNIQUE constraint failed: teams.name"), true, DuplicateKeyErr},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), true, ForeignKeyViolationErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: members.age"), true, NotNullViolationErr},
		{"other", errors.New("connection refused"), false, UnknownErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, kind := IsSqlError(tt.err)
			assert.Equal(t, tt.is, is)
			assert.Equal(t, tt.expect, kind)
		})
	}
}

func TestSQLErrorString(t *testing.T) {
	assert.Equal(t, "duplicate key", DuplicateKeyErr.String())
	assert.Equal(t, "no such table", NoTableErr.String())
	assert.Equal(t, "unknown", SQLError(-1).String())
}
