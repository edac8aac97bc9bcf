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

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomoncle/querydsl/entity"
)

func writeConfig(t *testing.T, profile string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "querydsl.yaml")
	body := fmt.Sprintf("database:\n  type: sqlite\n  dbname: %s\nseed:\n  profile: %q\n  count: 6\n",
		filepath.Join(dir, "test"), profile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedAndSearch(t *testing.T) {
	path := writeConfig(t, "local")

	_, err := run(t, "-c", path, "migrate")
	require.NoError(t, err)
	_, err = run(t, "-c", path, "seed")
	require.NoError(t, err)

	out, err := run(t, "-c", path, "search", "--team", "teamA", "--order", "age:desc")
	require.NoError(t, err)
	var rows []entity.MemberTeamDto
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, []int{4, 2, 0}, []int{rows[0].Age, rows[1].Age, rows[2].Age})
	assert.Equal(t, "teamA", *rows[0].TeamName)

	out, err = run(t, "-c", path, "search", "--order", "age", "--offset", "1", "--limit", "2")
	require.NoError(t, err)
	rows = nil
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Age)

	// A second seed writes nothing.
	_, err = run(t, "-c", path, "seed")
	require.NoError(t, err)

	out, err = run(t, "-c", path, "stats")
	require.NoError(t, err)
	var stats struct {
		Ages  entity.AgeStats         `json:"ages"`
		Teams []entity.TeamAgeAverage `json:"teams"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.EqualValues(t, 6, stats.Ages.Count)
	assert.EqualValues(t, 15, stats.Ages.Sum)
	require.Len(t, stats.Teams, 2)
	assert.InDelta(t, 2.0, stats.Teams[0].AvgAge, 1e-9)

	out, err = run(t, "-c", path, "stats", "--team", "teamC")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, entity.AgeStats{}, stats.Ages)
}

func TestSeedRequiresLocalProfile(t *testing.T) {
	path := writeConfig(t, "prod")
	_, err := run(t, "-c", path, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, "-c", path, "seed", "--force", "-n", "2")
	assert.NoError(t, err)
}

func TestSearchRejectsUnknownOrder(t *testing.T) {
	path := writeConfig(t, "local")
	_, err := run(t, "-c", path, "search", "--order", "height")
	assert.Error(t, err)
}
