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
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/search"
)

func parseSearchFlags(t *testing.T, args ...string) (*searchFlags, *pflag.FlagSet) {
	t.Helper()
	f := &searchFlags{}
	fs := pflag.NewFlagSet("search", pflag.ContinueOnError)
	f.register(fs)
	require.NoError(t, fs.Parse(args))
	return f, fs
}

func TestConditionOnlyUsesSetFlags(t *testing.T) {
	f, fs := parseSearchFlags(t)
	assert.Equal(t, search.MemberSearchCondition{}, f.condition(fs))
	assert.Nil(t, f.page(fs))

	f, fs = parseSearchFlags(t, "--team", "teamB", "--age-goe", "0")
	assert.Equal(t, search.MemberSearchCondition{
		TeamName: search.Str("teamB"),
		AgeGoe:   search.Int(0),
	}, f.condition(fs))
}

func TestPageFromFlags(t *testing.T) {
	f, fs := parseSearchFlags(t, "--offset", "1", "--limit", "2")
	page := f.page(fs)
	require.NotNil(t, page)
	assert.Equal(t, 1, page.GetOffset())
	assert.Equal(t, 2, page.GetLimit())
}

func TestParseOrders(t *testing.T) {
	orders, err := parseOrders("age:desc, username:asc:nullslast,team_name")
	require.NoError(t, err)
	assert.Equal(t, []query.Order{
		entity.QMember.Age.Desc(),
		entity.QMember.Username.Asc().NullsLast(),
		entity.QTeam.Name.Asc(),
	}, orders)

	orders, err = parseOrders("")
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = parseOrders("height")
	assert.Error(t, err)
	_, err = parseOrders("age:sideways")
	assert.Error(t, err)
}
