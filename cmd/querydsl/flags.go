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
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
	"github.com/tomoncle/querydsl/search"
	"github.com/tomoncle/querydsl/types"
)

type searchFlags struct {
	Username string
	TeamName string
	AgeGoe   int
	AgeLoe   int
	Offset   int
	Limit    int
	Order    string
}

func (f *searchFlags) registerFilters(fs *pflag.FlagSet) {
	fs.StringVar(&f.Username, "username", "", "exact username")
	fs.StringVar(&f.TeamName, "team", "", "exact team name")
	fs.IntVar(&f.AgeGoe, "age-goe", 0, "minimum age, inclusive")
	fs.IntVar(&f.AgeLoe, "age-loe", 0, "maximum age, inclusive")
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	f.registerFilters(fs)
	fs.IntVar(&f.Offset, "offset", 0, "rows to skip")
	fs.IntVar(&f.Limit, "limit", 0, "maximum rows to return")
	fs.StringVar(&f.Order, "order", "", "comma separated sort keys, e.g. age:desc,username:asc:nullslast")
}

// condition maps the flags the user actually set onto a search condition.
func (f *searchFlags) condition(fs *pflag.FlagSet) search.MemberSearchCondition {
	var cond search.MemberSearchCondition
	if fs.Changed("username") {
		cond.Username = search.Str(f.Username)
	}
	if fs.Changed("team") {
		cond.TeamName = search.Str(f.TeamName)
	}
	if fs.Changed("age-goe") {
		cond.AgeGoe = search.Int(f.AgeGoe)
	}
	if fs.Changed("age-loe") {
		cond.AgeLoe = search.Int(f.AgeLoe)
	}
	return cond
}

// page returns nil unless --offset or --limit was given.
func (f *searchFlags) page(fs *pflag.FlagSet) *types.PageRequest {
	if !fs.Changed("offset") && !fs.Changed("limit") {
		return nil
	}
	return types.NewPageRequest(f.Offset, f.Limit)
}

var sortKeys = map[string]query.Path{
	"id":        entity.QMember.ID.Path,
	"username":  entity.QMember.Username.Path,
	"age":       entity.QMember.Age.Path,
	"team_id":   entity.QTeam.ID.Path,
	"team_name": entity.QTeam.Name.Path,
}

// parseOrders parses "key[:asc|desc][:nullsfirst|nullslast]" items.
func parseOrders(s string) ([]query.Order, error) {
	var orders []query.Order
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(strings.ToLower(item), ":")
		path, ok := sortKeys[parts[0]]
		if !ok {
			return nil, fmt.Errorf("unknown sort key %q", parts[0])
		}
		order := path.Asc()
		for _, p := range parts[1:] {
			switch p {
			case "asc":
				order.Desc = false
			case "desc":
				order.Desc = true
			case "nullsfirst":
				order = order.NullsFirst()
			case "nullslast":
				order = order.NullsLast()
			default:
				return nil, fmt.Errorf("unknown sort option %q in %q", p, item)
			}
		}
		orders = append(orders, order)
	}
	return orders, nil
}
