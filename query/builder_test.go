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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestIsText(t *testing.T) {
	assert.False(t, IsText(nil))
	assert.False(t, IsText(strPtr("")))
	assert.False(t, IsText(strPtr(" \t\n")))
	assert.True(t, IsText(strPtr(" a ")))
	assert.False(t, IsText(strPtr("\u2003\u3000\u001c")))
	for _, s := range []string{"\u00a0", "\u2007", "\u202f", "\u0085"} {
		assert.True(t, IsText(strPtr(s)), "%U", []rune(s)[0])
	}
}

func TestAllOfSkipsAbsentFilters(t *testing.T) {
	p := AllOf(
		HasText(strPtr("  "), pUsername.Eq),
		Present(intPtr(10), pAge.Goe),
		Present((*int)(nil), pAge.Loe),
		When(false, func() Predicate { return pAge.Eq(1) }),
		When(true, func() Predicate { return pTeamName.Eq("teamA") }),
	)
	assert.Equal(t, Conjunction{Terms: []Predicate{pAge.Goe(10), pTeamName.Eq("teamA")}}, p)
}

func TestAllOfEmptyIsMatchAll(t *testing.T) {
	p := AllOf(None(), HasText(nil, pUsername.Eq))
	assert.True(t, IsMatchAll(p))
	assert.Equal(t, MatchAll(), p)
}

func TestSomeNil(t *testing.T) {
	_, ok := Some(nil).Get()
	assert.False(t, ok)
}

func TestBooleanBuilder(t *testing.T) {
	b := NewBooleanBuilder()
	assert.False(t, b.HasValue())
	assert.True(t, IsMatchAll(b.Predicate()))

	b.And(pUsername.Eq("member1")).And(nil).AndIf(Present(intPtr(10), pAge.Eq))
	assert.True(t, b.HasValue())
	assert.Equal(t, Conjunction{Terms: []Predicate{pUsername.Eq("member1"), pAge.Eq(10)}}, b.Predicate())

	b.AndIf(None())
	assert.Equal(t, `("m"."username" = 'member1') AND ("m"."age" = 10)`, render(b.Predicate(), Qualified))
}

func TestBooleanBuilderOr(t *testing.T) {
	b := NewBooleanBuilder().Or(pAge.Lt(10)).Or(pAge.Gt(90))
	assert.Equal(t, `("m"."age" < 10) OR ("m"."age" > 90)`, render(b.Predicate(), Qualified))

	b.And(pUsername.IsNotNull())
	assert.Equal(t, `(("m"."age" < 10) OR ("m"."age" > 90)) AND ("m"."username" IS NOT NULL)`, render(b.Predicate(), Qualified))
}

func TestBooleanBuilderDoesNotAliasEarlierResults(t *testing.T) {
	b := NewBooleanBuilder().And(pAge.Gt(1)).And(pAge.Lt(5))
	first := b.Predicate()
	b.And(pAge.Ne(3))
	assert.Len(t, first.(Conjunction).Terms, 2)
	assert.Len(t, b.Predicate().(Conjunction).Terms, 3)
}
