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

package search

// MemberSearchCondition is a sparse member search request. A nil field places
// no constraint on its attribute.
type MemberSearchCondition struct {
	Username *string `json:"username,omitempty"`
	TeamName *string `json:"teamName,omitempty"`
	AgeGoe   *int    `json:"ageGoe,omitempty"`
	AgeLoe   *int    `json:"ageLoe,omitempty"`
}

// Str returns a pointer to s, for populating condition fields.
func Str(s string) *string { return &s }

// Int returns a pointer to i, for populating condition fields.
func Int(i int) *int { return &i }
