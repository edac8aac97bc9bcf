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

// NullHandling places NULL values within an ordering.
type NullHandling int

const (
	NullsDefault NullHandling = iota
	NullsFirst
	NullsLast
)

// Order is one ORDER BY key.
type Order struct {
	Path  Path
	Desc  bool
	Nulls NullHandling
}

// NullsFirst returns o with NULLs sorted before other values.
func (o Order) NullsFirst() Order {
	o.Nulls = NullsFirst
	return o
}

// NullsLast returns o with NULLs sorted after other values.
func (o Order) NullsLast() Order {
	o.Nulls = NullsLast
	return o
}

func (o Order) String() string {
	s := o.Path.String()
	if o.Desc {
		s += " DESC"
	} else {
		s += " ASC"
	}
	switch o.Nulls {
	case NullsFirst:
		s += " NULLS FIRST"
	case NullsLast:
		s += " NULLS LAST"
	}
	return s
}
