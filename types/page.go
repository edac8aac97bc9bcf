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

package types

// DefaultLimit is used when a page request carries no positive limit.
const DefaultLimit = 10

// PageRequest describes a window of rows: skip Offset rows, return at most Limit.
type PageRequest struct {
	offset int
	limit  int
}

// GetOffset returns the number of rows to skip, never negative.
func (p *PageRequest) GetOffset() int {
	if p.offset < 0 {
		return 0
	}
	return p.offset
}

// GetLimit returns the maximum number of rows, DefaultLimit when unset.
func (p *PageRequest) GetLimit() int {
	if p.limit < 1 {
		return DefaultLimit
	}
	return p.limit
}

// GetPage returns the 1-based page number the window starts on.
func (p *PageRequest) GetPage() int {
	return p.GetOffset()/p.GetLimit() + 1
}

// NewPageRequest constructs an offset/limit window.
func NewPageRequest(offset int, limit int) *PageRequest {
	return &PageRequest{offset: offset, limit: limit}
}

// NewPageRequestByNumber constructs the window for a 1-based page of pageSize rows.
func NewPageRequestByNumber(page int, pageSize int) *PageRequest {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultLimit
	}
	return NewPageRequest((page-1)*pageSize, pageSize)
}

// Pagination holds paged result items along with pagination metadata.
type Pagination[T any] struct {
	Page     int
	PageSize int
	Total    int
	Items    []*T
}

// NewDefaultPagination constructs an empty pagination container.
func NewDefaultPagination[T any](page *PageRequest) *Pagination[T] {
	return &Pagination[T]{page.GetPage(), page.GetLimit(), 0, make([]*T, 0)}
}
