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

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tomoncle/querydsl/entity"
	"github.com/tomoncle/querydsl/query"
)

// DefaultSeedCount is the number of members SeedSampleData creates by default.
const DefaultSeedCount = 100

// ErrAlreadySeeded is returned by SeedSampleData when teamA or teamB exists.
var ErrAlreadySeeded = errors.New("sample teams already exist")

// SeedSampleData creates teamA and teamB and n members "member0".."member<n-1>"
// aged 0..n-1, alternating between teamA (even) and teamB (odd). All rows are
// written in one transaction, so a failure leaves nothing behind. Seeding a
// database that already holds the sample teams returns ErrAlreadySeeded.
func SeedSampleData(ctx context.Context, db *bun.DB, n int) ([]*entity.Team, []*entity.Member, error) {
	if n < 0 {
		return nil, nil, fmt.Errorf("member count must not be negative: %d", n)
	}

	teamA, teamB := entity.NewTeam("teamA"), entity.NewTeam("teamB")
	exists, err := db.NewSelect().Model((*entity.Team)(nil)).
		ApplyQueryBuilder(func(qb bun.QueryBuilder) bun.QueryBuilder {
			return query.ApplyWhere(qb, qTeam.Name.In(teamA.Name, teamB.Name), query.Qualified)
		}).
		Exists(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check sample teams: %w", err)
	}
	if exists {
		return nil, nil, ErrAlreadySeeded
	}

	teams := []*entity.Team{teamA, teamB}
	created := make([]*entity.Member, 0, n)
	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&teams).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create teams: %w", err)
		}
		for i := 0; i < n; i++ {
			t := teamA
			if i%2 != 0 {
				t = teamB
			}
			created = append(created, entity.NewMember(fmt.Sprintf("member%d", i), i, t))
		}
		if n == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&created).Exec(ctx); err != nil {
			return fmt.Errorf("failed to create members: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return teams, created, nil
}
