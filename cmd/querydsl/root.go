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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tomoncle/querydsl"
	"github.com/tomoncle/querydsl/config"
	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/repository"
	"github.com/tomoncle/querydsl/utils"
)

type rootOptions struct {
	ConfigPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "querydsl",
		Short:         "Member/team search over a relational store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			cfg.ApplyLogging()
			opts.cfg = cfg
			opts.log = utils.NewLogger("QUERYDSL")
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $"+config.EnvConfigPath+")")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newStatsCommand(opts))
	return cmd
}

// withDB opens the configured database for the duration of fn.
func (o *rootOptions) withDB(createSchema bool, fn func(ctx context.Context) error) error {
	dbCfg := o.cfg.ConfigLoader()
	if _, err := database.InitDatabaseWithOptions(dbCfg, createSchema || dbCfg.SchemaConfig.CreateOnStartup); err != nil {
		return err
	}
	defer func() { _ = database.CloseDB() }()
	return fn(context.Background())
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	var drop bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the member and team tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withDB(false, func(ctx context.Context) error {
				schema := opts.cfg.Schema
				schema.DropFirst = drop
				if err := database.CreateSchema(ctx, schema); err != nil {
					return err
				}
				opts.log.WithField("drop_first", drop).Info("Schema ready")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&drop, "drop", false, "drop existing tables first")
	return cmd
}

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var count int
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample teams and members",
		Long: "Insert teamA, teamB and --count members in one transaction.\n" +
			"Nothing is written when the sample teams already exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force && !opts.cfg.SeedEnabled() {
				return fmt.Errorf("seeding is disabled outside the %q profile, use --force", config.LocalProfile)
			}
			if !cmd.Flags().Changed("count") {
				count = opts.cfg.Seed.Count
			}
			return opts.withDB(true, func(ctx context.Context) error {
				err := querydsl.NewMemberService().Seed(ctx, count)
				if errors.Is(err, repository.ErrAlreadySeeded) {
					opts.log.Warn("Sample data already present, nothing seeded")
					return nil
				}
				if err != nil {
					return err
				}
				opts.log.WithField("members", count).Info("Sample data seeded")
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of members (default from config)")
	cmd.Flags().BoolVar(&force, "force", false, "seed regardless of the configured profile")
	return cmd
}

func newSearchCommand(opts *rootOptions) *cobra.Command {
	flags := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search members by username, team and age range",
		RunE: func(cmd *cobra.Command, args []string) error {
			cond := flags.condition(cmd.Flags())
			orders, err := parseOrders(flags.Order)
			if err != nil {
				return err
			}
			page := flags.page(cmd.Flags())
			return opts.withDB(false, func(ctx context.Context) error {
				rows, err := querydsl.NewMemberService().Search(ctx, cond, page, orders...)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), rows)
			})
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func newStatsCommand(opts *rootOptions) *cobra.Command {
	flags := &searchFlags{}
	var minAvg float64
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print age statistics and per-team averages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cond := flags.condition(cmd.Flags())
			var having *float64
			if cmd.Flags().Changed("min-avg") {
				having = &minAvg
			}
			return opts.withDB(false, func(ctx context.Context) error {
				svc := querydsl.NewMemberService()
				stats, err := svc.AgeStats(ctx, cond)
				if err != nil {
					return err
				}
				teams, err := svc.AverageAgeByTeam(ctx, having)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"ages":  stats,
					"teams": teams,
				})
			})
		},
	}
	flags.registerFilters(cmd.Flags())
	cmd.Flags().Float64Var(&minAvg, "min-avg", 0, "only list teams whose average age exceeds this")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
