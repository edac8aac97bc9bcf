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

// Package config loads the YAML configuration file shared by the CLI and
// services.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomoncle/querydsl/database"
	"github.com/tomoncle/querydsl/repository"
	"github.com/tomoncle/querydsl/utils"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "QUERYDSL_CONFIG"

// LocalProfile is the only profile under which sample data is seeded.
const LocalProfile = "local"

type Config struct {
	Database database.ConnectionConfig `yaml:"database"`
	Schema   database.SchemaConfig     `yaml:"schema"`
	Log      LogConfig                 `yaml:"log"`
	Seed     SeedConfig                `yaml:"seed"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json
}

type SeedConfig struct {
	Profile string `yaml:"profile"`
	Count   int    `yaml:"count"`
}

var _ database.AbstractDatabaseConfigProvider = (*Config)(nil)

// Default returns the configuration used when no file is given: a sqlite file
// database with tables created on startup.
func Default() *Config {
	return &Config{
		Database: *database.DefaultConnectionConfig(),
		Schema: database.SchemaConfig{
			CreateOnStartup: true,
			WithForeignKeys: true,
		},
		Log: LogConfig{
			Level:  utils.EnvDefaultString("LOG_LEVEL", "info"),
			Format: utils.EnvDefaultString("CONSOLE_LOG_FORMAT", "text"),
		},
		Seed: SeedConfig{Count: repository.DefaultSeedCount},
	}
}

// Load reads path over the defaults. An empty path falls back to
// $QUERYDSL_CONFIG and then to the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data over cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Type == "" {
		return fmt.Errorf("database.type is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.Seed.Count < 0 {
		return fmt.Errorf("seed.count must not be negative: %d", c.Seed.Count)
	}
	return nil
}

// ConfigLoader returns the database settings of c.
func (c *Config) ConfigLoader() *database.Config {
	return &database.Config{
		ConnectionConfig: c.Database,
		SchemaConfig:     c.Schema,
	}
}

// ApplyLogging configures every logger from the log section.
func (c *Config) ApplyLogging() {
	utils.ConfigureConsoleLogFormat(c.Log.Format)
	utils.ConfigureLogLevel(c.Log.Level)
}

// SeedEnabled reports whether sample data may be seeded under the configured profile.
func (c *Config) SeedEnabled() bool {
	return c.Seed.Profile == LocalProfile
}
