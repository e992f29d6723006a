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

// Package config loads application settings. Values resolve in three layers:
// code defaults, an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/tomoncle/colibri/database"
)

// Environment tiers. The tier gates API-doc exposure, SQL echoing, and the
// log format.
const (
	EnvLocal      = "local"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// DatabaseConfig holds relational store connection settings.
type DatabaseConfig struct {
	Type     string `yaml:"type" env:"DB_TYPE"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Username string `yaml:"username" env:"DB_USERNAME"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`

	EnableQueryLog   bool `yaml:"enable_query_log" env:"DB_ENABLE_QUERY_LOG"`
	MigrateOnStartup bool `yaml:"migrate_on_startup" env:"DB_MIGRATE_ON_STARTUP"`
}

// Config is the application settings surface.
type Config struct {
	AppName     string `yaml:"app_name" env:"APP_NAME"`
	AppVersion  string `yaml:"app_version" env:"APP_VERSION"`
	Environment string `yaml:"environment" env:"ENVIRONMENT"`

	HTTPAddr    string   `yaml:"http_addr" env:"HTTP_ADDR"`
	LogLevel    string   `yaml:"log_level" env:"LOG_LEVEL"`
	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS"`

	Database DatabaseConfig `yaml:"database"`
}

// Default returns the built-in configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		AppName:     "colibri",
		AppVersion:  "0.1.0",
		Environment: EnvLocal,
		HTTPAddr:    ":8000",
		LogLevel:    "debug",
		CORSOrigins: []string{"http://localhost:3000", "http://localhost:8000"},
		Database: DatabaseConfig{
			Type:             "sqlite",
			DBName:           "app",
			MigrateOnStartup: true,
		},
	}
}

// Load resolves configuration: defaults, then the YAML file at path if it
// exists, then environment variables. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.Environment {
	case EnvLocal, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("unknown environment tier: %s", cfg.Environment)
	}
	return cfg, nil
}

// IsLocal reports whether the local tier is active.
func (c *Config) IsLocal() bool {
	return c.Environment == EnvLocal
}

// DatabaseConfig maps the settings onto the database package configuration.
func (c *Config) DatabaseConfig() *database.Config {
	return &database.Config{
		ConnectionConfig: database.ConnectionConfig{
			Type:           c.Database.Type,
			Host:           c.Database.Host,
			Port:           c.Database.Port,
			Username:       c.Database.Username,
			Password:       c.Database.Password,
			DBName:         c.Database.DBName,
			SSLMode:        c.Database.SSLMode,
			EnableQueryLog: c.Database.EnableQueryLog || c.IsLocal(),
		},
		DataMigrateConfig: database.DataMigrateConfig{
			EnableMigrateOnStartup: c.Database.MigrateOnStartup,
		},
	}
}
