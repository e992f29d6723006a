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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "colibri", cfg.AppName)
	assert.Equal(t, EnvLocal, cfg.Environment)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.True(t, cfg.Database.MigrateOnStartup)
	assert.True(t, cfg.IsLocal())
}

func TestYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: demo
environment: staging
http_addr: ":9090"
database:
  type: postgres
  host: db.internal
  port: 5432
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.AppName)
	assert.Equal(t, EnvStaging, cfg.Environment)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	// Untouched keys keep their defaults.
	assert.Equal(t, "0.1.0", cfg.AppVersion)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: staging\n"), 0o600))

	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_NAME", "orders")
	t.Setenv("HTTP_ADDR", ":8443")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Environment)
	assert.Equal(t, "orders", cfg.Database.DBName)
	assert.Equal(t, ":8443", cfg.HTTPAddr)
	assert.False(t, cfg.IsLocal())
}

func TestUnknownEnvironmentRejected(t *testing.T) {
	t.Setenv("ENVIRONMENT", "qa")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown environment tier")
}

func TestMissingFileIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "colibri", cfg.AppName)
}

func TestDatabaseConfigMapping(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	dbCfg := cfg.DatabaseConfig()
	assert.Equal(t, "sqlite", dbCfg.ConnectionConfig.Type)
	assert.Equal(t, "app", dbCfg.ConnectionConfig.DBName)
	// Query logging is forced on in the local tier.
	assert.True(t, dbCfg.ConnectionConfig.EnableQueryLog)
	assert.True(t, dbCfg.DataMigrateConfig.EnableMigrateOnStartup)

	t.Setenv("ENVIRONMENT", "production")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.False(t, cfg.DatabaseConfig().ConnectionConfig.EnableQueryLog)
}
