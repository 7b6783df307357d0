package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDatabaseConfigDefaultsToSQLite(t *testing.T) {
	t.Setenv("KC_DB_TYPE", "")
	t.Setenv("KC_DB_FOLDER", "/tmp/kc")

	c := GetDatabaseConfig()
	assert.True(t, c.IsSQLite())
	assert.Equal(t, "/tmp/kc/kinocourses.db", c.SQLite.Path)
	assert.Contains(t, c.GetDSN(), "/tmp/kc/kinocourses.db?")
	assert.NoError(t, c.ValidateConfig())
}

func TestGetDatabaseConfigPostgres(t *testing.T) {
	t.Setenv("KC_DB_TYPE", "postgres")
	t.Setenv("KC_DB_HOST", "db.local")
	t.Setenv("KC_DB_PORT", "6543")
	t.Setenv("KC_DB_NAME", "catalog")
	t.Setenv("KC_DB_USER", "app")
	t.Setenv("KC_DB_PASSWORD", "pw")

	c := GetDatabaseConfig()
	assert.True(t, c.IsPostgreSQL())
	assert.NoError(t, c.ValidateConfig())
	assert.Equal(t, "host=db.local user=app password=pw dbname=catalog port=6543 sslmode=disable TimeZone=UTC", c.GetDSN())

	t.Setenv("KC_DB_SSLMODE", "require")
	t.Setenv("KC_DB_TIMEZONE", "Europe/Moscow")
	c = GetDatabaseConfig()
	assert.Equal(t, "host=db.local user=app password=pw dbname=catalog port=6543 sslmode=require TimeZone=Europe/Moscow", c.GetDSN())
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatabaseConfig
		wantErr bool
	}{
		{"empty sqlite path", DatabaseConfig{Type: DatabaseTypeSQLite}, true},
		{"unknown type", DatabaseConfig{Type: "mysql"}, true},
		{"postgres bad port", DatabaseConfig{Type: DatabaseTypePostgreSQL, Postgres: PostgresConfig{Host: "h", Database: "d", Username: "u", Port: 70000}}, true},
		{"sqlite ok", DatabaseConfig{Type: DatabaseTypeSQLite, SQLite: SQLiteConfig{Path: "x.db"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateConfig()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetIntFallsBack(t *testing.T) {
	t.Setenv("KC_PORT", "not-a-number")
	assert.Equal(t, defaultPort, GetPort())
	t.Setenv("KC_PORT", "9000")
	assert.Equal(t, 9000, GetPort())
}
