// Package config reads the runtime configuration of the catalog from the
// environment. Every variable carries the KC_ prefix; a .env file in the
// working directory is loaded first when present.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort           = 8080
	defaultSessionMaxAge  = 24 * 60 // minutes
	defaultRememberMeDays = 14
)

// LoadEnv loads variables from the given .env files (".env" when none are
// given). A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("KC_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("KC_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("KC_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("KC_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

// GetListen returns the address the web server binds to; empty means all interfaces.
func GetListen() string {
	return os.Getenv("KC_LISTEN")
}

// GetWebDomain returns the only host name the server answers to; empty allows any.
func GetWebDomain() string {
	return os.Getenv("KC_DOMAIN")
}

// IsSecureCookie reports whether session cookies carry the Secure flag.
func IsSecureCookie() bool {
	return os.Getenv("KC_SECURE_COOKIE") == "true"
}

// GetCertFile and GetKeyFile name a TLS key pair; when both are set the server speaks HTTPS.
func GetCertFile() string {
	return os.Getenv("KC_CERT_FILE")
}

func GetKeyFile() string {
	return os.Getenv("KC_KEY_FILE")
}

func GetPort() int {
	return getInt("KC_PORT", defaultPort)
}

// GetSecret returns the configured session signing key. When empty the web
// layer falls back to the secret persisted in the settings table.
func GetSecret() string {
	return os.Getenv("KC_SECRET")
}

// GetSessionMaxAge returns the lifetime in minutes of a login made without "remember me".
func GetSessionMaxAge() int {
	return getInt("KC_SESSION_MAX_AGE", defaultSessionMaxAge)
}

// GetRememberDays returns the lifetime in days of a login made with "remember me".
func GetRememberDays() int {
	return getInt("KC_REMEMBER_DAYS", defaultRememberMeDays)
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
