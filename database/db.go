package database

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kinocourses/kinocourses/config"
	"github.com/kinocourses/kinocourses/database/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbType config.DatabaseType
)

func initModels() error {
	models := []any{
		&model.Course{},
		&model.Lesson{},
		&model.User{},
		&model.Setting{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens the configured database and migrates the schema.
func InitDB(dbConfig *config.DatabaseConfig) error {
	if err := dbConfig.ValidateConfig(); err != nil {
		return err
	}
	if err := dbConfig.EnsureDirectoryExists(); err != nil {
		return err
	}

	if dbConfig.IsSQLite() {
		if err := checkSQLiteFile(dbConfig.SQLite.Path); err != nil {
			return err
		}
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	}

	var dialector gorm.Dialector
	if dbConfig.IsPostgreSQL() {
		dialector = postgres.Open(dbConfig.GetDSN())
	} else {
		dialector = sqlite.Open(dbConfig.GetDSN())
	}

	var err error
	db, err = gorm.Open(dialector, c)
	if err != nil {
		return err
	}
	dbType = dbConfig.Type

	if dbConfig.IsSQLite() {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if _, err = sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			return err
		}
	}

	return initModels()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// checkSQLiteFile refuses to open an existing non-empty file that is not a
// SQLite database.
func checkSQLiteFile(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	if info, err := f.Stat(); err != nil || info.Size() == 0 {
		return err
	}
	ok, err := IsSQLiteDB(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%s is not a SQLite database", path)
	}
	return nil
}

// Checkpoint flushes the SQLite write-ahead log. It is a no-op on PostgreSQL.
func Checkpoint() error {
	if db == nil || dbType == config.DatabaseTypePostgreSQL {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
