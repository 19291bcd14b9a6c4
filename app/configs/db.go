package configs

import (
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenConnection(env ENV, log *logrus.Logger) (*gorm.DB, error) {
	switch env.DBDriver {
	case "mysql":
		return openMySQL(env, log)
	default:
		if err := os.MkdirAll(env.ResolvedDataDir(), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dsn := fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000", env.SQLitePath())
		db, err := OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		log.WithField("path", env.SQLitePath()).Info("OpenConnection: sqlite database opened")
		return db, nil
	}
}

// OpenSQLite pins the pool to one connection so SQLite sees a single writer.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

func openMySQL(env ENV, log *logrus.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.DBUser,
		env.DBPassword,
		env.DBHost,
		env.DBPort,
		env.DBName,
	)

	maxRetries := 10
	retryDelay := 3 * time.Second

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					log.Info("OpenConnection: mysql database connected")
					return db, nil
				}
			}
			err = pingErr
		}

		lastErr = err
		log.WithError(err).Warnf("OpenConnection: attempt %d/%d failed, retrying in %v", i+1, maxRetries, retryDelay)
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to mysql after %d retries: %w", maxRetries, lastErr)
}
