// Package db opens the GORM connection and runs schema migrations.
package db

import (
	"fmt"
	"log"
	"time"

	gmysql "gorm.io/driver/mysql"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktrack/internal/config"
	authadapters "tasktrack/internal/feature/auth/adapters"
	authentity "tasktrack/internal/feature/auth/domain/entity"
	taskentity "tasktrack/internal/feature/tasks/domain/entity"
)

// Open connects to the configured database and optionally migrates the schema.
// Network drivers retry for up to a minute so the app survives a database
// that comes up slower than the process.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{TranslateError: true}

	var db *gorm.DB
	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		// SQLite is a local file; retrying will not help.
		if cfg.DBDriver == "sqlite" || time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed: %w", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations {
		if err := db.AutoMigrate(
			&authentity.User{},
			&authadapters.SessionModel{},
			&taskentity.Task{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}

// dialectorFor builds the gorm dialector for the configured driver.
func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return gsqlite.Open(cfg.SQLitePath), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return gmysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		return gpostgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
