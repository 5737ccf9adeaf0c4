package sql

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	_queryTimeout = 5 * time.Second
	passwordEnv   = "CLIMATE_MONITOR_POSTGRES_PASSWORD"
)

func NewPosgreORM(dsn string) (ORM, error) {
	pass, ok := os.LookupEnv(passwordEnv)
	if ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	return &DB{
		DB:                   gormDB,
		system:               "postgresql",
		autoMigrationEnabled: true,
		timeout:              _queryTimeout,
	}, nil
}
