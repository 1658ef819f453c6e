package database

import (
	"errors"
	"fmt"

	"clinic-service/internal/model"
	"clinic-service/pkg/config"
	"clinic-service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotInitialized is returned by helpers that need an open connection
var ErrNotInitialized = errors.New("database is not initialized")

// DB is the global database instance
var DB *gorm.DB

// Models lists every table owned by the service, in dependency order
var Models = []interface{}{
	&model.Clinic{},
	&model.User{},
	&model.Patient{},
	&model.Appointment{},
	&model.Equipment{},
}

// InitDB opens the PostgreSQL connection and applies pool settings
func InitDB(dbConfig *config.DBConfig) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(dbConfig.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	logger.GetLogger().Info("Database connected successfully",
		zap.String("host", dbConfig.Host),
		zap.String("db_name", dbConfig.DBName),
	)

	DB = db
	return db, nil
}

// MigrateModels runs AutoMigrate for the given models, or for Models when none are given
func MigrateModels(models ...interface{}) error {
	if DB == nil {
		return ErrNotInitialized
	}
	if len(models) == 0 {
		models = Models
	}
	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
