package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"jobboard/domain"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// NewConnection opens the configured database. Schema changes are not
// applied here, see Migrator.
func NewConnection(cfg Config, logger *zap.Logger) (*gorm.DB, error) {
	d, err := dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	gl := zapgorm2.New(logger.Named("gorm"))
	gl.IgnoreRecordNotFoundError = true
	gl.SlowThreshold = 200 * time.Millisecond
	gl.LogLevel = gormlogger.Warn

	db, err := gorm.Open(d, &gorm.Config{Logger: gl})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	if cfg.DBDriver == DriverSQLite {
		// SQLite only allows one writer; a single connection avoids
		// "database is locked" under concurrent requests.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	logger.Info("connected to database", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// SeedCompanies inserts a few demo companies when the company table is empty.
func SeedCompanies(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count companies: %w", err)
	}
	if count > 0 {
		return nil
	}

	employees := func(n int) *int { return &n }
	companies := []domain.Company{
		{Name: "Acme", Description: "Anvils and rocket skates", EmployeesCount: employees(120)},
		{Name: "Initech", Description: "Software for banks", EmployeesCount: employees(45)},
		{Name: "Globex", Description: "Worldwide logistics"},
	}
	if err := db.WithContext(ctx).Create(&companies).Error; err != nil {
		return fmt.Errorf("seed companies: %w", err)
	}

	logger.Info("seeded demo companies", zap.Int("count", len(companies)))
	return nil
}
