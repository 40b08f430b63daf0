// Package postgres opens the relational database that backs the transition
// audit log. PostgreSQL is used when a DSN is configured; otherwise the log
// lives in an in-memory SQLite database for the lifetime of the process.
//
// Usage:
//
//	db, err := postgres.Open(postgres.DriverPostgres, "host=localhost user=app dbname=ops sslmode=disable")
//	if err != nil {
//	    return err
//	}
//	log := auditrepo.NewGormTransitionLog(db)
//	if err := log.Migrate(ctx); err != nil {
//	    return err
//	}
package postgres

import (
	"fmt"

	"restaurantops/internal/pkg/errs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverPostgres selects PostgreSQL; the DSN is a libpq connection string.
	DriverPostgres = "postgres"

	// DriverSQLite selects SQLite; the DSN is a file name or ":memory:".
	DriverSQLite = "sqlite"

	// MemoryDSN is the SQLite DSN of a process-lifetime database.
	MemoryDSN = ":memory:"
)

// Open connects to the database selected by driver.
//
// An in-memory SQLite database exists per connection, so the pool is limited
// to a single connection for SQLite.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			return nil, errs.NewValueIsRequiredError("dsn")
		}
		dialector = gormpostgres.Open(dsn)
	case DriverSQLite, "":
		if dsn == "" {
			dsn = MemoryDSN
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("%q is not one of %s, %s", driver, DriverPostgres, DriverSQLite))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver != DriverPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// Close releases the connection pool of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
