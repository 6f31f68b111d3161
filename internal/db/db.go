package db

import (
	"fmt"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/jujulabs/juju-dashboard/internal/analytics"
)

// Connect opens the store. mysql is the deployment target; sqlite keeps
// local development and CI self-contained.
func Connect(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = gormsqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return gdb, nil
}

// Migrate creates the two record tables. The dashboard never writes rows;
// this exists for dev/sqlite setups where the upstream pipelines are absent.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&analytics.Message{}, &analytics.Evaluation{})
}
