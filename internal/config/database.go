// internal/config/database.go
package config

import (
	"fmt"
)

func (d *DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// UsesDatabase reports whether the configured driver needs a gorm connection.
func (d *DatabaseConfig) UsesDatabase() bool {
	return d.Driver == DriverSQLite || d.Driver == DriverPostgres
}
