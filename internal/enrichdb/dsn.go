// Package enrichdb holds helpers for connecting to the enrichment store
// across the supported database/sql drivers.
package enrichdb

import (
	"strconv"
	"strings"
)

// Driver names as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DriverForDSN maps a DSN to its database/sql driver name. Postgres URLs keep
// their full DSN; anything else is treated as a SQLite database path.
func DriverForDSN(dsn string) (driver, dataSource string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres, dsn
	}
	return DriverSQLite, dsn
}

// Placeholders renders n SQL parameter placeholders in the driver's style,
// starting at position offset+1 for positional drivers.
// Placeholders(DriverPostgres, 3, 0) → "$1,$2,$3"
// Placeholders(DriverSQLite, 3, 0)   → "?,?,?"
func Placeholders(driver string, n, offset int) string {
	if n <= 0 {
		return ""
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if driver == DriverPostgres {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(offset + i + 1))
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}
