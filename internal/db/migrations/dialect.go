// Package migrations holds the Go migrations for the bookmarks schema. They are
// Go rather than SQL because column types differ between the supported drivers.
package migrations

import "fmt"

var dialect string

// SetDialect selects the DDL variant used by subsequent migrations.
func SetDialect(d string) error {
	switch d {
	case "sqlite3", "postgres", "mysql":
		dialect = d
		return nil
	default:
		return fmt.Errorf("migrations: unsupported dialect %q", d)
	}
}
