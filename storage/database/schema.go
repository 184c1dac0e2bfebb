package database

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed schema.sql
var schema string

// Migrate applies the idempotent bootstrap DDL.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
