package postgres

import (
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

// Migrate applies pending goose migrations from the provided filesystem.
// The filesystem is expected to contain a top-level "migrations" directory.
func (c *Client) Migrate(fsys fs.FS) error {
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(c.db.DB, "migrations"); err != nil {
		if err == goose.ErrNoNextVersion {
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
