// Package api exposes assets embedded at the repository root.
package api

import "embed"

// Migrations holds the SQL migration files applied at startup.
//
//go:embed migrations/*.sql
var Migrations embed.FS
