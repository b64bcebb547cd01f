// Package typeracer holds the assets shared by the binaries of the module.
package typeracer

import "embed"

// Migrations contains the goose migrations of the postgres storage.
//
//go:embed migrations/*.sql
var Migrations embed.FS
