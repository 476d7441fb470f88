package migration

import (
	"embed"
	"io/fs"
)

//go:embed scripts/goose/*.sql scripts/migrate/*.sql
var scriptsFS embed.FS

const (
	gooseScriptsDir   = "scripts/goose"
	migrateScriptsDir = "scripts/migrate"
)

// DefaultScriptsPath is where new migration files are written during development.
const DefaultScriptsPath = "./internal/infrastructure/migration/scripts"

func gooseScripts() fs.FS {
	sub, err := fs.Sub(scriptsFS, gooseScriptsDir)
	if err != nil {
		panic(err)
	}
	return sub
}
