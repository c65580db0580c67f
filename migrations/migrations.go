package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const downMarker = "-- +migrate Down"

//go:embed postgres/*.sql
var postgresFS embed.FS

// Executor исполнитель SQL (*sql.DB, *dbmetrics.DB)
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ApplyPostgres выполняет Up-части миграций PostgreSQL в порядке имен файлов.
// Миграции идемпотентны (IF NOT EXISTS), повторный запуск безопасен
func ApplyPostgres(ctx context.Context, db Executor) error {
	names, err := fs.Glob(postgresFS, "postgres/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		body, err := postgresFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		if _, err := db.ExecContext(ctx, upSection(string(body))); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}

func upSection(body string) string {
	if i := strings.Index(body, downMarker); i >= 0 {
		return body[:i]
	}
	return body
}
