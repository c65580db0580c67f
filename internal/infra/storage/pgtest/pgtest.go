// Package pgtest поднимает изолированную схему PostgreSQL для интеграционных тестов.
// Тесты пропускаются, если POSTGRES_TEST_DSN не задан
package pgtest

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/m04kA/heritage-booking/migrations"
	"github.com/m04kA/heritage-booking/pkg/dbmetrics"
)

// EnvDSN переменная окружения со строкой подключения к тестовой базе
const EnvDSN = "POSTGRES_TEST_DSN"

// Open создает схему heritage_test_*, накатывает миграции и возвращает обёртку,
// все соединения которой работают в этой схеме. Схема удаляется по завершении теста
func Open(t testing.TB) *dbmetrics.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip(EnvDSN + " is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer admin.Close()

	schema := "heritage_test_" + uuid.NewString()[:8]
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create schema %s: %v", schema, err)
	}

	scopedDSN, err := withSearchPath(dsn, schema)
	if err != nil {
		t.Fatalf("build dsn: %v", err)
	}

	db, err := sql.Open("postgres", scopedDSN)
	if err != nil {
		t.Fatalf("open postgres with search_path: %v", err)
	}
	db.SetMaxOpenConns(50)

	if err := migrations.ApplyPostgres(ctx, db); err != nil {
		_ = db.Close()
		t.Fatalf("apply migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cleanup, err := sql.Open("postgres", dsn)
		if err != nil {
			return
		}
		defer cleanup.Close()
		_, _ = cleanup.ExecContext(ctx, "DROP SCHEMA "+schema+" CASCADE")
	})

	return dbmetrics.Wrap(db, nil)
}

// withSearchPath добавляет search_path в DSN в URL-форме или в форме key=value.
// lib/pq передает неизвестные параметры серверу как параметры сессии
func withSearchPath(dsn, schema string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return dsn + " search_path=" + schema, nil
}
