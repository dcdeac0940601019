package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	pkgdb "bookstore-jsonb/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	// Key cố định cho pg_advisory_xact_lock; mọi instance dùng chung
	migrationLockKey int64 = 0x626f6f6b6a736f6e

	lockMigrations        = `SELECT pg_advisory_xact_lock($1)`
	createMigrationsTable = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    text        PRIMARY KEY,
			applied_at timestamptz NOT NULL DEFAULT now()
		)`
	listAppliedMigrations = `SELECT version FROM schema_migrations`
	insertMigration       = `INSERT INTO schema_migrations (version) VALUES ($1)`
)

// Migrate áp dụng các file *.sql chưa chạy trong fsys theo thứ tự tên file
// và ghi vào schema_migrations. Toàn bộ chạy trong một transaction giữ
// advisory lock, nên các instance khởi động cùng lúc chạy lần lượt và
// instance sau thấy các version đã được áp dụng.
// Schema được tạo trước nếu chưa có; bảng được tạo trong schema đầu tiên của search_path.
func Migrate(ctx context.Context, db pkgdb.Pool, fsys fs.FS, schema string) error {
	files, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	var applied []string
	err = pkgdb.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockMigrations, migrationLockKey); err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}

		if schema != "" && schema != "public" {
			if _, err := tx.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
				return fmt.Errorf("failed to create schema %s: %w", schema, err)
			}
		}

		if _, err := tx.Exec(ctx, createMigrationsTable); err != nil {
			return fmt.Errorf("failed to create schema_migrations: %w", err)
		}

		done, err := appliedVersions(ctx, tx)
		if err != nil {
			return err
		}

		for _, name := range files {
			if done[name] {
				continue
			}

			script, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read migration %s: %w", name, err)
			}
			if _, err := tx.Exec(ctx, string(script)); err != nil {
				return fmt.Errorf("migration %s failed: %w", name, err)
			}
			if _, err := tx.Exec(ctx, insertMigration, name); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			applied = append(applied, name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, name := range applied {
		log.Info().Str("migration", name).Msg("[DATABASE] Migration applied")
	}
	return nil
}

func appliedVersions(ctx context.Context, db pkgdb.DBTX) (map[string]bool, error) {
	rows, err := db.Query(ctx, listAppliedMigrations)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	return applied, nil
}
