package migrator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Migrator обёртка над goose для применения SQL миграций при старте сервиса
type Migrator struct {
	db  *sql.DB
	dir string
}

// New создает мигратор для PostgreSQL
func New(db *sql.DB, dir string) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("migrator: set dialect: %w", err)
	}

	return &Migrator{db: db, dir: dir}, nil
}

// Up применяет все pending миграции
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("migrator: apply migrations: %w", err)
	}
	return nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("migrator: get version: %w", err)
	}
	return version, nil
}
