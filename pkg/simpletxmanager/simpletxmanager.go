// Package simpletxmanager менеджер транзакций поверх обычного *sql.DB,
// без обёртки метрик. Семантика повторяет pkg/txmanager.
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/glowbook/scheduling-service/pkg/dbmetrics"
	"github.com/glowbook/scheduling-service/pkg/txmanager"
)

const maxSerializableAttempts = 3

// TransactionManager менеджер транзакций без метрик
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повторами
// при конфликте сериализации
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !txmanager.IsSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", txmanager.ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin tx: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: commit tx: %w", err)
	}

	return nil
}
