// Package txmanager менеджер транзакций поверх dbmetrics.DB.
// Сериализуемые транзакции повторяются ограниченное число раз
// при конфликте сериализации (SQLSTATE 40001).
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/glowbook/scheduling-service/pkg/dbmetrics"
)

// максимальное число попыток выполнения сериализуемой транзакции
const maxSerializableAttempts = 3

var (
	// ErrSerializationFailure возвращается, когда сериализуемая транзакция
	// не смогла выполниться за отведённое число попыток из-за конкурентных изменений
	ErrSerializationFailure = errors.New("txmanager: serialization failure, retries exhausted")
)

// TxBeginner интерфейс для начала транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
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

// DoSerializable выполняет fn в сериализуемой транзакции.
// При конфликте сериализации транзакция повторяется целиком;
// после maxSerializableAttempts попыток возвращается ErrSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil {
			return nil
		}
		if !IsSerializationFailure(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrSerializationFailure, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("txmanager: begin tx: %w", err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: commit tx: %w", err)
	}

	return nil
}

// IsSerializationFailure возвращает true для ошибок SQLSTATE 40001
// (serialization_failure) и 40P01 (deadlock_detected)
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
