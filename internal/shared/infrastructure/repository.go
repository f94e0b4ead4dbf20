package infrastructure

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// UnitOfWork gère les transactions pour les opérations d'écriture
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

// DBUnitOfWork implémentation de UnitOfWork avec sqlx.DB
type DBUnitOfWork struct {
	db *sqlx.DB
}

// NewUnitOfWork crée une nouvelle instance de UnitOfWork
func NewUnitOfWork(db *sqlx.DB) UnitOfWork {
	return &DBUnitOfWork{db: db}
}

// Execute exécute une fonction dans une transaction: commit si fn réussit,
// rollback sinon (y compris en cas de panic)
func (uow *DBUnitOfWork) Execute(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := uow.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SavepointError signale un échec du savepoint lui-même: la transaction n'est plus fiable
type SavepointError struct {
	Op  string
	Err error
}

func (e *SavepointError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SavepointError) Unwrap() error {
	return e.Err
}

// WithSavepoint exécute fn entre SAVEPOINT et RELEASE.
// Si fn échoue, la transaction revient au savepoint et reste utilisable
// (PostgreSQL invalide sinon toute la transaction après une requête en échec);
// l'erreur de fn est alors retournée telle quelle.
func WithSavepoint(ctx context.Context, tx *sqlx.Tx, name string, fn func() error) error {
	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return &SavepointError{Op: "savepoint " + name, Err: err}
	}
	if fnErr := fn(); fnErr != nil {
		if _, err := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+name); err != nil {
			return &SavepointError{Op: "rollback to savepoint " + name, Err: err}
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
			return &SavepointError{Op: "release savepoint " + name, Err: err}
		}
		return fnErr
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+name); err != nil {
		return &SavepointError{Op: "release savepoint " + name, Err: err}
	}
	return nil
}
