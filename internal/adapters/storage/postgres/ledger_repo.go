package postgres

import (
	"context"
	"database/sql"
	"errors"

	"animint/internal/domain/ledger"
)

type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) BalanceOf(ctx context.Context, identity string) (uint64, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT amount FROM balances WHERE identity = $1
	`, identity)

	var amount int64
	if err := row.Scan(&amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// ausencia = cero
			return 0, nil
		}
		return 0, err
	}
	return uint64(amount), nil
}

// Transfer: débito condicionado a fondos + crédito, en una transacción.
func (r *LedgerRepo) Transfer(ctx context.Context, from, to string, amount uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE balances SET amount = amount - $2
		WHERE identity = $1 AND amount >= $2
	`, from, int64(amount))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ledger.ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO balances (identity, amount) VALUES ($1, $2)
		ON CONFLICT (identity) DO UPDATE SET amount = balances.amount + EXCLUDED.amount
	`, to, int64(amount))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// CreditBonus: un solo statement; bonus_at marca el one-time.
func (r *LedgerRepo) CreditBonus(ctx context.Context, identity string, amount uint64) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO balances (identity, amount, bonus_at) VALUES ($1, $2, now())
		ON CONFLICT (identity) DO UPDATE
			SET amount = balances.amount + EXCLUDED.amount, bonus_at = now()
			WHERE balances.bonus_at IS NULL
	`, identity, int64(amount))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ledger.ErrAlreadyCredited
	}
	return nil
}

func (r *LedgerRepo) Debit(ctx context.Context, identity string, amount uint64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE balances SET amount = amount - $2
		WHERE identity = $1 AND amount >= $2
	`, identity, int64(amount))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ledger.ErrInsufficientBalance
	}
	return nil
}
