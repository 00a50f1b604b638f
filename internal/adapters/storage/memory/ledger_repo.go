package memory

import (
	"context"
	"sync"

	"animint/internal/domain/ledger"
)

// LedgerRepo guarda balances por identidad. La ausencia de entrada es saldo
// cero, no error: acreditar a una identidad desconocida la crea.
type LedgerRepo struct {
	mu       sync.RWMutex
	balances map[string]uint64
	bonuses  map[string]struct{} // identidades que ya cobraron el welcome bonus
}

func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{
		balances: make(map[string]uint64),
		bonuses:  make(map[string]struct{}),
	}
}

func (r *LedgerRepo) BalanceOf(ctx context.Context, identity string) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[identity], nil
}

// Transfer aplica débito y crédito bajo el mismo lock: ningún lector ve el
// débito sin el crédito.
func (r *LedgerRepo) Transfer(ctx context.Context, from, to string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[from] < amount {
		return ledger.ErrInsufficientBalance
	}
	r.balances[from] -= amount
	r.balances[to] += amount
	return nil
}

func (r *LedgerRepo) CreditBonus(ctx context.Context, identity string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, done := r.bonuses[identity]; done {
		return ledger.ErrAlreadyCredited
	}
	r.bonuses[identity] = struct{}{}
	r.balances[identity] += amount
	return nil
}

func (r *LedgerRepo) Debit(ctx context.Context, identity string, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.balances[identity] < amount {
		return ledger.ErrInsufficientBalance
	}
	r.balances[identity] -= amount
	return nil
}
