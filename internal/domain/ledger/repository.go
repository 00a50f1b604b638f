package ledger

import "context"

// Repository es el único dueño de los balances. Cada operación mutante es un
// paso atómico del adapter: nadie observa un débito sin su crédito.
type Repository interface {
	// BalanceOf devuelve 0 para identidades desconocidas (ausencia = cero).
	BalanceOf(ctx context.Context, identity string) (uint64, error)

	// Transfer debita y acredita como un solo paso.
	// Falla ErrInsufficientBalance sin tocar nada.
	Transfer(ctx context.Context, from, to string, amount uint64) error

	// CreditBonus acredita el bonus one-time.
	// Falla ErrAlreadyCredited si esa identidad ya lo recibió.
	CreditBonus(ctx context.Context, identity string, amount uint64) error

	// Debit descuenta amount. Falla ErrInsufficientBalance.
	Debit(ctx context.Context, identity string, amount uint64) error
}
