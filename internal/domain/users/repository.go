package users

import "context"

type Repository interface {
	// Create falla con ErrConflict si la identidad ya tiene user o si el
	// nombre (no vacío) ya está tomado. El chequeo y el insert son un solo
	// paso atómico del adapter.
	Create(ctx context.Context, u User) error

	GetByIdentity(ctx context.Context, identity string) (User, error)
	GetByName(ctx context.Context, name string) (User, error)

	// SetVerified marca verified=true. Idempotente sobre un user ya verificado.
	SetVerified(ctx context.Context, identity string) error

	ListAll(ctx context.Context) ([]User, error)
}
