package certificates

import "context"

type Repository interface {
	// Mint debita fee del balance del owner y agrega el certificado como un
	// solo paso atómico: pasan las dos cosas o ninguna.
	// Falla ErrInsufficientBalance sin tocar nada.
	Mint(ctx context.Context, owner, breed, imageRef string, fee uint64) (Certificate, error)

	ListAll(ctx context.Context) ([]Certificate, error)
	ListByOwner(ctx context.Context, owner string) ([]Certificate, error)
}
