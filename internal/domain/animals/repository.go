package animals

import "context"

type Repository interface {
	// CreateAnimal chequea el índice de microchip e inserta como un solo paso
	// atómico del adapter. Falla ErrDuplicateMicrochip sin insertar nada.
	CreateAnimal(ctx context.Context, a Animal) error

	GetAnimal(ctx context.Context, id string) (Animal, error)
	GetByMicrochip(ctx context.Context, chip string) (Animal, error)
	UpdateAnimal(ctx context.Context, a Animal) error

	ListAll(ctx context.Context) ([]Animal, error)
	ListByOwner(ctx context.Context, owner string) ([]Animal, error)
	ListByBreeder(ctx context.Context, breeder string) ([]Animal, error)

	CreateLitter(ctx context.Context, l Litter) error
	GetLitter(ctx context.Context, id string) (Litter, error)
	ListLitters(ctx context.Context) ([]Litter, error)
}
