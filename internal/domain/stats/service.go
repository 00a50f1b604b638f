package stats

import (
	"context"

	"animint/internal/domain/animals"
)

// BreederStats se deriva en cada lectura desde el registro de animales.
// No hay agregados almacenados que puedan driftear.
type BreederStats struct {
	Breeder         string
	TotalAnimals    uint64
	VerifiedAnimals uint64
	ReputationScore uint64
}

type GlobalStats struct {
	TotalAnimals    uint64
	TotalLitters    uint64
	TotalBreeders   uint64
	VerifiedAnimals uint64
}

// AnimalRegistry es la vista read-only que este módulo necesita.
type AnimalRegistry interface {
	ListAll(ctx context.Context) ([]animals.Animal, error)
	ListByBreeder(ctx context.Context, breeder string) ([]animals.Animal, error)
	ListLitters(ctx context.Context) ([]animals.Litter, error)
}

type Service struct {
	registry AnimalRegistry
}

func NewService(registry AnimalRegistry) *Service {
	return &Service{registry: registry}
}

// BreederStats devuelve nil para un breeder sin animales.
func (s *Service) BreederStats(ctx context.Context, breeder string) (*BreederStats, error) {
	items, err := s.registry.ListByBreeder(ctx, breeder)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	var verified uint64
	for _, a := range items {
		if a.Verified {
			verified++
		}
	}

	total := uint64(len(items))
	return &BreederStats{
		Breeder:         breeder,
		TotalAnimals:    total,
		VerifiedAnimals: verified,
		ReputationScore: reputation(verified, total),
	}, nil
}

// reputation: verified*10 + total. Monótona no-decreciente en ambos
// argumentos (más verificados nunca baja el score) y cero animales da
// baseline 0 en vez de error.
func reputation(verified, total uint64) uint64 {
	return verified*10 + total
}

// GlobalStats cuenta breeders como valores distintos de breeder sobre los
// animales, no como users registrados: un breeder puede registrar animales
// sin completar nunca el registro de usuario.
func (s *Service) GlobalStats(ctx context.Context) (GlobalStats, error) {
	items, err := s.registry.ListAll(ctx)
	if err != nil {
		return GlobalStats{}, err
	}
	litters, err := s.registry.ListLitters(ctx)
	if err != nil {
		return GlobalStats{}, err
	}

	breeders := map[string]struct{}{}
	var verified uint64
	for _, a := range items {
		breeders[a.Breeder] = struct{}{}
		if a.Verified {
			verified++
		}
	}

	return GlobalStats{
		TotalAnimals:    uint64(len(items)),
		TotalLitters:    uint64(len(litters)),
		TotalBreeders:   uint64(len(breeders)),
		VerifiedAnimals: verified,
	}, nil
}
