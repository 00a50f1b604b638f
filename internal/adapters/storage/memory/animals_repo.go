package memory

import (
	"context"
	"sort"
	"sync"

	"animint/internal/domain/animals"
)

// AnimalRepo es storage estilo arena: los registros se referencian por id
// estable, nunca por puntero, así el grafo de parentesco no arrastra
// ownership cíclico.
type AnimalRepo struct {
	mu      sync.RWMutex
	byID    map[string]animals.Animal
	byChip  map[string]string // microchip -> animal id
	litters map[string]animals.Litter
}

func NewAnimalRepo() *AnimalRepo {
	return &AnimalRepo{
		byID:    make(map[string]animals.Animal),
		byChip:  make(map[string]string),
		litters: make(map[string]animals.Litter),
	}
}

// CreateAnimal chequea el índice de microchip e inserta bajo el mismo lock:
// dos registraciones con el mismo chip no pueden pasar las dos.
func (r *AnimalRepo) CreateAnimal(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byChip[a.MicrochipID]; taken {
		return animals.ErrDuplicateMicrochip
	}

	r.byID[a.ID] = a
	r.byChip[a.MicrochipID] = a.ID
	return nil
}

func (r *AnimalRepo) GetAnimal(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *AnimalRepo) GetByMicrochip(ctx context.Context, chip string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byChip[chip]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *AnimalRepo) UpdateAnimal(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[a.ID]; !ok {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AnimalRepo) ListAll(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sortAnimals(out)
	return out, nil
}

func (r *AnimalRepo) ListByOwner(ctx context.Context, owner string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	sortAnimals(out)
	return out, nil
}

func (r *AnimalRepo) ListByBreeder(ctx context.Context, breeder string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.Breeder == breeder {
			out = append(out, a)
		}
	}
	sortAnimals(out)
	return out, nil
}

func (r *AnimalRepo) CreateLitter(ctx context.Context, l animals.Litter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.litters[l.ID] = l
	return nil
}

func (r *AnimalRepo) GetLitter(ctx context.Context, id string) (animals.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.litters[id]
	if !ok {
		return animals.Litter{}, animals.ErrLitterNotFound
	}
	return l, nil
}

func (r *AnimalRepo) ListLitters(ctx context.Context) ([]animals.Litter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Litter, 0, len(r.litters))
	for _, l := range r.litters {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BirthDate.Equal(out[j].BirthDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].BirthDate.Before(out[j].BirthDate)
	})
	return out, nil
}

// Orden estable por birth_date asc (id desempata): "estable para un estado
// dado del registro", nada más.
func sortAnimals(items []animals.Animal) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].BirthDate.Equal(items[j].BirthDate) {
			return items[i].ID < items[j].ID
		}
		return items[i].BirthDate.Before(items[j].BirthDate)
	})
}
