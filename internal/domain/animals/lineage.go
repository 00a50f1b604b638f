package animals

import (
	"context"
	"strings"
)

// Lineage devuelve el animal seguido de su cadena de ancestros (sire antes
// que dam, en profundidad). Las referencias a padres son acíclicas por
// construcción, así que el recorrido siempre termina; la profundidad la
// acota la cantidad de generaciones, no un límite artificial.
// Ancestros ausentes simplemente no aparecen, no son error.
func (s *Service) Lineage(ctx context.Context, animalID string) ([]Animal, error) {
	root, err := s.repo.GetAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return nil, err
	}

	out := make([]Animal, 0, 4)
	seen := map[string]struct{}{}
	s.collectLineage(ctx, root, seen, &out)
	return out, nil
}

func (s *Service) collectLineage(ctx context.Context, a Animal, seen map[string]struct{}, out *[]Animal) {
	if _, ok := seen[a.ID]; ok {
		return
	}
	seen[a.ID] = struct{}{}
	*out = append(*out, a)

	for _, ref := range []*string{a.Sire, a.Dam} {
		if ref == nil {
			continue
		}
		parent, err := s.repo.GetAnimal(ctx, *ref)
		if err != nil {
			// ancestro ausente: lo salteamos
			continue
		}
		s.collectLineage(ctx, parent, seen, out)
	}
}
