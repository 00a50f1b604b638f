package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"animint/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("animal not found")
	ErrLitterNotFound     = errors.New("litter not found")
	ErrDuplicateMicrochip = errors.New("microchip already registered")
	ErrUnknownParent      = errors.New("unknown parent")
	ErrParentMismatch     = errors.New("sire and dam must be distinct")
	ErrOffspringMismatch  = errors.New("offspring parentage mismatch")
	ErrEmptyLitter        = errors.New("litter has no offspring")
	ErrNotOwner           = errors.New("caller is not the owner")
	ErrNotAuthorized      = errors.New("caller may not verify this animal")
)

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time

	// verifiers: identidades con rol verificador (además del breeder).
	verifiers map[string]struct{}
}

func NewService(repo Repository, m *metrics.Metrics, verifiers []string) *Service {
	vs := make(map[string]struct{}, len(verifiers))
	for _, v := range verifiers {
		v = strings.TrimSpace(v)
		if v != "" {
			vs[v] = struct{}{}
		}
	}
	return &Service{
		repo:      repo,
		metrics:   m,
		now:       time.Now,
		verifiers: vs,
	}
}

type RegisterAnimalInput struct {
	MicrochipID string
	Species     string
	Breed       string
	Name        string
	Sire        *string
	Dam         *string
	DNAHash     *string
}

// RegisterAnimal da de alta un animal con owner = breeder = caller.
// Los padres, si vienen, deben existir ya en el registro.
func (s *Service) RegisterAnimal(ctx context.Context, caller string, in RegisterAnimalInput) (Animal, error) {
	caller = strings.TrimSpace(caller)
	chip := strings.TrimSpace(in.MicrochipID)
	species := strings.TrimSpace(in.Species)
	breed := strings.TrimSpace(in.Breed)
	name := strings.TrimSpace(in.Name)

	if caller == "" || chip == "" || species == "" || breed == "" || name == "" {
		return Animal{}, ErrInvalidInput
	}

	sire, err := s.resolveParent(ctx, in.Sire)
	if err != nil {
		return Animal{}, err
	}
	dam, err := s.resolveParent(ctx, in.Dam)
	if err != nil {
		return Animal{}, err
	}

	var dna *string
	if in.DNAHash != nil && strings.TrimSpace(*in.DNAHash) != "" {
		v := strings.TrimSpace(*in.DNAHash)
		dna = &v
	}

	a := Animal{
		ID:          uuid.NewString(),
		MicrochipID: chip,
		Species:     species,
		Breed:       breed,
		Name:        name,
		Owner:       caller,
		Breeder:     caller,
		Sire:        sire,
		Dam:         dam,
		DNAHash:     dna,
		BirthDate:   s.now(),
	}

	// El chequeo de unicidad de chip y el insert son un solo paso del repo.
	if err := s.repo.CreateAnimal(ctx, a); err != nil {
		return Animal{}, err
	}
	s.metrics.IncAnimalRegistered()
	return a, nil
}

func (s *Service) resolveParent(ctx context.Context, ref *string) (*string, error) {
	if ref == nil || strings.TrimSpace(*ref) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*ref)
	if _, err := s.repo.GetAnimal(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownParent
		}
		return nil, err
	}
	return &id, nil
}

// RegisterLitter registra una camada. Cada cría debe tener exactamente
// (sire, dam) como parentesco registrado; se chequea al crear, no después.
func (s *Service) RegisterLitter(ctx context.Context, caller, sire, dam string, offspring []string) (Litter, error) {
	caller = strings.TrimSpace(caller)
	sire = strings.TrimSpace(sire)
	dam = strings.TrimSpace(dam)

	if caller == "" || sire == "" || dam == "" {
		return Litter{}, ErrInvalidInput
	}
	if sire == dam {
		return Litter{}, ErrParentMismatch
	}
	if len(offspring) == 0 {
		return Litter{}, ErrEmptyLitter
	}

	if _, err := s.repo.GetAnimal(ctx, sire); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Litter{}, ErrUnknownParent
		}
		return Litter{}, err
	}
	if _, err := s.repo.GetAnimal(ctx, dam); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Litter{}, ErrUnknownParent
		}
		return Litter{}, err
	}

	ids := make([]string, 0, len(offspring))
	for _, off := range offspring {
		off = strings.TrimSpace(off)
		if off == "" {
			return Litter{}, ErrInvalidInput
		}
		child, err := s.repo.GetAnimal(ctx, off)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Litter{}, ErrOffspringMismatch
			}
			return Litter{}, err
		}
		if child.Sire == nil || child.Dam == nil {
			return Litter{}, ErrOffspringMismatch
		}
		if *child.Sire != sire || *child.Dam != dam {
			return Litter{}, ErrOffspringMismatch
		}
		ids = append(ids, off)
	}

	l := Litter{
		ID:        uuid.NewString(),
		Sire:      sire,
		Dam:       dam,
		Offspring: ids,
		Breeder:   caller,
		BirthDate: s.now(),
	}

	if err := s.repo.CreateLitter(ctx, l); err != nil {
		return Litter{}, err
	}
	s.metrics.IncLitterRegistered()
	return l, nil
}

// TransferOwnership cambia el owner. El breeder nunca se altera.
func (s *Service) TransferOwnership(ctx context.Context, caller, animalID, newOwner string) error {
	caller = strings.TrimSpace(caller)
	newOwner = strings.TrimSpace(newOwner)
	if caller == "" || newOwner == "" {
		return ErrInvalidInput
	}

	a, err := s.repo.GetAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return err
	}
	if a.Owner != caller {
		return ErrNotOwner
	}

	a.Owner = newOwner
	return s.repo.UpdateAnimal(ctx, a)
}

// VerifyAnimal marca verified=true. Autorizado: rol verificador o el breeder
// del animal. Idempotente sobre un animal ya verificado.
func (s *Service) VerifyAnimal(ctx context.Context, caller, animalID string) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return ErrInvalidInput
	}

	a, err := s.repo.GetAnimal(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return err
	}

	if _, ok := s.verifiers[caller]; !ok && a.Breeder != caller {
		return ErrNotAuthorized
	}

	if a.Verified {
		return nil
	}

	a.Verified = true
	if err := s.repo.UpdateAnimal(ctx, a); err != nil {
		return err
	}
	s.metrics.IncAnimalVerified()
	return nil
}

// VerifyMicrochip resuelve chip -> animal id. Lookup puro.
func (s *Service) VerifyMicrochip(ctx context.Context, chip string) (string, bool, error) {
	a, err := s.repo.GetByMicrochip(ctx, strings.TrimSpace(chip))
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return a.ID, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetAnimal(ctx, strings.TrimSpace(id))
}

func (s *Service) ListAll(ctx context.Context) ([]Animal, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(owner))
}

func (s *Service) ListByBreeder(ctx context.Context, breeder string) ([]Animal, error) {
	return s.repo.ListByBreeder(ctx, strings.TrimSpace(breeder))
}

func (s *Service) GetLitter(ctx context.Context, id string) (Litter, error) {
	return s.repo.GetLitter(ctx, strings.TrimSpace(id))
}

func (s *Service) ListLitters(ctx context.Context) ([]Litter, error) {
	return s.repo.ListLitters(ctx)
}
