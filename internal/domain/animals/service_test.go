package animals

import (
	"context"
	"fmt"
	"testing"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Animal
	byChip  map[string]string
	litters map[string]Litter
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:    map[string]Animal{},
		byChip:  map[string]string{},
		litters: map[string]Litter{},
	}
}

func (r *testRepo) CreateAnimal(ctx context.Context, a Animal) error {
	if _, taken := r.byChip[a.MicrochipID]; taken {
		return ErrDuplicateMicrochip
	}
	r.byID[a.ID] = a
	r.byChip[a.MicrochipID] = a.ID
	return nil
}

func (r *testRepo) GetAnimal(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetByMicrochip(ctx context.Context, chip string) (Animal, error) {
	id, ok := r.byChip[chip]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) UpdateAnimal(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Animal, error) {
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.Owner == owner {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) ListByBreeder(ctx context.Context, breeder string) ([]Animal, error) {
	out := make([]Animal, 0)
	for _, a := range r.byID {
		if a.Breeder == breeder {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) CreateLitter(ctx context.Context, l Litter) error {
	r.litters[l.ID] = l
	return nil
}

func (r *testRepo) GetLitter(ctx context.Context, id string) (Litter, error) {
	l, ok := r.litters[id]
	if !ok {
		return Litter{}, ErrLitterNotFound
	}
	return l, nil
}

func (r *testRepo) ListLitters(ctx context.Context) ([]Litter, error) {
	out := make([]Litter, 0, len(r.litters))
	for _, l := range r.litters {
		out = append(out, l)
	}
	return out, nil
}

func register(t *testing.T, svc *Service, caller, chip string, sire, dam *string) Animal {
	t.Helper()
	a, err := svc.RegisterAnimal(context.Background(), caller, RegisterAnimalInput{
		MicrochipID: chip,
		Species:     "Dog",
		Breed:       "Lab",
		Name:        "Rex",
		Sire:        sire,
		Dam:         dam,
	})
	if err != nil {
		t.Fatalf("RegisterAnimal(%s) error: %v", chip, err)
	}
	return a
}

// -------------------------
// Tests
// -------------------------

func TestService_RegisterAnimal_ResolvableByMicrochip(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	a := register(t, svc, "breeder-1", "CHIP-1", nil, nil)

	if a.Owner != "breeder-1" || a.Breeder != "breeder-1" {
		t.Fatalf("expected owner=breeder=caller, got owner=%s breeder=%s", a.Owner, a.Breeder)
	}
	if a.Verified {
		t.Fatalf("expected verified=false at registration")
	}

	id, found, err := svc.VerifyMicrochip(context.Background(), "CHIP-1")
	if err != nil || !found {
		t.Fatalf("VerifyMicrochip: found=%v err=%v", found, err)
	}
	if id != a.ID {
		t.Fatalf("chip must resolve to the new animal: got %s want %s", id, a.ID)
	}
}

func TestService_RegisterAnimal_DuplicateMicrochip(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	register(t, svc, "breeder-1", "CHIP-1", nil, nil)

	_, err := svc.RegisterAnimal(context.Background(), "breeder-2", RegisterAnimalInput{
		MicrochipID: "CHIP-1",
		Species:     "Dog",
		Breed:       "Lab",
		Name:        "Otro",
	})
	if err != ErrDuplicateMicrochip {
		t.Fatalf("expected ErrDuplicateMicrochip, got %v", err)
	}

	// exactamente un animal con ese chip
	count := 0
	for _, a := range repo.byID {
		if a.MicrochipID == "CHIP-1" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one animal with CHIP-1, got %d", count)
	}
}

func TestService_RegisterAnimal_UnknownParent(t *testing.T) {
	svc := NewService(newTestRepo(), nil, nil)

	ghost := "no-such-animal"
	_, err := svc.RegisterAnimal(context.Background(), "breeder-1", RegisterAnimalInput{
		MicrochipID: "CHIP-1",
		Species:     "Dog",
		Breed:       "Lab",
		Name:        "Rex",
		Sire:        &ghost,
	})
	if err != ErrUnknownParent {
		t.Fatalf("expected ErrUnknownParent, got %v", err)
	}
}

func TestService_Lineage_ParentChain(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	a1 := register(t, svc, "breeder-1", "CHIP-1", nil, nil)
	a2 := register(t, svc, "breeder-1", "CHIP-2", &a1.ID, nil)

	chain, err := svc.Lineage(context.Background(), a2.ID)
	if err != nil {
		t.Fatalf("Lineage error: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("expected [A2, A1], got %d animals", len(chain))
	}
	if chain[0].ID != a2.ID || chain[1].ID != a1.ID {
		t.Fatalf("expected [%s, %s], got [%s, %s]", a2.ID, a1.ID, chain[0].ID, chain[1].ID)
	}
}

func TestService_Lineage_ManyGenerationsTerminates(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	parent := register(t, svc, "b", "CHIP-0", nil, nil)
	last := parent
	for i := 1; i <= 20; i++ {
		last = register(t, svc, "b", fmt.Sprintf("CHIP-%d", i), &last.ID, nil)
	}

	chain, err := svc.Lineage(context.Background(), last.ID)
	if err != nil {
		t.Fatalf("Lineage error: %v", err)
	}
	if len(chain) != 21 {
		t.Fatalf("expected 21 generations, got %d", len(chain))
	}
	if chain[len(chain)-1].ID != parent.ID {
		t.Fatalf("expected the founder at the end of the chain")
	}
}

func TestService_Lineage_SharedAncestorListedOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	founder := register(t, svc, "b", "CHIP-F", nil, nil)
	sire := register(t, svc, "b", "CHIP-S", &founder.ID, nil)
	dam := register(t, svc, "b", "CHIP-D", &founder.ID, nil)
	child := register(t, svc, "b", "CHIP-C", &sire.ID, &dam.ID)

	chain, err := svc.Lineage(context.Background(), child.ID)
	if err != nil {
		t.Fatalf("Lineage error: %v", err)
	}
	if len(chain) != 4 {
		t.Fatalf("shared ancestor must appear once: got %d animals", len(chain))
	}
}

func TestService_RegisterLitter_Validations(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	sire := register(t, svc, "b", "CHIP-S", nil, nil)
	dam := register(t, svc, "b", "CHIP-D", nil, nil)
	stranger := register(t, svc, "b", "CHIP-X", nil, nil)
	child := register(t, svc, "b", "CHIP-C", &sire.ID, &dam.ID)

	ctx := context.Background()

	if _, err := svc.RegisterLitter(ctx, "b", sire.ID, sire.ID, []string{child.ID}); err != ErrParentMismatch {
		t.Fatalf("expected ErrParentMismatch for sire==dam, got %v", err)
	}
	if _, err := svc.RegisterLitter(ctx, "b", sire.ID, dam.ID, nil); err != ErrEmptyLitter {
		t.Fatalf("expected ErrEmptyLitter, got %v", err)
	}
	if _, err := svc.RegisterLitter(ctx, "b", "ghost", dam.ID, []string{child.ID}); err != ErrUnknownParent {
		t.Fatalf("expected ErrUnknownParent, got %v", err)
	}
	// stranger no tiene (sire, dam) como parentesco
	if _, err := svc.RegisterLitter(ctx, "b", sire.ID, dam.ID, []string{stranger.ID}); err != ErrOffspringMismatch {
		t.Fatalf("expected ErrOffspringMismatch, got %v", err)
	}

	l, err := svc.RegisterLitter(ctx, "b", sire.ID, dam.ID, []string{child.ID})
	if err != nil {
		t.Fatalf("RegisterLitter error: %v", err)
	}
	if len(l.Offspring) != 1 || l.Offspring[0] != child.ID {
		t.Fatalf("unexpected offspring: %#v", l.Offspring)
	}
}

func TestService_TransferOwnership(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)

	a := register(t, svc, "breeder-1", "CHIP-1", nil, nil)
	ctx := context.Background()

	if err := svc.TransferOwnership(ctx, "stranger", a.ID, "new-owner"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.TransferOwnership(ctx, "breeder-1", "ghost", "new-owner"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.TransferOwnership(ctx, "breeder-1", a.ID, "new-owner"); err != nil {
		t.Fatalf("TransferOwnership error: %v", err)
	}

	got, _ := svc.Get(ctx, a.ID)
	if got.Owner != "new-owner" {
		t.Fatalf("expected owner new-owner, got %s", got.Owner)
	}
	if got.Breeder != "breeder-1" {
		t.Fatalf("breeder must never change on transfer, got %s", got.Breeder)
	}
}

func TestService_VerifyAnimal_AuthorityAndIdempotence(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil, []string{"inspector-1"})

	a := register(t, svc, "breeder-1", "CHIP-1", nil, nil)
	ctx := context.Background()

	if err := svc.VerifyAnimal(ctx, "stranger", a.ID); err != ErrNotAuthorized {
		t.Fatalf("expected ErrNotAuthorized for stranger, got %v", err)
	}

	// el breeder puede
	if err := svc.VerifyAnimal(ctx, "breeder-1", a.ID); err != nil {
		t.Fatalf("VerifyAnimal by breeder error: %v", err)
	}
	// idempotente, via rol verificador
	if err := svc.VerifyAnimal(ctx, "inspector-1", a.ID); err != nil {
		t.Fatalf("re-verify must be Ok, got %v", err)
	}

	got, _ := svc.Get(ctx, a.ID)
	if !got.Verified {
		t.Fatalf("expected verified=true")
	}
}
