package stats

import (
	"context"
	"testing"

	"animint/internal/domain/animals"
)

type testRegistry struct {
	animals []animals.Animal
	litters []animals.Litter
}

func (r *testRegistry) ListAll(ctx context.Context) ([]animals.Animal, error) {
	return r.animals, nil
}

func (r *testRegistry) ListByBreeder(ctx context.Context, breeder string) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	for _, a := range r.animals {
		if a.Breeder == breeder {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRegistry) ListLitters(ctx context.Context) ([]animals.Litter, error) {
	return r.litters, nil
}

func animal(id, breeder string, verified bool) animals.Animal {
	return animals.Animal{ID: id, Breeder: breeder, Owner: breeder, Verified: verified}
}

func TestService_BreederStats_NilWithoutAnimals(t *testing.T) {
	svc := NewService(&testRegistry{})

	got, err := svc.BreederStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("BreederStats error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for a breeder without animals, got %#v", got)
	}
}

func TestService_BreederStats_Counts(t *testing.T) {
	reg := &testRegistry{animals: []animals.Animal{
		animal("a1", "alice", true),
		animal("a2", "alice", false),
		animal("a3", "alice", true),
		animal("b1", "bob", false),
	}}
	svc := NewService(reg)

	got, err := svc.BreederStats(context.Background(), "alice")
	if err != nil {
		t.Fatalf("BreederStats error: %v", err)
	}
	if got.TotalAnimals != 3 || got.VerifiedAnimals != 2 {
		t.Fatalf("expected 3 total / 2 verified, got %d / %d", got.TotalAnimals, got.VerifiedAnimals)
	}
	if got.ReputationScore != 2*10+3 {
		t.Fatalf("unexpected reputation: %d", got.ReputationScore)
	}
}

func TestReputation_MonotoneInBothArguments(t *testing.T) {
	base := reputation(1, 3)
	if reputation(2, 3) <= base {
		t.Fatalf("verifying one more animal must raise the score")
	}
	if reputation(1, 4) <= base {
		t.Fatalf("registering one more animal must raise the score")
	}
	if reputation(0, 0) != 0 {
		t.Fatalf("zero animals must score the baseline 0")
	}
}

func TestService_GlobalStats_DistinctBreeders(t *testing.T) {
	reg := &testRegistry{
		animals: []animals.Animal{
			animal("a1", "alice", true),
			animal("a2", "alice", false),
			animal("b1", "bob", true),
		},
		litters: []animals.Litter{{ID: "l1", Sire: "a1", Dam: "a2"}},
	}
	svc := NewService(reg)

	got, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats error: %v", err)
	}
	if got.TotalAnimals != 3 || got.VerifiedAnimals != 2 {
		t.Fatalf("expected 3 animals / 2 verified, got %d / %d", got.TotalAnimals, got.VerifiedAnimals)
	}
	if got.TotalBreeders != 2 {
		t.Fatalf("breeders must count distinct values, got %d", got.TotalBreeders)
	}
	if got.TotalLitters != 1 {
		t.Fatalf("expected 1 litter, got %d", got.TotalLitters)
	}
}

func TestService_GlobalStats_Empty(t *testing.T) {
	svc := NewService(&testRegistry{})

	got, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats error: %v", err)
	}
	if got != (GlobalStats{}) {
		t.Fatalf("expected all-zero stats, got %#v", got)
	}
}
