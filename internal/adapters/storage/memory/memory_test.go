package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"animint/internal/domain/animals"
	"animint/internal/domain/certificates"
	"animint/internal/domain/ledger"
)

func TestAnimalRepo_ConcurrentSameMicrochip(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- repo.CreateAnimal(ctx, animals.Animal{
				ID:          fmt.Sprintf("animal-%d", i),
				MicrochipID: "CHIP-1",
			})
		}(i)
	}
	wg.Wait()
	close(errs)

	ok, dup := 0, 0
	for err := range errs {
		switch err {
		case nil:
			ok++
		case animals.ErrDuplicateMicrochip:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != n-1 {
		t.Fatalf("expected exactly one winner, got ok=%d dup=%d", ok, dup)
	}

	all, _ := repo.ListAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected 1 stored animal, got %d", len(all))
	}
}

func TestAnimalRepo_ListOrderStable(t *testing.T) {
	repo := NewAnimalRepo()
	ctx := context.Background()

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// intencionalmente fuera de orden
	for _, a := range []animals.Animal{
		{ID: "c", MicrochipID: "C3", BirthDate: t0.Add(2 * time.Hour)},
		{ID: "a", MicrochipID: "C1", BirthDate: t0},
		{ID: "b", MicrochipID: "C2", BirthDate: t0.Add(time.Hour)},
	} {
		if err := repo.CreateAnimal(ctx, a); err != nil {
			t.Fatalf("CreateAnimal: %v", err)
		}
	}

	all, _ := repo.ListAll(ctx)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if all[i].ID != id {
			t.Fatalf("expected order %v, got %s at %d", want, all[i].ID, i)
		}
	}
}

func TestLedgerRepo_ConcurrentTransfersConserveSupply(t *testing.T) {
	repo := NewLedgerRepo()
	ctx := context.Background()

	if err := repo.CreditBonus(ctx, "alice", 1000); err != nil {
		t.Fatalf("CreditBonus: %v", err)
	}
	if err := repo.CreditBonus(ctx, "bob", 1000); err != nil {
		t.Fatalf("CreditBonus: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = repo.Transfer(ctx, "alice", "bob", 7)
		}()
		go func() {
			defer wg.Done()
			_ = repo.Transfer(ctx, "bob", "alice", 3)
		}()
	}
	wg.Wait()

	a, _ := repo.BalanceOf(ctx, "alice")
	b, _ := repo.BalanceOf(ctx, "bob")
	if a+b != 2000 {
		t.Fatalf("total supply must be conserved: %d + %d", a, b)
	}
}

func TestLedgerRepo_BonusOnlyOnce(t *testing.T) {
	repo := NewLedgerRepo()
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.CreditBonus(ctx, "alice", ledger.WelcomeBonus)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else if err != ledger.ErrAlreadyCredited {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Fatalf("bonus must credit exactly once, got %d", ok)
	}

	bal, _ := repo.BalanceOf(ctx, "alice")
	if bal != ledger.WelcomeBonus {
		t.Fatalf("expected balance %d, got %d", ledger.WelcomeBonus, bal)
	}
}

func TestCertificateRepo_MintDebitsAtomically(t *testing.T) {
	lr := NewLedgerRepo()
	repo := NewCertificateRepo(lr)
	ctx := context.Background()

	// saldo para exactamente 3 mints
	if err := lr.CreditBonus(ctx, "alice", 3*certificates.MintFee); err != nil {
		t.Fatalf("CreditBonus: %v", err)
	}

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mint(ctx, "alice", "Beagle", "animint://breeds/beagle.png", certificates.MintFee)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		} else if err != certificates.ErrInsufficientBalance {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 3 {
		t.Fatalf("expected exactly 3 mints to pass, got %d", ok)
	}

	bal, _ := lr.BalanceOf(ctx, "alice")
	if bal != 0 {
		t.Fatalf("expected balance drained to 0, got %d", bal)
	}

	items, _ := repo.ListAll(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 certificates, got %d", len(items))
	}
	seen := map[uint64]struct{}{}
	for _, c := range items {
		if _, dup := seen[c.ID]; dup {
			t.Fatalf("certificate id %d assigned twice", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
}
