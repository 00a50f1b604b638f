package memory

import (
	"context"
	"sync"

	"animint/internal/domain/certificates"
)

// CertificateRepo comparte el LedgerRepo para que el débito del fee y el alta
// del certificado sean un solo paso: toma ambos locks y aplica o rechaza todo.
type CertificateRepo struct {
	mu     sync.RWMutex
	ledger *LedgerRepo
	items  []certificates.Certificate
	nextID uint64
}

func NewCertificateRepo(ledger *LedgerRepo) *CertificateRepo {
	return &CertificateRepo{
		ledger: ledger,
		nextID: 1,
	}
}

func (r *CertificateRepo) Mint(ctx context.Context, owner, breed, imageRef string, fee uint64) (certificates.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	if r.ledger.balances[owner] < fee {
		return certificates.Certificate{}, certificates.ErrInsufficientBalance
	}
	r.ledger.balances[owner] -= fee

	c := certificates.Certificate{
		ID:       r.nextID,
		Owner:    owner,
		Breed:    breed,
		ImageRef: imageRef,
	}
	r.nextID++
	r.items = append(r.items, c)
	return c, nil
}

func (r *CertificateRepo) ListAll(ctx context.Context) ([]certificates.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]certificates.Certificate, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *CertificateRepo) ListByOwner(ctx context.Context, owner string) ([]certificates.Certificate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]certificates.Certificate, 0)
	for _, c := range r.items {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	return out, nil
}
