package memory

import (
	"context"
	"sort"
	"sync"

	"animint/internal/domain/users"
)

type UserRepo struct {
	mu     sync.RWMutex
	byID   map[string]users.User
	byName map[string]string // name -> identity
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:   make(map[string]users.User),
		byName: make(map[string]string),
	}
}

// Create mantiene el índice de nombres junto al registro primario bajo el
// mismo lock: chequeo e insert son un solo paso.
func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.Identity]; exists {
		return users.ErrConflict
	}
	if u.Name != "" {
		if _, taken := r.byName[u.Name]; taken {
			return users.ErrConflict
		}
	}

	r.byID[u.Identity] = u
	if u.Name != "" {
		r.byName[u.Name] = u.Identity
	}
	return nil
}

func (r *UserRepo) GetByIdentity(ctx context.Context, identity string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[identity]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *UserRepo) SetVerified(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[identity]
	if !ok {
		return users.ErrNotFound
	}
	u.Verified = true
	r.byID[identity] = u
	return nil
}

func (r *UserRepo) ListAll(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}

	// Orden estable por registered_at asc (identity desempata)
	sort.Slice(out, func(i, j int) bool {
		if out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].Identity < out[j].Identity
		}
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})

	return out, nil
}
