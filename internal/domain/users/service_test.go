package users

import (
	"context"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[string]User
	byName map[string]string
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:   map[string]User{},
		byName: map[string]string{},
	}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if _, ok := r.byID[u.Identity]; ok {
		return ErrConflict
	}
	if u.Name != "" {
		if _, taken := r.byName[u.Name]; taken {
			return ErrConflict
		}
	}
	r.byID[u.Identity] = u
	if u.Name != "" {
		r.byName[u.Name] = u.Identity
	}
	return nil
}

func (r *testRepo) GetByIdentity(ctx context.Context, identity string) (User, error) {
	u, ok := r.byID[identity]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByName(ctx context.Context, name string) (User, error) {
	id, ok := r.byName[name]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *testRepo) SetVerified(ctx context.Context, identity string) error {
	u, ok := r.byID[identity]
	if !ok {
		return ErrNotFound
	}
	u.Verified = true
	r.byID[identity] = u
	return nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_SetsDefaults(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Register(context.Background(), "id-1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.Verified {
		t.Fatalf("expected verified=false on registration")
	}
	if u.RegisteredAt != now {
		t.Fatalf("expected RegisteredAt to be now")
	}
	if u.Name != "" {
		t.Fatalf("identity-only registration must not set a name")
	}
}

func TestService_Register_DuplicateIdentity(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	if _, err := svc.Register(context.Background(), "id-1"); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "id-1"); err != ErrConflict {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestService_RegisterByName_DuplicateName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	if _, err := svc.RegisterByName(context.Background(), "id-1", "alice", "pw1"); err != nil {
		t.Fatalf("RegisterByName #1 error: %v", err)
	}

	// misma name, distinta identidad => Conflict
	if _, err := svc.RegisterByName(context.Background(), "id-2", "alice", "pw2"); err != ErrConflict {
		t.Fatalf("expected ErrConflict for duplicate name, got %v", err)
	}
}

func TestService_RegisterByName_HashesCredential(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	u, err := svc.RegisterByName(context.Background(), "id-1", "alice", "pw1")
	if err != nil {
		t.Fatalf("RegisterByName error: %v", err)
	}
	if len(u.CredentialHash) == 0 {
		t.Fatalf("expected credential hash to be stored")
	}
	if string(u.CredentialHash) == "pw1" {
		t.Fatalf("credential must never be stored in clear")
	}
}

func TestService_Verify_Idempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	if _, err := svc.Register(context.Background(), "id-1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if err := svc.Verify(context.Background(), "id-1"); err != nil {
		t.Fatalf("Verify #1 error: %v", err)
	}
	if err := svc.Verify(context.Background(), "id-1"); err != nil {
		t.Fatalf("Verify #2 (re-verify) must be a no-op success, got %v", err)
	}

	ok, err := svc.IsVerified(context.Background(), "id-1")
	if err != nil || !ok {
		t.Fatalf("expected verified=true, got ok=%v err=%v", ok, err)
	}
}

func TestService_Verify_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if err := svc.Verify(context.Background(), "ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_VerifyByName(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	if _, err := svc.RegisterByName(context.Background(), "id-1", "alice", "pw1"); err != nil {
		t.Fatalf("RegisterByName error: %v", err)
	}

	id, err := svc.VerifyByName(context.Background(), "alice", "pw1")
	if err != nil {
		t.Fatalf("VerifyByName error: %v", err)
	}
	if id != "id-1" {
		t.Fatalf("expected resolved identity id-1, got %s", id)
	}

	if _, err := svc.VerifyByName(context.Background(), "alice", "wrong"); err != ErrBadCredential {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}
	if _, err := svc.VerifyByName(context.Background(), "ghost", "pw1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown name, got %v", err)
	}
}

func TestService_IsRegistered(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	ok, err := svc.IsRegistered(context.Background(), "id-1")
	if err != nil || ok {
		t.Fatalf("expected not registered, got ok=%v err=%v", ok, err)
	}

	if _, err := svc.Register(context.Background(), "id-1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	ok, err = svc.IsRegistered(context.Background(), "id-1")
	if err != nil || !ok {
		t.Fatalf("expected registered, got ok=%v err=%v", ok, err)
	}
}
