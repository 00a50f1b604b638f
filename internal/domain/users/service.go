package users

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"animint/internal/platform/metrics"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("user not found")
	ErrConflict      = errors.New("already registered")
	ErrBadCredential = errors.New("credential mismatch")
)

type Service struct {
	repo    Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo Repository, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		metrics: m,
		now:     time.Now,
	}
}

// Register crea un user para la identidad del caller, sin nombre.
// El balance arranca en cero (ausencia = cero en el ledger).
func (s *Service) Register(ctx context.Context, identity string) (User, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return User{}, ErrInvalidInput
	}

	u := User{
		Identity:     identity,
		RegisteredAt: s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	s.metrics.IncUserRegistered()
	return u, nil
}

// RegisterByName crea un user con nombre único y hash de credencial.
func (s *Service) RegisterByName(ctx context.Context, identity, name, credential string) (User, error) {
	identity = strings.TrimSpace(identity)
	name = strings.TrimSpace(name)
	if identity == "" || name == "" || credential == "" {
		return User{}, ErrInvalidInput
	}

	hash := hashCredential(credential)
	u := User{
		Identity:       identity,
		Name:           name,
		CredentialHash: hash,
		RegisteredAt:   s.now(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	s.metrics.IncUserRegistered()
	return u, nil
}

// Verify marca como verificado al user de esa identidad.
// Re-verificar es no-op exitoso, no error.
func (s *Service) Verify(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrInvalidInput
	}
	return s.repo.SetVerified(ctx, identity)
}

// VerifyByName chequea nombre+credencial y devuelve la identidad resuelta,
// marcando al user como verificado. El flip es irreversible e idempotente.
func (s *Service) VerifyByName(ctx context.Context, name, credential string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || credential == "" {
		return "", ErrInvalidInput
	}

	u, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return "", err
	}

	hash := hashCredential(credential)
	if subtle.ConstantTimeCompare(u.CredentialHash, hash) != 1 {
		return "", ErrBadCredential
	}

	if err := s.repo.SetVerified(ctx, u.Identity); err != nil {
		return "", err
	}
	return u.Identity, nil
}

func (s *Service) Lookup(ctx context.Context, identity string) (User, error) {
	return s.repo.GetByIdentity(ctx, identity)
}

func (s *Service) IsRegistered(ctx context.Context, identity string) (bool, error) {
	_, err := s.repo.GetByIdentity(ctx, identity)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) IsRegisteredByName(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) IsVerified(ctx context.Context, identity string) (bool, error) {
	u, err := s.repo.GetByIdentity(ctx, identity)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.Verified, nil
}

func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.repo.ListAll(ctx)
}

func hashCredential(credential string) []byte {
	sum := sha256.Sum256([]byte(credential))
	return sum[:]
}
