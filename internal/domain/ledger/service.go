package ledger

import (
	"context"
	"errors"
	"strings"

	"animint/internal/platform/metrics"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrUnknownSender       = errors.New("unknown sender")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyCredited     = errors.New("bonus already credited")
)

// IdentityDirectory es lo mínimo que el ledger necesita saber de users.
// Interface local para no acoplar paquetes (mismo truco que BalanceReader
// en el módulo de users).
type IdentityDirectory interface {
	IsRegistered(ctx context.Context, identity string) (bool, error)
}

type Service struct {
	repo    Repository
	users   IdentityDirectory
	metrics *metrics.Metrics
}

func NewService(repo Repository, users IdentityDirectory, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		metrics: m,
	}
}

func (s *Service) BalanceOf(ctx context.Context, identity string) (uint64, error) {
	return s.repo.BalanceOf(ctx, strings.TrimSpace(identity))
}

// Transfer mueve amount de from a to. La suma de balances es invariante:
// el débito y el crédito son un solo paso del repo.
func (s *Service) Transfer(ctx context.Context, from, to string, amount uint64) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	registered, err := s.users.IsRegistered(ctx, from)
	if err != nil {
		return err
	}
	if !registered {
		return ErrUnknownSender
	}

	if err := s.repo.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	s.metrics.IncTokenTransfer()
	return nil
}

// CreditBonus acredita el welcome bonus, una sola vez por identidad.
func (s *Service) CreditBonus(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrInvalidAmount
	}

	if err := s.repo.CreditBonus(ctx, identity, WelcomeBonus); err != nil {
		return err
	}
	s.metrics.IncBonusGranted()
	return nil
}

// Debit existe para el path de minteo; mismo chequeo de fondos que Transfer.
func (s *Service) Debit(ctx context.Context, identity string, amount uint64) error {
	identity = strings.TrimSpace(identity)
	if identity == "" || amount == 0 {
		return ErrInvalidAmount
	}
	return s.repo.Debit(ctx, identity, amount)
}
