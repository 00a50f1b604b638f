package certificates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animint/internal/platform/metrics"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// ImageResolver resuelve la referencia de imagen para un breed.
// El registro nunca guarda media binaria, solo referencias opacas;
// el storage real de assets es un colaborador externo.
type ImageResolver interface {
	Resolve(breed string) string
}

// defaultResolver: referencia determinística por breed.
type defaultResolver struct{}

func (defaultResolver) Resolve(breed string) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(breed), " ", "-"))
	return fmt.Sprintf("animint://breeds/%s.png", slug)
}

func DefaultImageResolver() ImageResolver { return defaultResolver{} }

type Service struct {
	repo    Repository
	images  ImageResolver
	metrics *metrics.Metrics
}

func NewService(repo Repository, images ImageResolver, m *metrics.Metrics) *Service {
	if images == nil {
		images = DefaultImageResolver()
	}
	return &Service{
		repo:    repo,
		images:  images,
		metrics: m,
	}
}

// Mint emite un certificado de breed para el caller, debitando MintFee.
// El débito y el alta del certificado son un solo paso del repo.
func (s *Service) Mint(ctx context.Context, caller, breed string) (Certificate, error) {
	caller = strings.TrimSpace(caller)
	breed = strings.TrimSpace(breed)
	if caller == "" || breed == "" {
		return Certificate{}, ErrInvalidInput
	}

	ref := s.images.Resolve(breed)
	c, err := s.repo.Mint(ctx, caller, breed, ref, MintFee)
	if err != nil {
		return Certificate{}, err
	}
	s.metrics.IncCertificateMinted()
	return c, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Certificate, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]Certificate, error) {
	return s.repo.ListByOwner(ctx, strings.TrimSpace(owner))
}
