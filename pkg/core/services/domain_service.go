package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/internal/id"
	"github.com/naruebet/teachshare/pkg/core/domain"
	"github.com/naruebet/teachshare/pkg/ports"
)

type DomainService struct {
	domains ports.DomainRepository
	links   ports.LinkRepository
	storage ports.ObjectStorage
	logger  *zap.Logger
}

func NewDomainService(domains ports.DomainRepository, links ports.LinkRepository, storage ports.ObjectStorage, logger *zap.Logger) *DomainService {
	return &DomainService{domains: domains, links: links, storage: storage, logger: logger}
}

func (s *DomainService) CreateDomain(ctx context.Context, name string) (*domain.Domain, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalid)
	}

	// Check first so the common duplicate case reports Conflict without
	// relying on driver error strings; the UNIQUE constraint backstops races.
	existing, err := s.domains.GetDomainByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("domain %q: %w", name, domain.ErrConflict)
	}

	domainID, err := id.New("dom")
	if err != nil {
		return nil, err
	}

	d := &domain.Domain{ID: domainID, Name: name}
	if err := s.domains.CreateDomain(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// UpdateDomain renames in place. Links filed under the old name keep it: the
// rename does not cascade, so they are orphaned until edited individually.
func (s *DomainService) UpdateDomain(ctx context.Context, domainID, name string) error {
	return s.domains.UpdateDomain(ctx, domainID, name)
}

// DeleteDomain removes a domain and everything filed under it: stored files
// first (best effort), then the links and the domain row together.
func (s *DomainService) DeleteDomain(ctx context.Context, domainID string) error {
	d, err := s.domains.GetDomain(ctx, domainID)
	if err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("domain %s: %w", domainID, domain.ErrNotFound)
	}

	links, err := s.links.ListByDomain(ctx, d.Name)
	if err != nil {
		return err
	}

	// A failed blob delete is logged and skipped so a single unreachable
	// object cannot wedge the whole cascade.
	for _, link := range links {
		if link.FileURL == "" {
			continue
		}
		key, ok := s.storage.KeyFor(link.FileURL)
		if !ok {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete stored file",
				zap.String("key", key), zap.String("domain", d.Name), zap.Error(err))
			continue
		}
		s.logger.Info("deleted stored file", zap.String("key", key))
	}

	return s.domains.DeleteDomainCascade(ctx, domainID, d.Name)
}

func (s *DomainService) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.domains.ListDomains(ctx)
}

var _ ports.DomainService = (*DomainService)(nil)
