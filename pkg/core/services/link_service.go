package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/naruebet/teachshare/internal/id"
	"github.com/naruebet/teachshare/pkg/core/domain"
	"github.com/naruebet/teachshare/pkg/ports"
)

type LinkService struct {
	repo    ports.LinkRepository
	storage ports.ObjectStorage
	logger  *zap.Logger
}

func NewLinkService(repo ports.LinkRepository, storage ports.ObjectStorage, logger *zap.Logger) *LinkService {
	return &LinkService{repo: repo, storage: storage, logger: logger}
}

func (s *LinkService) CreateLink(ctx context.Context, title, description, linkURL, fileURL, domainName string) (*domain.Link, error) {
	linkID, err := id.New("lnk")
	if err != nil {
		return nil, err
	}

	link := &domain.Link{
		ID:          linkID,
		Title:       title,
		Description: description,
		URL:         linkURL,
		FileURL:     fileURL,
		Domain:      domainName,
		PostedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (s *LinkService) UpdateLink(ctx context.Context, linkID, title, description, linkURL, fileURL, domainName string) (*domain.Link, error) {
	link, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("link %s: %w", linkID, domain.ErrNotFound)
	}

	// A replaced upload leaves its old object behind; remove it before the
	// row points at the new one.
	if link.FileURL != "" && link.FileURL != fileURL {
		if key, ok := s.storage.KeyFor(link.FileURL); ok {
			if err := s.storage.Delete(ctx, key); err != nil {
				return nil, fmt.Errorf("delete old file %s: %w", key, err)
			}
			s.logger.Info("old file deleted", zap.String("key", key))
		}
	}

	link.Title = title
	link.Description = description
	link.URL = linkURL
	link.FileURL = fileURL
	link.Domain = domainName

	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

// DeleteLink removes the link row. Blob cleanup is best effort: when the
// object store fails, the row is deleted anyway and cleanupFailed reports it.
func (s *LinkService) DeleteLink(ctx context.Context, linkID string) (bool, error) {
	link, err := s.repo.GetByID(ctx, linkID)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, fmt.Errorf("link %s: %w", linkID, domain.ErrNotFound)
	}

	cleanupFailed := false
	if link.FileURL != "" {
		if key, ok := s.storage.KeyFor(link.FileURL); ok {
			if err := s.storage.Delete(ctx, key); err != nil {
				cleanupFailed = true
				s.logger.Warn("file cleanup failed", zap.String("key", key), zap.Error(err))
			} else {
				s.logger.Info("stored file deleted", zap.String("key", key))
			}
		}
	}

	if err := s.repo.Delete(ctx, linkID); err != nil {
		return cleanupFailed, err
	}

	return cleanupFailed, nil
}

func (s *LinkService) ListLinks(ctx context.Context) ([]domain.Link, error) {
	return s.repo.List(ctx)
}

var _ ports.LinkService = (*LinkService)(nil)
