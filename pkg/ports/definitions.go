package ports

import (
	"context"
	"io"

	"github.com/naruebet/teachshare/pkg/core/domain"
)

// LinkRepository defines storage operations for links
type LinkRepository interface {
	Create(ctx context.Context, link *domain.Link) error
	GetByID(ctx context.Context, id string) (*domain.Link, error)
	Update(ctx context.Context, link *domain.Link) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Link, error)
	ListByDomain(ctx context.Context, name string) ([]domain.Link, error)
}

// DomainRepository defines storage operations for domains
type DomainRepository interface {
	CreateDomain(ctx context.Context, d *domain.Domain) error
	GetDomain(ctx context.Context, id string) (*domain.Domain, error)
	GetDomainByName(ctx context.Context, name string) (*domain.Domain, error)
	UpdateDomain(ctx context.Context, id, name string) error
	ListDomains(ctx context.Context) ([]domain.Domain, error)
	// DeleteDomainCascade removes every link filed under name and the domain
	// row itself in a single transaction.
	DeleteDomainCascade(ctx context.Context, id, name string) error
}

// ObjectStorage is the interface for uploading and retrieving blobs.
// Implementations work with any S3-compatible provider.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	// Get returns the object body and its content type.
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	PublicURL(key string) string
	// KeyFor extracts the object key from a public URL, reporting whether the
	// URL points at the configured bucket.
	KeyFor(fileURL string) (string, bool)
}

// LinkService defines the business logic operations for links
type LinkService interface {
	CreateLink(ctx context.Context, title, description, url, fileURL, domainName string) (*domain.Link, error)
	UpdateLink(ctx context.Context, id, title, description, url, fileURL, domainName string) (*domain.Link, error)
	// DeleteLink reports whether blob cleanup failed; the row is removed
	// either way.
	DeleteLink(ctx context.Context, id string) (cleanupFailed bool, err error)
	ListLinks(ctx context.Context) ([]domain.Link, error)
}

// DomainService defines the business logic for domains
type DomainService interface {
	CreateDomain(ctx context.Context, name string) (*domain.Domain, error)
	UpdateDomain(ctx context.Context, id, name string) error
	DeleteDomain(ctx context.Context, id string) error
	ListDomains(ctx context.Context) ([]domain.Domain, error)
}
