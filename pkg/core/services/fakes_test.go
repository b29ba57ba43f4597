package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/naruebet/teachshare/pkg/core/domain"
)

// fakeRepo is an in-memory stand-in for the sqlite repository, implementing
// both the link and domain repository ports.
type fakeRepo struct {
	links   map[string]domain.Link
	domains map[string]domain.Domain
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		links:   make(map[string]domain.Link),
		domains: make(map[string]domain.Domain),
	}
}

func (r *fakeRepo) Create(_ context.Context, link *domain.Link) error {
	r.links[link.ID] = *link
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*domain.Link, error) {
	if l, ok := r.links[id]; ok {
		copied := l
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeRepo) Update(_ context.Context, link *domain.Link) error {
	r.links[link.ID] = *link
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	delete(r.links, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]domain.Link, error) {
	var out []domain.Link
	for _, l := range r.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	return out, nil
}

func (r *fakeRepo) ListByDomain(_ context.Context, name string) ([]domain.Link, error) {
	var out []domain.Link
	for _, l := range r.links {
		if l.Domain == name {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateDomain(_ context.Context, d *domain.Domain) error {
	for _, existing := range r.domains {
		if existing.Name == d.Name {
			return fmt.Errorf("domain %q: %w", d.Name, domain.ErrConflict)
		}
	}
	r.domains[d.ID] = *d
	return nil
}

func (r *fakeRepo) GetDomain(_ context.Context, id string) (*domain.Domain, error) {
	if d, ok := r.domains[id]; ok {
		copied := d
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeRepo) GetDomainByName(_ context.Context, name string) (*domain.Domain, error) {
	for _, d := range r.domains {
		if d.Name == name {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) UpdateDomain(_ context.Context, id, name string) error {
	if d, ok := r.domains[id]; ok {
		d.Name = name
		r.domains[id] = d
	}
	return nil
}

func (r *fakeRepo) ListDomains(_ context.Context) ([]domain.Domain, error) {
	var out []domain.Domain
	for _, d := range r.domains {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeRepo) DeleteDomainCascade(_ context.Context, id, name string) error {
	for linkID, l := range r.links {
		if l.Domain == name {
			delete(r.links, linkID)
		}
	}
	delete(r.domains, id)
	return nil
}

// fakeStorage records deletes and serves objects from memory. Public URLs are
// path style under a fixed host so KeyFor can recognize its own bucket.
type fakeStorage struct {
	bucket   string
	objects  map[string][]byte
	deleted  []string
	failKeys map[string]bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		bucket:   "teachshare",
		objects:  make(map[string][]byte),
		failKeys: make(map[string]bool),
	}
}

func (s *fakeStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	if s.failKeys[key] {
		return errors.New("storage unavailable")
	}
	delete(s.objects, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, "", errors.New("no such object")
	}
	return io.NopCloser(strings.NewReader(string(data))), "application/octet-stream", nil
}

func (s *fakeStorage) PublicURL(key string) string {
	return "http://store.local/" + s.bucket + "/" + key
}

func (s *fakeStorage) KeyFor(fileURL string) (string, bool) {
	prefix := "http://store.local/" + s.bucket + "/"
	if rest, ok := strings.CutPrefix(fileURL, prefix); ok && rest != "" {
		return rest, true
	}
	return "", false
}
