package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naruebet/teachshare/pkg/core/domain"
)

func newTestRepo(t *testing.T, name string) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	return repo
}

func TestGetByIDMissing(t *testing.T) {
	repo := newTestRepo(t, "missing")

	link, err := repo.GetByID(context.Background(), "lnk-nope")
	require.NoError(t, err)
	require.Nil(t, link)
}

func TestLinkRoundTrip(t *testing.T) {
	repo := newTestRepo(t, "roundtrip")
	ctx := context.Background()

	link := &domain.Link{
		ID:          "lnk-1",
		Title:       "Algebra",
		Description: "intro notes",
		URL:         "example.com/a",
		Domain:      "Math",
		PostedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(ctx, link))

	stored, err := repo.GetByID(ctx, "lnk-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "Algebra", stored.Title)
	require.Equal(t, "intro notes", stored.Description)

	stored.Title = "Algebra II"
	require.NoError(t, repo.Update(ctx, stored))

	updated, err := repo.GetByID(ctx, "lnk-1")
	require.NoError(t, err)
	require.Equal(t, "Algebra II", updated.Title)

	require.NoError(t, repo.Delete(ctx, "lnk-1"))
	gone, err := repo.GetByID(ctx, "lnk-1")
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepo(t, "order")
	ctx := context.Background()

	base := time.Now()
	// Insert out of order on purpose.
	for i, offset := range []int{1, 3, 0, 2} {
		require.NoError(t, repo.Create(ctx, &domain.Link{
			ID:       fmt.Sprintf("lnk-%d", i),
			Title:    fmt.Sprintf("post %d", offset),
			PostedAt: base.Add(time.Duration(offset) * time.Minute),
		}))
	}

	links, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 4)
	for i := 1; i < len(links); i++ {
		require.False(t, links[i].PostedAt.After(links[i-1].PostedAt),
			"links must be ordered newest first")
	}
	require.Equal(t, "post 3", links[0].Title)
}

func TestDomainNameUnique(t *testing.T) {
	repo := newTestRepo(t, "unique")
	ctx := context.Background()

	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{ID: "dom-1", Name: "Math"}))

	err := repo.CreateDomain(ctx, &domain.Domain{ID: "dom-2", Name: "Math"})
	require.ErrorIs(t, err, domain.ErrConflict)

	domains, err := repo.ListDomains(ctx)
	require.NoError(t, err)
	require.Len(t, domains, 1)
}

func TestGetDomainByName(t *testing.T) {
	repo := newTestRepo(t, "byname")
	ctx := context.Background()

	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{ID: "dom-1", Name: "Math"}))

	d, err := repo.GetDomainByName(ctx, "Math")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Equal(t, "dom-1", d.ID)

	none, err := repo.GetDomainByName(ctx, "Science")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestDeleteDomainCascade(t *testing.T) {
	repo := newTestRepo(t, "cascade")
	ctx := context.Background()

	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{ID: "dom-1", Name: "Math"}))
	require.NoError(t, repo.CreateDomain(ctx, &domain.Domain{ID: "dom-2", Name: "Science"}))

	now := time.Now()
	require.NoError(t, repo.Create(ctx, &domain.Link{ID: "lnk-1", Title: "Algebra", Domain: "Math", PostedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Link{ID: "lnk-2", Title: "Geometry", Domain: "Math", PostedAt: now}))
	require.NoError(t, repo.Create(ctx, &domain.Link{ID: "lnk-3", Title: "Physics", Domain: "Science", PostedAt: now}))

	require.NoError(t, repo.DeleteDomainCascade(ctx, "dom-1", "Math"))

	links, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "Physics", links[0].Title)

	d, err := repo.GetDomain(ctx, "dom-1")
	require.NoError(t, err)
	require.Nil(t, d)

	remaining, err := repo.ListDomains(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "Science", remaining[0].Name)
}
