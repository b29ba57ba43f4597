package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver

	"github.com/naruebet/teachshare/pkg/core/domain"
	"github.com/naruebet/teachshare/pkg/ports"

	_ "modernc.org/sqlite" // Local SQLite driver
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS links (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		file_url TEXT NOT NULL DEFAULT '',
		domain TEXT NOT NULL DEFAULT '',
		posted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_links_domain ON links(domain);
	CREATE INDEX IF NOT EXISTS idx_links_posted_at ON links(posted_at);

	CREATE TABLE IF NOT EXISTS domains (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);
	`
	_, err := db.Exec(query)
	return err
}

func (r *SQLiteRepository) Create(ctx context.Context, link *domain.Link) error {
	query := `INSERT INTO links (id, title, description, url, file_url, domain, posted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		link.ID, link.Title, link.Description, link.URL, link.FileURL, link.Domain, link.PostedAt)
	return err
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*domain.Link, error) {
	query := `SELECT id, title, description, url, file_url, domain, posted_at
			  FROM links WHERE id = ?`

	var link domain.Link
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&link.ID, &link.Title, &link.Description, &link.URL, &link.FileURL,
		&link.Domain, &link.PostedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, link *domain.Link) error {
	query := `UPDATE links SET title = ?, description = ?, url = ?, file_url = ?, domain = ?
			  WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		link.Title, link.Description, link.URL, link.FileURL, link.Domain, link.ID)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, id)
	return err
}

// List returns every link, newest first.
func (r *SQLiteRepository) List(ctx context.Context) ([]domain.Link, error) {
	query := `SELECT id, title, description, url, file_url, domain, posted_at
			  FROM links ORDER BY posted_at DESC`

	return r.queryLinks(ctx, query)
}

func (r *SQLiteRepository) ListByDomain(ctx context.Context, name string) ([]domain.Link, error) {
	query := `SELECT id, title, description, url, file_url, domain, posted_at
			  FROM links WHERE domain = ? ORDER BY posted_at DESC`

	return r.queryLinks(ctx, query, name)
}

func (r *SQLiteRepository) queryLinks(ctx context.Context, query string, args ...interface{}) ([]domain.Link, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.Link
	for rows.Next() {
		var l domain.Link
		if err := rows.Scan(&l.ID, &l.Title, &l.Description, &l.URL, &l.FileURL, &l.Domain, &l.PostedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// --- Domain Repository Implementation ---

func (r *SQLiteRepository) CreateDomain(ctx context.Context, d *domain.Domain) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO domains (id, name) VALUES (?, ?)`, d.ID, d.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("domain %q: %w", d.Name, domain.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *SQLiteRepository) GetDomain(ctx context.Context, id string) (*domain.Domain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM domains WHERE id = ?`, id)

	var d domain.Domain
	if err := row.Scan(&d.ID, &d.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteRepository) GetDomainByName(ctx context.Context, name string) (*domain.Domain, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM domains WHERE name = ?`, name)

	var d domain.Domain
	if err := row.Scan(&d.ID, &d.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteRepository) UpdateDomain(ctx context.Context, id, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE domains SET name = ? WHERE id = ?`, name, id)
	return err
}

func (r *SQLiteRepository) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM domains`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var domains []domain.Domain
	for rows.Next() {
		var d domain.Domain
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	return domains, rows.Err()
}

// DeleteDomainCascade removes the links filed under name and the domain row
// in one transaction, so a failure midway leaves both in place.
func (r *SQLiteRepository) DeleteDomainCascade(ctx context.Context, id, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE domain = ?`, name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM domains WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// Ensure interface compliance
var (
	_ ports.LinkRepository   = (*SQLiteRepository)(nil)
	_ ports.DomainRepository = (*SQLiteRepository)(nil)
)
