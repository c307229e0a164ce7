// Package sqlite provides the SQLite-backed book record store.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/libris-ai/libris/internal/adapters/driven/bookstore/sqlite/migrations"
	"github.com/libris-ai/libris/internal/adapters/driven/bookstore/sqlite/seed"
	"github.com/libris-ai/libris/internal/core/domain"
	"github.com/libris-ai/libris/internal/core/ports/driven"
	"github.com/libris-ai/libris/internal/logger"
)

var _ driven.BookStore = (*Store)(nil)

// Store is the SQLite-backed book catalogue.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the catalogue database at the given
// data directory. If dataDir is empty, defaults to ~/.libris/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".libris", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "book_summaries.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// UpsertBooks inserts or updates records keyed by their unique title.
func (s *Store) UpsertBooks(ctx context.Context, books []domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range books {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("book %q: %w", b.Title, err)
		}
		language := b.Language
		if language == "" {
			language = "ro"
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO book_summaries (title, author, year, language, summary, themes)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(title) DO UPDATE SET
				author = excluded.author,
				year = excluded.year,
				language = excluded.language,
				summary = excluded.summary,
				themes = excluded.themes
		`, b.Title, b.Author, b.Year, language, b.Summary, b.Themes)
		if err != nil {
			return fmt.Errorf("upserting book %q: %w", b.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListBooks returns all records ordered by row id.
func (s *Store) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, author, year, language, summary, themes
		FROM book_summaries
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying books: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		var author, language, themes sql.NullString
		var year sql.NullInt64
		if err := rows.Scan(&b.ID, &b.Title, &author, &year, &language, &b.Summary, &themes); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		b.Author = author.String
		b.Year = int(year.Int64)
		b.Language = language.String
		b.Themes = themes.String
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", err)
	}
	return books, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM book_summaries")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return count, nil
}

// seedCatalogue matches the embedded TOML layout.
type seedCatalogue struct {
	Books []seedBook `toml:"books"`
}

type seedBook struct {
	Title    string `toml:"title"`
	Author   string `toml:"author"`
	Year     int    `toml:"year"`
	Language string `toml:"language"`
	Summary  string `toml:"summary"`
	Themes   string `toml:"themes"`
}

// Seed loads the embedded starter catalogue into the store. Re-seeding
// updates existing titles in place.
func (s *Store) Seed(ctx context.Context) (int, error) {
	var catalogue seedCatalogue
	if err := toml.Unmarshal(seed.Books, &catalogue); err != nil {
		return 0, fmt.Errorf("decoding seed catalogue: %w", err)
	}

	books := make([]domain.Book, len(catalogue.Books))
	for i, sb := range catalogue.Books {
		books[i] = domain.Book{
			Title:    sb.Title,
			Author:   sb.Author,
			Year:     sb.Year,
			Language: sb.Language,
			Summary:  strings.TrimSpace(sb.Summary),
			Themes:   sb.Themes,
		}
	}

	if err := s.UpsertBooks(ctx, books); err != nil {
		return 0, err
	}
	logger.Info("Seeded %d books into %s", len(books), s.path)
	return len(books), nil
}
