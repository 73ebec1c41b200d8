// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes the manifests written by split runs into a SQLite
// database so segments can be looked up by title across many books.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/chapter-splitter/internal/split"
	"github.com/pdiddy/chapter-splitter/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the catalog at cfg.Dir/catalog.db and creates
// the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			output_dir TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			level INTEGER NOT NULL,
			total_pages INTEGER,
			manifest_mod_time TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS segments (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			output_dir TEXT NOT NULL REFERENCES documents(output_dir) ON DELETE CASCADE,
			file_name TEXT NOT NULL,
			label TEXT,
			start_page INTEGER,
			end_page INTEGER,
			chapter_ordinal INTEGER,
			section_ordinal INTEGER,
			bookmarks INTEGER,
			UNIQUE(output_dir, file_name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_output_dir ON segments(output_dir)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_label ON segments(label)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IndexSummary holds counts from an indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of manifests processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index walks each root for manifest files and loads them into the
// catalog. A manifest whose modification time matches the stored one is
// skipped; a changed one replaces its previous segments.
func (s *Store) Index(ctx context.Context, roots []string, w io.Writer) (IndexSummary, error) {
	var summary IndexSummary
	for _, root := range roots {
		manifests, err := findManifests(root)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", root, err)
			summary.Failed++
			continue
		}
		for _, path := range manifests {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}
			s.indexManifest(ctx, path, w, &summary)
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

func findManifests(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == split.ManifestName {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func (s *Store) indexManifest(ctx context.Context, path string, w io.Writer, summary *IndexSummary) {
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		fmt.Fprintf(w, "failed  %s: %v\n", path, err)
		summary.Failed++
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(w, "failed  %s: %v\n", dir, err)
		summary.Failed++
		return
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	var stored string
	err = s.db.QueryRowContext(ctx,
		`SELECT manifest_mod_time FROM documents WHERE output_dir = ?`, dir,
	).Scan(&stored)
	if err == nil && stored == modTime {
		fmt.Fprintf(w, "skipped %s\n", dir)
		summary.Skipped++
		return
	}
	isUpdate := err == nil

	manifest, err := split.ReadManifest(path)
	if err != nil {
		fmt.Fprintf(w, "failed  %s: %v\n", dir, err)
		summary.Failed++
		return
	}
	if err := s.ingest(ctx, dir, manifest, modTime); err != nil {
		fmt.Fprintf(w, "failed  %s: %v\n", dir, err)
		summary.Failed++
		return
	}

	if isUpdate {
		fmt.Fprintf(w, "updated %s (%d segments)\n", dir, len(manifest.Produced))
		summary.Updated++
	} else {
		fmt.Fprintf(w, "indexing %s (%d segments)\n", dir, len(manifest.Produced))
		summary.Indexed++
	}
}

func (s *Store) ingest(ctx context.Context, dir string, manifest *types.RunSummary, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM segments WHERE output_dir = ?`, dir); err != nil {
		return fmt.Errorf("deleting old segments: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (output_dir, source, level, total_pages, manifest_mod_time)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(output_dir) DO UPDATE SET
			source=excluded.source, level=excluded.level,
			total_pages=excluded.total_pages, manifest_mod_time=excluded.manifest_mod_time`,
		dir, manifest.Source, int(manifest.Level), manifest.TotalPages, modTime,
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO segments (output_dir, file_name, label, start_page, end_page, chapter_ordinal, section_ordinal, bookmarks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, pf := range manifest.Produced {
		_, err := stmt.ExecContext(ctx,
			dir, pf.FileName, pf.Label, pf.StartPage, pf.EndPage,
			pf.ChapterOrdinal, pf.SectionOrdinal, pf.Bookmarks,
		)
		if err != nil {
			return fmt.Errorf("inserting segment %s: %w", pf.FileName, err)
		}
	}
	return tx.Commit()
}

// Result is one catalogued segment.
type Result struct {
	Source         string           `json:"source"`
	Path           string           `json:"path"`
	Label          string           `json:"label"`
	Level          types.SplitLevel `json:"level"`
	StartPage      int              `json:"start_page"`
	EndPage        int              `json:"end_page"`
	ChapterOrdinal int              `json:"chapter_ordinal"`
	SectionOrdinal int              `json:"section_ordinal,omitempty"`
}

// Search returns segments whose label or file name contains query,
// ignoring ASCII case. limit <= 0 uses the configured maximum.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.source, d.output_dir, s.file_name, s.label, d.level,
			s.start_page, s.end_page, s.chapter_ordinal, s.section_ordinal
		 FROM segments s JOIN documents d ON d.output_dir = s.output_dir
		 WHERE s.label LIKE ? ESCAPE '\' OR s.file_name LIKE ? ESCAPE '\'
		 ORDER BY d.source, s.start_page, s.file_name
		 LIMIT ?`,
		pattern, pattern, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var dir, file string
		var level int
		if err := rows.Scan(&r.Source, &dir, &file, &r.Label, &level,
			&r.StartPage, &r.EndPage, &r.ChapterOrdinal, &r.SectionOrdinal); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Path = filepath.Join(dir, file)
		r.Level = types.SplitLevel(level)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Stats returns the number of catalogued documents and segments.
func (s *Store) Stats(ctx context.Context) (documents, segments int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&documents); err != nil {
		return 0, 0, fmt.Errorf("counting documents: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT count(*) FROM segments`).Scan(&segments); err != nil {
		return 0, 0, fmt.Errorf("counting segments: %w", err)
	}
	return documents, segments, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
