// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analysis results in a SQLite database and exposes
// full-text search over chunked section content.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

const defaultMaxResults = 20

// Store manages the thesis analysis SQLite database.
type Store struct {
	db           *sql.DB
	chunkSize    int
	chunkOverlap int
	maxResults   int
}

// Open opens or creates the database at cfg.DBPath and ensures the schema
// exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = filepath.Join("output", "thesis_database.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:           db,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
		maxResults:   cfg.MaxResults,
	}
	if s.chunkSize <= 0 {
		s.chunkSize = defaultChunkSize
	}
	if s.chunkOverlap <= 0 {
		s.chunkOverlap = defaultChunkOverlap
	}
	if s.maxResults <= 0 {
		s.maxResults = defaultMaxResults
	}

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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			title TEXT,
			language TEXT,
			authors TEXT,
			date_published TEXT,
			abstract TEXT,
			processing_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			total_sections INTEGER,
			total_references INTEGER,
			content_hash TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			heading TEXT,
			category TEXT,
			language TEXT,
			content TEXT,
			content_length INTEGER,
			position INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS text_chunks (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			section_id INTEGER NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
			chunk_text TEXT NOT NULL,
			chunk_size INTEGER,
			chunk_index INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS references_bib (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id INTEGER NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			raw_text TEXT,
			ref_title TEXT,
			ref_authors TEXT,
			ref_year TEXT,
			ref_index INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(filename)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_document ON sections(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_category ON sections(category)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_document ON text_chunks(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_document ON references_bib(document_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='chunks_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE chunks_fts USING fts5(chunk_text, content=text_chunks, content_rowid=rowid)`,
			`CREATE TRIGGER chunks_ai AFTER INSERT ON text_chunks BEGIN
				INSERT INTO chunks_fts(rowid, chunk_text) VALUES (new.rowid, new.chunk_text);
			END`,
			`CREATE TRIGGER chunks_ad AFTER DELETE ON text_chunks BEGIN
				INSERT INTO chunks_fts(chunks_fts, rowid, chunk_text) VALUES('delete', old.rowid, old.chunk_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a store ingestion run.
type IngestSummary struct {
	Ingested int
	Skipped  int
	Failed   int
}

// Total returns the number of results processed.
func (s IngestSummary) Total() int {
	return s.Ingested + s.Skipped + s.Failed
}

// Ingest loads every successful result of a batch into the database,
// printing per-document progress to w. Unchanged documents (same filename
// and content hash) are skipped; changed ones are replaced wholesale.
// Results that carry an analysis error have no content to index and are
// skipped with a note.
func (s *Store) Ingest(ctx context.Context, batch types.BatchResult, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, result := range batch.Results {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if result.Failed() {
			fmt.Fprintf(w, "skipped %s (analysis error: %s)\n", result.File, result.Error)
			summary.Skipped++
			continue
		}

		hash := contentHash(result)

		var storedHash string
		err := s.db.QueryRowContext(ctx,
			`SELECT content_hash FROM documents WHERE filename = ?`, result.File,
		).Scan(&storedHash)
		if err == nil && storedHash == hash {
			fmt.Fprintf(w, "skipped %s (unchanged)\n", result.File)
			summary.Skipped++
			continue
		}

		if err := s.ingestDocument(ctx, result, hash); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", result.File, err)
			summary.Failed++
			continue
		}

		fmt.Fprintf(w, "ingested %s (%d sections, %d references)\n",
			result.File, len(result.Sections), len(result.References))
		summary.Ingested++
	}

	fmt.Fprintf(w, "\ningested: %d, skipped: %d, failed: %d\n",
		summary.Ingested, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) ingestDocument(ctx context.Context, result types.AnalysisResult, hash string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace wholesale; cascading deletes clear sections, chunks, and
	// references of a previous version.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM documents WHERE filename = ?`, result.File); err != nil {
		return fmt.Errorf("deleting previous version: %w", err)
	}

	authorsJSON, _ := json.Marshal(result.Metadata.Authors)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (filename, title, language, authors, date_published,
			abstract, total_sections, total_references, content_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.File, result.Metadata.Title, string(result.Language),
		string(authorsJSON), result.Metadata.Date, result.Metadata.Abstract,
		len(result.Sections), len(result.References), hash,
	)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading document id: %w", err)
	}

	for _, sec := range result.Sections {
		secRes, err := tx.ExecContext(ctx,
			`INSERT INTO sections (document_id, heading, category, language,
				content, content_length, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			docID, sec.Heading, string(sec.Category), string(sec.Language),
			sec.Body, len(sec.Body), sec.Index,
		)
		if err != nil {
			return fmt.Errorf("inserting section %d: %w", sec.Index, err)
		}
		secID, err := secRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading section id: %w", err)
		}

		for i, chunk := range chunkWords(sec.Body, s.chunkSize, s.chunkOverlap) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO text_chunks (document_id, section_id, chunk_text, chunk_size, chunk_index)
				 VALUES (?, ?, ?, ?, ?)`,
				docID, secID, chunk, len(chunk), i,
			); err != nil {
				return fmt.Errorf("inserting chunk %d of section %d: %w", i, sec.Index, err)
			}
		}
	}

	for i, ref := range result.References {
		refAuthorsJSON, _ := json.Marshal(ref.Authors)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO references_bib (document_id, raw_text, ref_title, ref_authors, ref_year, ref_index)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			docID, ref.RawText, ref.Title, string(refAuthorsJSON), ref.Year, i,
		); err != nil {
			return fmt.Errorf("inserting reference %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// SearchResult is one full-text search hit.
type SearchResult struct {
	Filename string `json:"filename"`
	Heading  string `json:"heading"`
	Category string `json:"category"`
	Chunk    string `json:"chunk"`
}

// Search runs an FTS5 match over the chunk text and returns the best hits
// with their document and section context. maxResults of zero uses the
// store default.
func (s *Store) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT d.filename, sec.heading, sec.category, c.chunk_text
		 FROM chunks_fts
		 JOIN text_chunks c ON c.rowid = chunks_fts.rowid
		 JOIN sections sec ON sec.id = c.section_id
		 JOIN documents d ON d.id = c.document_id
		 WHERE chunks_fts MATCH ?
		 ORDER BY chunks_fts.rank
		 LIMIT ?`,
		query, maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Filename, &r.Heading, &r.Category, &r.Chunk); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Stats holds aggregate counts over the database.
type Stats struct {
	Documents  int            `json:"documents"`
	Sections   int            `json:"sections"`
	Chunks     int            `json:"chunks"`
	References int            `json:"references"`
	Categories map[string]int `json:"categories"`
}

// Stats reports table counts and the per-category section distribution.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Categories: make(map[string]int)}

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT count(*) FROM documents`, &stats.Documents},
		{`SELECT count(*) FROM sections`, &stats.Sections},
		{`SELECT count(*) FROM text_chunks`, &stats.Chunks},
		{`SELECT count(*) FROM references_bib`, &stats.References},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("counting: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT category, count(*) FROM sections GROUP BY category`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return Stats{}, fmt.Errorf("scanning category count: %w", err)
		}
		stats.Categories[category] = n
	}
	return stats, rows.Err()
}

// contentHash fingerprints a result so unchanged documents can be skipped
// on re-ingestion.
func contentHash(result types.AnalysisResult) string {
	data, _ := json.Marshal(result)
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
