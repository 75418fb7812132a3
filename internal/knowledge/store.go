// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package knowledge persists the snippet store in SQLite and writes its
// YAML, JSON and JavaScript module exports.
package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/snippet-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "snippets.db"
)

// BuildInfo is free-form metadata recorded with a saved store, such as the
// build time and the selection parameters.
type BuildInfo map[string]string

// Keys returns the keys of i in sorted order.
func (i BuildInfo) Keys() []string {
	keys := make([]string, 0, len(i))
	for k := range i {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store manages the snippet SQLite database and the export files next to it.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the database at <cfg.Dir>/index/snippets.db and
// creates the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
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

// Dir returns the index directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			source TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			paragraph_count INTEGER NOT NULL,
			char_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS paragraphs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL REFERENCES documents(source),
			rank INTEGER NOT NULL,
			score INTEGER NOT NULL,
			text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_paragraphs_source ON paragraphs(source, rank)`,
		`CREATE TABLE IF NOT EXISTS build_info (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ParagraphID returns the stable identifier of the paragraph at rank within
// source.
func ParagraphID(source string, rank int, text string) string {
	sum := xxhash.Sum64String(source + "\x00" + strconv.Itoa(rank) + "\x00" + text)
	return fmt.Sprintf("%016x", sum)
}

// Save replaces the persisted store and build info with ks and info in a
// single transaction.
func (s *Store) Save(ctx context.Context, ks types.KnowledgeStore, info BuildInfo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"paragraphs", "documents", "build_info"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	docStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (source, position, paragraph_count, char_count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	paraStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO paragraphs (id, source, rank, score, text) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing paragraph insert: %w", err)
	}
	defer paraStmt.Close()

	for pos, doc := range ks.Documents {
		if _, err := docStmt.ExecContext(ctx,
			doc.Source, pos, len(doc.Paragraphs), doc.CharCount(),
		); err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.Source, err)
		}
		for rank, p := range doc.Paragraphs {
			if _, err := paraStmt.ExecContext(ctx,
				ParagraphID(doc.Source, rank, p.Text), doc.Source, rank, p.Score, p.Text,
			); err != nil {
				return fmt.Errorf("inserting paragraph %d of %s: %w", rank, doc.Source, err)
			}
		}
	}

	for _, key := range info.Keys() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO build_info (key, value) VALUES (?, ?)`, key, info[key],
		); err != nil {
			return fmt.Errorf("inserting build info %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing store: %w", err)
	}
	return nil
}

// Load returns the persisted store with documents in their saved order and
// paragraphs in rank order. An empty database yields an empty store.
func (s *Store) Load(ctx context.Context) (types.KnowledgeStore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.source, p.score, p.text
		 FROM documents d JOIN paragraphs p ON p.source = d.source
		 ORDER BY d.position, p.rank`)
	if err != nil {
		return types.KnowledgeStore{}, fmt.Errorf("querying paragraphs: %w", err)
	}
	defer rows.Close()

	var docs []types.Document
	for rows.Next() {
		var source string
		var p types.Paragraph
		if err := rows.Scan(&source, &p.Score, &p.Text); err != nil {
			return types.KnowledgeStore{}, fmt.Errorf("scanning paragraph: %w", err)
		}
		if n := len(docs); n == 0 || docs[n-1].Source != source {
			docs = append(docs, types.Document{Source: source})
		}
		last := &docs[len(docs)-1]
		last.Paragraphs = append(last.Paragraphs, p)
	}
	if err := rows.Err(); err != nil {
		return types.KnowledgeStore{}, fmt.Errorf("iterating paragraphs: %w", err)
	}

	return types.KnowledgeStore{Documents: docs}, nil
}

// Stats summarizes the persisted store.
type Stats struct {
	Documents  int       `json:"documents" yaml:"documents"`
	Paragraphs int       `json:"paragraphs" yaml:"paragraphs"`
	Chars      int       `json:"chars" yaml:"chars"`
	Info       BuildInfo `json:"build_info" yaml:"build_info"`
}

// Stats returns document, paragraph and character counts plus the build
// info recorded by the last Save.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*), coalesce(sum(paragraph_count), 0), coalesce(sum(char_count), 0) FROM documents`,
	).Scan(&st.Documents, &st.Paragraphs, &st.Chars); err != nil {
		return Stats{}, fmt.Errorf("counting documents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM build_info`)
	if err != nil {
		return Stats{}, fmt.Errorf("querying build info: %w", err)
	}
	defer rows.Close()

	st.Info = BuildInfo{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Stats{}, fmt.Errorf("scanning build info: %w", err)
		}
		st.Info[k] = v
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterating build info: %w", err)
	}
	return st, nil
}
