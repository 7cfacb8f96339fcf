// Package metastore persists resolved document metadata in SQLite so
// downstream consumers (sitemap builders, audit tooling) can read it without
// re-running resolution.
package metastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitemeta/internal/pipeline"
	"git.home.luguber.info/inful/sitemeta/internal/seo"
)

// Record is one stored document's resolved metadata.
type Record struct {
	Path         string
	BatchID      string
	CanonicalURL string
	ContentType  string
	NoIndex      bool
	PublishDate  string
	ModifiedDate string
	Meta         *seo.Metadata
	UpdatedAt    time.Time
}

// Store is a SQLite-backed metadata store. Use ":memory:" for an in-memory
// database, or a file path for persistent storage.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		path TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL,
		canonical_url TEXT NOT NULL,
		content_type TEXT NOT NULL,
		noindex INTEGER NOT NULL DEFAULT 0,
		publish_date TEXT,
		modified_date TEXT,
		metadata BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_documents_batch_id ON documents(batch_id);
	CREATE INDEX IF NOT EXISTS idx_documents_noindex ON documents(noindex);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDocument upserts one processed document's resolved metadata, keyed by
// path. It implements the pipeline's Store contract.
func (s *Store) SaveDocument(ctx context.Context, batchID string, doc *pipeline.Document) error {
	if doc.Meta == nil {
		return fmt.Errorf("document %q has no resolved metadata", doc.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(doc.Meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (path, batch_id, canonical_url, content_type, noindex, publish_date, modified_date, metadata, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			batch_id = excluded.batch_id,
			canonical_url = excluded.canonical_url,
			content_type = excluded.content_type,
			noindex = excluded.noindex,
			publish_date = excluded.publish_date,
			modified_date = excluded.modified_date,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at`,
		doc.Path, batchID, doc.Meta.CanonicalURL, string(doc.Meta.ContentType),
		boolToInt(doc.Meta.NoIndex), doc.Meta.PublishDate, doc.Meta.ModifiedDate,
		payload, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Get returns one document's record, or nil when the path is unknown.
func (s *Store) Get(ctx context.Context, path string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		selectColumns+" FROM documents WHERE path = ?", path)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ByBatch returns all records written by one batch, ordered by path.
func (s *Store) ByBatch(ctx context.Context, batchID string) ([]Record, error) {
	return s.query(ctx,
		selectColumns+" FROM documents WHERE batch_id = ? ORDER BY path", batchID)
}

// Indexable returns all records not marked noindex, ordered by path. This is
// the working set for an external sitemap builder.
func (s *Store) Indexable(ctx context.Context) ([]Record, error) {
	return s.query(ctx,
		selectColumns+" FROM documents WHERE noindex = 0 ORDER BY path")
}

const selectColumns = "SELECT path, batch_id, canonical_url, content_type, noindex, publish_date, modified_date, metadata, updated_at"

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var rec Record
	var noindex int
	var publishDate, modifiedDate sql.NullString
	var payload []byte
	var updatedUnix int64

	err := row.Scan(&rec.Path, &rec.BatchID, &rec.CanonicalURL, &rec.ContentType,
		&noindex, &publishDate, &modifiedDate, &payload, &updatedUnix)
	if err != nil {
		return nil, err
	}

	rec.NoIndex = noindex != 0
	rec.PublishDate = publishDate.String
	rec.ModifiedDate = modifiedDate.String
	rec.UpdatedAt = time.Unix(updatedUnix, 0)

	if len(payload) > 0 {
		rec.Meta = &seo.Metadata{}
		if err := json.Unmarshal(payload, rec.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
