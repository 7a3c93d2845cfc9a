package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	storefront "github.com/NTAravind/eshop-sub000"
)

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	store_id   TEXT NOT NULL,
	kind       TEXT NOT NULL,
	key        TEXT NOT NULL,
	status     TEXT NOT NULL,
	tree       TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (store_id, kind, key, status)
);
CREATE INDEX IF NOT EXISTS idx_documents_store_kind ON documents (store_id, kind);
`

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists documents in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens (or creates) the document database at path and
// initializes the schema.
func OpenSQLite(path string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: set pragma: %w", err)
		}
	}

	if _, err := db.Exec(documentsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	log.Info().Str("path", path).Msg("document store opened")
	return &SQLiteStore{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetDocument returns the document at the full address.
func (s *SQLiteStore) GetDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string, status storefront.DocumentStatus) (*storefront.Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT tree, updated_at FROM documents WHERE store_id = ? AND kind = ? AND key = ? AND status = ?`,
		storeID, string(kind), key, string(status))

	var treeJSON, updatedAt string
	if err := row.Scan(&treeJSON, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: get document: %w", err)
	}

	tree, err := storefront.ParseTree([]byte(treeJSON))
	if err != nil {
		return nil, fmt.Errorf("store: corrupt document tree: %w", err)
	}
	ts, _ := time.Parse(time.RFC3339Nano, updatedAt)

	return &storefront.Document{
		StoreID:   storeID,
		Kind:      kind,
		Key:       key,
		Status:    status,
		Tree:      tree,
		UpdatedAt: ts,
	}, nil
}

// GetPublishedDocument returns the published document for the key.
func (s *SQLiteStore) GetPublishedDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) (*storefront.Document, error) {
	return s.GetDocument(ctx, storeID, kind, key, storefront.StatusPublished)
}

// SaveDocument upserts the document as the current draft.
func (s *SQLiteStore) SaveDocument(ctx context.Context, doc *storefront.Document) error {
	if doc == nil || doc.Tree == nil {
		return storefront.ErrNilTree
	}
	treeJSON, err := storefront.EncodeTree(doc.Tree)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (store_id, kind, key, status, tree, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (store_id, kind, key, status) DO UPDATE SET tree = excluded.tree, updated_at = excluded.updated_at`,
		doc.StoreID, string(doc.Kind), doc.Key, string(storefront.StatusDraft),
		string(treeJSON), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: save document: %w", err)
	}
	s.log.Debug().Str("store", doc.StoreID).Str("kind", string(doc.Kind)).Str("key", doc.Key).Msg("draft saved")
	return nil
}

// PublishDocument copies the current draft row to the published slot in
// one transaction.
func (s *SQLiteStore) PublishDocument(ctx context.Context, storeID string, kind storefront.DocumentKind, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: publish: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT tree FROM documents WHERE store_id = ? AND kind = ? AND key = ? AND status = ?`,
		storeID, string(kind), key, string(storefront.StatusDraft))
	var treeJSON string
	if err := row.Scan(&treeJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("store: publish: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (store_id, kind, key, status, tree, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (store_id, kind, key, status) DO UPDATE SET tree = excluded.tree, updated_at = excluded.updated_at`,
		storeID, string(kind), key, string(storefront.StatusPublished),
		treeJSON, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store: publish: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: publish: %w", err)
	}
	s.log.Info().Str("store", storeID).Str("kind", string(kind)).Str("key", key).Msg("document published")
	return nil
}

// ListDocuments lists metadata for a store and kind, both statuses.
func (s *SQLiteStore) ListDocuments(ctx context.Context, storeID string, kind storefront.DocumentKind) ([]DocumentMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, status FROM documents WHERE store_id = ? AND kind = ? ORDER BY key, status`,
		storeID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()

	var out []DocumentMeta
	for rows.Next() {
		meta := DocumentMeta{StoreID: storeID, Kind: kind}
		var status string
		if err := rows.Scan(&meta.Key, &status); err != nil {
			return nil, fmt.Errorf("store: list documents: %w", err)
		}
		meta.Status = storefront.DocumentStatus(status)
		out = append(out, meta)
	}
	return out, rows.Err()
}
