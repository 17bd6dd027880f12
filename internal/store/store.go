// Package store persists save blobs in a local sqlite database. Blobs are
// zstd-compressed on the way in; the schema is a single keyed table so one
// database can hold several named saves.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"lifeverse/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
	key        TEXT PRIMARY KEY,
	blob       BLOB NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLite implements the persistence gateway over a local database file.
type SQLite struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// DefaultPath returns the save database location under the user's home
// directory, creating the directory if needed.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".lifeverse")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "saves.db"), nil
}

// Open opens or creates the save database at path and prepares the schema.
func Open(ctx context.Context, path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	// Local single-session file; more connections just contend.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping save db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare save schema: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("init decompressor: %w", err)
	}
	return &SQLite{db: db, enc: enc, dec: dec}, nil
}

// Put compresses and upserts the blob under key.
func (s *SQLite) Put(ctx context.Context, key string, blob []byte) error {
	packed := s.enc.EncodeAll(blob, nil)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (key, blob, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		key, packed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write save %q: %w", key, err)
	}
	return nil
}

// Get reads and decompresses the blob under key; a missing key reports
// game.ErrNoSave.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var packed []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM saves WHERE key = ?`, key).Scan(&packed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save %q: %w", key, err)
	}
	blob, err := s.dec.DecodeAll(packed, nil)
	if err != nil {
		return nil, fmt.Errorf("unpack save %q: %w", key, err)
	}
	return blob, nil
}

// Delete removes the blob under key. Deleting a missing key is not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete save %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	s.enc.Close()
	s.dec.Close()
	return s.db.Close()
}
