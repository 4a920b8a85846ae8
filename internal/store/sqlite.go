package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the whole namespace in one local database file with
// a single key/value table. There is no server process; the file is the
// storage partition scoped to one profile.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.New("creating data directory error: " + err.Error())
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.New("opening database error: " + err.Error())
	}
	s := &SQLiteStore{
		db:   db,
		path: path,
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.New("initializing schema error: " + err.Error())
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?;`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.New("reading record error: " + err.Error())
	}
	return value, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value,
	)
	if err != nil {
		return errors.New("writing record error: " + err.Error())
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?;`, key)
	if err != nil {
		return errors.New("deleting record error: " + err.Error())
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
