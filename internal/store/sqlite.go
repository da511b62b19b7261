// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying the embedded migrations (idempotent, recorded in _migrations).
//   - Mapping Record to the results table.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordtia/assets"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path and
// brings its schema up to date.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB ensures the parent directory exists and configures busy timeout
// and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file of migrations in lexical order, each in
// its own transaction, skipping files already listed in _migrations.
func migrate(db *sql.DB, migrations fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return errors.New("store: record has no id")
	}
	hashes, err := json.Marshal(nonNil(r.GuessHashes))
	if err != nil {
		return fmt.Errorf("store: encode guess hashes: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO results
            (id, word_hash, guess_hashes, success, finished_at, network, height, tx_hash, submit_error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.WordHash, string(hashes), r.Success, r.FinishedAt.UTC().Format(timeLayout),
		r.Network, r.Height, r.TxHash, r.SubmitError,
	)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", r.ID, err)
	}
	return nil
}

const selectRecord = `SELECT id, word_hash, guess_hashes, success, finished_at, network, height, tx_hash, submit_error FROM results`

func (s *sqliteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx, selectRecord+` WHERE id=?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return r, err
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx, selectRecord+` ORDER BY finished_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(success), 0),
               COALESCE(SUM(CASE WHEN tx_hash <> '' THEN 1 ELSE 0 END), 0)
        FROM results`).Scan(&st.Games, &st.Wins, &st.Attested)
	if err != nil {
		return Stats{}, fmt.Errorf("store: stats: %w", err)
	}
	return st, nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r        Record
		hashes   string
		finished string
	)
	if err := sc.Scan(&r.ID, &r.WordHash, &hashes, &r.Success, &finished,
		&r.Network, &r.Height, &r.TxHash, &r.SubmitError); err != nil {
		return Record{}, err
	}
	if err := json.NewDecoder(strings.NewReader(hashes)).Decode(&r.GuessHashes); err != nil {
		return Record{}, fmt.Errorf("store: decode guess hashes of %s: %w", r.ID, err)
	}
	t, err := time.Parse(timeLayout, finished)
	if err != nil {
		return Record{}, fmt.Errorf("store: parse finished_at of %s: %w", r.ID, err)
	}
	r.FinishedAt = t
	return r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
