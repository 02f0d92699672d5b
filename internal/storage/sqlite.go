// Package storage provides SQLite-based persistence for pets and their
// behavior journal. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Snapshots are stored as zstd-compressed JSON blobs.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-pets/internal/engine"
)

// Store manages the SQLite database connection for pet persistence.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// PetRecord is a saved pet.
type PetRecord struct {
	ID        string
	Pack      string
	Behavior  string
	Energy    float64
	Happiness float64
	Snapshot  engine.Snapshot
	UpdatedAt time.Time
}

// JournalEntry records one behavior change or motion event of a pet.
type JournalEntry struct {
	ID        int64
	PetID     string
	Pack      string
	Tick      uint64
	Behavior  string
	Event     string
	CreatedAt time.Time
}

// RetiredPet is a pet that was removed from its world, with final stats.
type RetiredPet struct {
	ID        int64
	PetID     string
	Pack      string
	Tick      uint64
	Stats     engine.Stats
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("storage: cannot create decoder: %w", err)
	}

	store := &Store{db: db, enc: enc, dec: dec}

	if err := store.migrate(); err != nil {
		store.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pets (
			id TEXT PRIMARY KEY,
			pack TEXT NOT NULL,
			behavior TEXT NOT NULL,
			energy REAL NOT NULL,
			happiness REAL NOT NULL,
			snapshot BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pets_pack ON pets(pack);

		CREATE TABLE IF NOT EXISTS behavior_journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id TEXT NOT NULL,
			pack TEXT NOT NULL,
			tick INTEGER NOT NULL,
			behavior TEXT NOT NULL,
			event TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_journal_pet ON behavior_journal(pet_id);
		CREATE INDEX IF NOT EXISTS idx_journal_pack ON behavior_journal(pack, behavior);

		CREATE TABLE IF NOT EXISTS retired_pets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pet_id TEXT NOT NULL,
			pack TEXT NOT NULL,
			tick INTEGER NOT NULL,
			stats TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.enc != nil {
		s.enc.Close()
	}
	if s.dec != nil {
		s.dec.Close()
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePet inserts or replaces the saved state of a pet.
func (s *Store) SavePet(pack string, snap engine.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}
	blob := s.enc.EncodeAll(raw, nil)

	_, err = s.db.Exec(
		`INSERT INTO pets (id, pack, behavior, energy, happiness, snapshot, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   pack = excluded.pack,
		   behavior = excluded.behavior,
		   energy = excluded.energy,
		   happiness = excluded.happiness,
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		snap.ID, pack, snap.Behavior, snap.Energy, snap.Happiness, blob,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save pet: %w", err)
	}
	return nil
}

// LoadPets returns the saved pets of a pack, oldest ID first.
// An empty pack returns pets of every pack.
func (s *Store) LoadPets(pack string) ([]PetRecord, error) {
	query := `SELECT id, pack, behavior, energy, happiness, snapshot, updated_at FROM pets`
	var args []any
	if pack != "" {
		query += ` WHERE pack = ?`
		args = append(args, pack)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pets: %w", err)
	}
	defer rows.Close()

	var records []PetRecord
	for rows.Next() {
		var r PetRecord
		var blob []byte
		var updatedAt any
		if err := rows.Scan(&r.ID, &r.Pack, &r.Behavior, &r.Energy, &r.Happiness, &blob, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		raw, err := s.dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot decompress snapshot of %s: %w", r.ID, err)
		}
		if err := json.Unmarshal(raw, &r.Snapshot); err != nil {
			return nil, fmt.Errorf("storage: cannot decode snapshot of %s: %w", r.ID, err)
		}
		r.UpdatedAt = parseTime(updatedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// DeletePet removes a saved pet. Deleting an unknown ID is not an error.
func (s *Store) DeletePet(id string) error {
	if _, err := s.db.Exec("DELETE FROM pets WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete pet: %w", err)
	}
	return nil
}

// RetirePet deletes a saved pet and records its final stats.
func (s *Store) RetirePet(pack string, removal engine.Removal) error {
	stats, err := json.Marshal(removal.Stats)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stats: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pets WHERE id = ?", removal.ID); err != nil {
		return fmt.Errorf("storage: cannot delete pet: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO retired_pets (pet_id, pack, tick, stats) VALUES (?, ?, ?, ?)",
		removal.ID, pack, int64(removal.Tick), string(stats),
	); err != nil {
		return fmt.Errorf("storage: cannot record retired pet: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// RetiredPets returns the most recently retired pets.
func (s *Store) RetiredPets(limit int) ([]RetiredPet, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, pet_id, pack, tick, stats, created_at
		 FROM retired_pets
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query retired pets: %w", err)
	}
	defer rows.Close()

	var result []RetiredPet
	for rows.Next() {
		var r RetiredPet
		var tick int64
		var stats string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.PetID, &r.Pack, &tick, &stats, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("storage: cannot decode stats: %w", err)
		}
		r.Tick = uint64(tick)
		r.CreatedAt = parseTime(createdAt)
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return result, nil
}

// AppendJournal records entries in a single transaction.
func (s *Store) AppendJournal(entries ...JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO behavior_journal (pet_id, pack, tick, behavior, event) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare journal insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.PetID, e.Pack, int64(e.Tick), e.Behavior, e.Event); err != nil {
			return fmt.Errorf("storage: cannot append journal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// RecentJournal returns the newest journal entries, optionally for a
// single pet. Results are ordered newest first.
func (s *Store) RecentJournal(petID string, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, pet_id, pack, tick, behavior, event, created_at FROM behavior_journal`
	var args []any
	if petID != "" {
		query += ` WHERE pet_id = ?`
		args = append(args, petID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journal: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var tick int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PetID, &e.Pack, &tick, &e.Behavior, &e.Event, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Tick = uint64(tick)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// BehaviorCounts returns how often each behavior was entered in a pack.
// An empty pack counts every pack.
func (s *Store) BehaviorCounts(pack string) (map[string]int, error) {
	query := `SELECT behavior, COUNT(*) FROM behavior_journal`
	var args []any
	if pack != "" {
		query += ` WHERE pack = ?`
		args = append(args, pack)
	}
	query += ` GROUP BY behavior`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count behaviors: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan counts row: %w", err)
		}
		counts[name] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
