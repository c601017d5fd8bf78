package brand

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// #endregion imports

// #region store

// ProfileStore persists named brand profiles in SQLite so the command
// hosts can reuse them across sessions.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore creates the brand_profiles table if needed and returns
// a store.
func NewProfileStore(db *sql.DB) (*ProfileStore, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS brand_profiles (
		profile_id   TEXT PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		profile_json TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create brand_profiles table: %w", err)
	}
	return &ProfileStore{db: db}, nil
}

// Save inserts a profile or replaces the stored definition with the same
// name, keeping the original profile ID. The upsert is a single statement
// so concurrent writers cannot race the name lookup. Returns the profile
// ID.
func (s *ProfileStore) Save(p *Profile) (string, error) {
	if p == nil || p.Name == "" {
		return "", fmt.Errorf("profile must have a name")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err = s.db.Exec(
		`INSERT INTO brand_profiles (profile_id, name, profile_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   profile_json = excluded.profile_json,
		   updated_at   = excluded.updated_at`,
		uuid.New().String(), p.Name, string(data), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("save profile: %w", err)
	}

	var id string
	if err := s.db.QueryRow(`SELECT profile_id FROM brand_profiles WHERE name = ?`, p.Name).Scan(&id); err != nil {
		return "", fmt.Errorf("lookup profile id: %w", err)
	}
	return id, nil
}

// Get retrieves a profile by name.
func (s *ProfileStore) Get(name string) (*Profile, error) {
	var data string
	err := s.db.QueryRow(`SELECT profile_json FROM brand_profiles WHERE name = ?`, name).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// List returns the names of all stored profiles in creation order.
func (s *ProfileStore) List() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM brand_profiles ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan profile name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// #endregion store
