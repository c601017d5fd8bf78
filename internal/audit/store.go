package audit

// #region imports
import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sketchfoundry/brandgate/internal/converge"
	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/validator"
)

// #endregion imports

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS validation_runs (
	run_id          TEXT PRIMARY KEY,
	manifest_hash   TEXT NOT NULL,
	manifest_json   TEXT NOT NULL,
	valid           INTEGER NOT NULL,
	energy          REAL NOT NULL,
	violation_count INTEGER NOT NULL,
	created_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS violation_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       TEXT NOT NULL,
	predicate_id TEXT NOT NULL,
	severity     TEXT NOT NULL,
	message      TEXT,
	repaired     INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (run_id) REFERENCES validation_runs(run_id)
);

CREATE TABLE IF NOT EXISTS escape_steps (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	step_index INTEGER NOT NULL,
	phase      TEXT NOT NULL,
	state_json TEXT NOT NULL,
	energy     REAL NOT NULL,
	distance   REAL NOT NULL DEFAULT 0,
	FOREIGN KEY (run_id) REFERENCES validation_runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_violations_run ON violation_log(run_id);
CREATE INDEX IF NOT EXISTS idx_steps_run ON escape_steps(run_id);
`

// #endregion schema

// #region types

// RunRecord summarizes one recorded validation pass.
type RunRecord struct {
	RunID          string
	ManifestHash   string
	ManifestJSON   string
	Valid          bool
	Energy         float64
	ViolationCount int
	CreatedAt      time.Time
}

// ViolationRow is one logged violation with its repair flag.
type ViolationRow struct {
	PredicateID string
	Severity    string
	Message     string
	Repaired    bool
}

// StepRow is one logged escape-path step.
type StepRow struct {
	Index     int
	Phase     string
	StateJSON string
	Energy    float64
	Distance  float64
}

// PredicateStat aggregates how often a predicate fired and how often a
// repair was recorded for it.
type PredicateStat struct {
	PredicateID string
	Violations  int
	Repairs     int
}

// #endregion types

// #region store

// Store records validation runs, violations, and escape paths in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages (e.g. the
// brand profile store).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region record-run

// RecordRun writes one validation pass (manifest, result, and any escape
// path) in a single transaction and returns the stored record.
func (s *Store) RecordRun(m *manifest.Manifest, res *validator.Result, path []converge.Step) (RunRecord, error) {
	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshal manifest: %w", err)
	}

	rec := RunRecord{
		RunID:          uuid.New().String(),
		ManifestHash:   res.Hash,
		ManifestJSON:   string(manifestJSON),
		Valid:          res.Valid,
		Energy:         converge.Energy(res),
		ViolationCount: len(res.Violations),
		CreatedAt:      time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return RunRecord{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO validation_runs (run_id, manifest_hash, manifest_json, valid, energy, violation_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.ManifestHash, rec.ManifestJSON, boolToInt(rec.Valid),
		rec.Energy, rec.ViolationCount, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("insert run: %w", err)
	}

	repairedBy := make(map[string]bool, len(res.Repairs))
	for _, r := range res.Repairs {
		repairedBy[r.PredicateID] = true
	}
	for _, v := range res.Violations {
		_, err = tx.Exec(
			`INSERT INTO violation_log (run_id, predicate_id, severity, message, repaired)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.RunID, v.PredicateID, string(v.Severity), v.Message, boolToInt(repairedBy[v.PredicateID]),
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("insert violation: %w", err)
		}
	}

	for _, step := range path {
		stateJSON, err := json.Marshal(step.State)
		if err != nil {
			return RunRecord{}, fmt.Errorf("marshal step state: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO escape_steps (run_id, step_index, phase, state_json, energy, distance)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.RunID, step.Index, string(step.Phase), string(stateJSON), step.Energy, step.Distance,
		)
		if err != nil {
			return RunRecord{}, fmt.Errorf("insert step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return RunRecord{}, fmt.Errorf("commit: %w", err)
	}
	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// #endregion record-run

// #region queries

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, manifest_hash, manifest_json, valid, energy, violation_count, created_at
		 FROM validation_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// GetRun retrieves one run with its violations and escape-path steps.
func (s *Store) GetRun(runID string) (RunRecord, []ViolationRow, []StepRow, error) {
	row := s.db.QueryRow(
		`SELECT run_id, manifest_hash, manifest_json, valid, energy, violation_count, created_at
		 FROM validation_runs WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if err == sql.ErrNoRows {
		return RunRecord{}, nil, nil, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return RunRecord{}, nil, nil, err
	}

	vioRows, err := s.db.Query(
		`SELECT predicate_id, severity, message, repaired FROM violation_log WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return RunRecord{}, nil, nil, fmt.Errorf("query violations: %w", err)
	}
	defer vioRows.Close()

	var violations []ViolationRow
	for vioRows.Next() {
		var v ViolationRow
		var repaired int
		var msg sql.NullString
		if err := vioRows.Scan(&v.PredicateID, &v.Severity, &msg, &repaired); err != nil {
			return RunRecord{}, nil, nil, fmt.Errorf("scan violation: %w", err)
		}
		v.Message = msg.String
		v.Repaired = repaired != 0
		violations = append(violations, v)
	}
	if err := vioRows.Err(); err != nil {
		return RunRecord{}, nil, nil, err
	}

	stepRows, err := s.db.Query(
		`SELECT step_index, phase, state_json, energy, distance FROM escape_steps WHERE run_id = ? ORDER BY step_index`, runID)
	if err != nil {
		return RunRecord{}, nil, nil, fmt.Errorf("query steps: %w", err)
	}
	defer stepRows.Close()

	var steps []StepRow
	for stepRows.Next() {
		var st StepRow
		if err := stepRows.Scan(&st.Index, &st.Phase, &st.StateJSON, &st.Energy, &st.Distance); err != nil {
			return RunRecord{}, nil, nil, fmt.Errorf("scan step: %w", err)
		}
		steps = append(steps, st)
	}
	return rec, violations, steps, stepRows.Err()
}

// PredicateStats aggregates violation and repair counts per predicate
// across all recorded runs.
func (s *Store) PredicateStats() ([]PredicateStat, error) {
	rows, err := s.db.Query(
		`SELECT predicate_id, COUNT(*), SUM(repaired)
		 FROM violation_log GROUP BY predicate_id ORDER BY COUNT(*) DESC, predicate_id`)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats []PredicateStat
	for rows.Next() {
		var st PredicateStat
		if err := rows.Scan(&st.PredicateID, &st.Violations, &st.Repairs); err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// #endregion queries

// #region scan

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var rec RunRecord
	var valid int
	var createdStr string
	err := sc.Scan(&rec.RunID, &rec.ManifestHash, &rec.ManifestJSON, &valid,
		&rec.Energy, &rec.ViolationCount, &createdStr)
	if err != nil {
		return RunRecord{}, err
	}
	rec.Valid = valid != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return rec, nil
}

// #endregion scan
