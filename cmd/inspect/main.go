package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sketchfoundry/brandgate/internal/audit"
)

// #endregion imports

// #region main

func main() {
	dbPath := flag.String("db", "", "path to brandgate.db")
	last := flag.Int("last", 20, "show N most recent runs")
	runID := flag.String("run", "", "show single run detail")
	stats := flag.Bool("stats", false, "show per-predicate violation stats")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/brandgate.db [--last N] [--run id] [--stats] [--json]")
		os.Exit(2)
	}

	store, err := audit.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case *stats:
		err = runStatsMode(store, *jsonOut)
	case *runID != "":
		err = runDetailMode(store, *runID, *jsonOut)
	default:
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	RunID      string  `json:"run_id"`
	Valid      bool    `json:"valid"`
	Energy     float64 `json:"energy"`
	Violations int     `json:"violations"`
	CreatedAt  string  `json:"created_at"`
}

func runListMode(store *audit.Store, last int, jsonOut bool) error {
	runs, err := store.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	// Store returns newest first; reverse for chronological reading.
	rows := make([]listRow, len(runs))
	for i, r := range runs {
		rows[len(runs)-1-i] = listRow{
			RunID:      r.RunID,
			Valid:      r.Valid,
			Energy:     r.Energy,
			Violations: r.ViolationCount,
			CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-7s  %7s  %10s  %s\n", "Run", "Valid", "Energy", "Violations", "Time")
	fmt.Printf("%-12s+-%-7s+-%7s+-%10s+-%s\n", "------------", "-------", "-------", "----------", "--------------------")
	for _, r := range rows {
		fmt.Printf("%-12s  %-7v  %7.0f  %10d  %s\n", shortID(r.RunID), r.Valid, r.Energy, r.Violations, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	RunID        string            `json:"run_id"`
	ManifestHash string            `json:"manifest_hash"`
	Valid        bool              `json:"valid"`
	Energy       float64           `json:"energy"`
	CreatedAt    string            `json:"created_at"`
	Violations   []violationDetail `json:"violations,omitempty"`
	EscapePath   []stepDetail      `json:"escape_path,omitempty"`
}

type violationDetail struct {
	PredicateID string `json:"predicate_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Repaired    bool   `json:"repaired"`
}

type stepDetail struct {
	Index    int     `json:"index"`
	Phase    string  `json:"phase"`
	Energy   float64 `json:"energy"`
	Distance float64 `json:"distance"`
}

func runDetailMode(store *audit.Store, runID string, jsonOut bool) error {
	rec, violations, steps, err := store.GetRun(runID)
	if err != nil {
		return err
	}

	out := detailOutput{
		RunID:        rec.RunID,
		ManifestHash: rec.ManifestHash,
		Valid:        rec.Valid,
		Energy:       rec.Energy,
		CreatedAt:    rec.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for _, v := range violations {
		out.Violations = append(out.Violations, violationDetail{
			PredicateID: v.PredicateID,
			Severity:    v.Severity,
			Message:     v.Message,
			Repaired:    v.Repaired,
		})
	}
	for _, s := range steps {
		out.EscapePath = append(out.EscapePath, stepDetail{
			Index: s.Index, Phase: s.Phase, Energy: s.Energy, Distance: s.Distance,
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Run:      %s\n", rec.RunID)
	fmt.Printf("Hash:     %s\n", shortID(rec.ManifestHash))
	fmt.Printf("Valid:    %v\n", rec.Valid)
	fmt.Printf("Energy:   %.0f\n", rec.Energy)
	fmt.Printf("Time:     %s\n", out.CreatedAt)
	if len(violations) > 0 {
		fmt.Println("\nViolations:")
		for _, v := range violations {
			repaired := ""
			if v.Repaired {
				repaired = " (repair recorded)"
			}
			fmt.Printf("  [%s] %s: %s%s\n", v.Severity, v.PredicateID, v.Message, repaired)
		}
	}
	if len(steps) > 0 {
		fmt.Println("\nEscape path:")
		for _, s := range steps {
			fmt.Printf("  step %2d  phase=%-13s energy=%.0f  distance=%.1f\n",
				s.Index, s.Phase, s.Energy, s.Distance)
		}
	}
	return nil
}

// #endregion detail-mode

// #region stats-mode

func runStatsMode(store *audit.Store, jsonOut bool) error {
	stats, err := store.PredicateStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stderr, "no violations recorded")
		return nil
	}

	if jsonOut {
		return printJSON(stats)
	}

	fmt.Printf("%-20s  %10s  %8s\n", "Predicate", "Violations", "Repairs")
	fmt.Printf("%-20s+-%10s+-%8s\n", "--------------------", "----------", "--------")
	for _, s := range stats {
		fmt.Printf("%-20s  %10d  %8d\n", s.PredicateID, s.Violations, s.Repairs)
	}
	return nil
}

// #endregion stats-mode

// #region helpers

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// #endregion helpers
