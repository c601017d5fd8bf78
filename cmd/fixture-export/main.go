package main

// #region imports
import (
	"flag"
	"fmt"
	"os"

	"github.com/sketchfoundry/brandgate/internal/audit"
	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/replay"
)

// #endregion imports

// #region main

func main() {
	dbPath := flag.String("db", "", "path to brandgate.db")
	last := flag.Int("last", 4, "number of most recent runs to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/db --out path/to/fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath string, last int, outPath string) error {
	store, err := audit.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(last)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		return fmt.Errorf("no runs to export")
	}

	fx := &replay.Fixture{
		Description: fmt.Sprintf("exported from %s (%d runs)", dbPath, len(runs)),
	}

	// Export oldest first so fixture order reads chronologically.
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		m, err := manifest.Decode([]byte(r.ManifestJSON))
		if err != nil {
			return fmt.Errorf("decode stored manifest %s: %w", r.RunID, err)
		}

		_, violations, steps, err := store.GetRun(r.RunID)
		if err != nil {
			return fmt.Errorf("load run %s: %w", r.RunID, err)
		}
		var ids []string
		for _, v := range violations {
			ids = append(ids, v.PredicateID)
		}

		fx.Cases = append(fx.Cases, replay.Case{
			Name:     r.RunID,
			Manifest: m,
			Expect: replay.Expectation{
				Valid:      r.Valid,
				Violations: ids,
				Escaped:    len(steps) > 0,
			},
		})
	}

	if err := replay.SaveFixture(outPath, fx); err != nil {
		return err
	}
	fmt.Printf("exported %d cases to %s\n", len(fx.Cases), outPath)
	return nil
}

// #endregion export
