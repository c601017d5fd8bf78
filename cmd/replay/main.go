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
	dbPath := flag.String("db", "", "path to brandgate.db (DB mode)")
	fixturePath := flag.String("fixture", "", "path to fixture JSON (fixture mode)")
	last := flag.Int("last", 20, "number of recorded runs to replay in DB mode")
	flag.Parse()

	if (*dbPath == "" && *fixturePath == "") || (*dbPath != "" && *fixturePath != "") {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		fmt.Fprintln(os.Stderr, "       replay --db path/to/brandgate.db [--last N]")
		os.Exit(2)
	}

	var exitCode int
	if *fixturePath != "" {
		exitCode = runFixtureMode(*fixturePath)
	} else {
		exitCode = runDBMode(*dbPath, *last)
	}
	os.Exit(exitCode)
}

// #endregion main

// #region fixture-mode

func runFixtureMode(path string) int {
	fx, err := replay.LoadFixture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 1
	}
	if fx.Description != "" {
		fmt.Printf("Fixture: %s\n", fx.Description)
	}
	results, summary := replay.Replay(fx)
	return report(results, summary)
}

// #endregion fixture-mode

// #region db-mode

// runDBMode rebuilds fixture cases from recorded runs: each stored
// manifest is replayed with its recorded outcome as the expectation, so a
// drifted predicate set shows up as a failing case.
func runDBMode(dbPath string, last int) int {
	store, err := audit.NewStore(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		return 1
	}
	defer store.Close()

	runs, err := store.ListRuns(last)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list runs: %v\n", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs to replay")
		return 1
	}

	fx := &replay.Fixture{Description: fmt.Sprintf("replay of %d recorded runs", len(runs))}
	for _, r := range runs {
		m, err := manifest.Decode([]byte(r.ManifestJSON))
		if err != nil {
			fmt.Fprintf(os.Stderr, "decode stored manifest %s: %v\n", r.RunID, err)
			return 1
		}
		fx.Cases = append(fx.Cases, replay.Case{
			Name:     r.RunID,
			Manifest: m,
			Expect:   replay.Expectation{Valid: r.Valid, Escaped: !r.Valid},
		})
	}

	results, summary := replay.Replay(fx)
	return report(results, summary)
}

// #endregion db-mode

// #region report

func report(results []replay.CaseResult, summary replay.Summary) int {
	for _, r := range results {
		status := "PASS"
		if !r.Pass {
			status = "FAIL"
		}
		fmt.Printf("%-4s  %-40s  valid=%-5v  path=%d  %s\n", status, r.Name, r.Valid, r.PathLen, r.Reason)
	}
	fmt.Printf("\n%d cases: %d passed, %d failed\n", summary.Total, summary.Passed, summary.Failed)
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// #endregion report
