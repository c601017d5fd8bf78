package main

// #region imports
import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sketchfoundry/brandgate/internal/audit"
	"github.com/sketchfoundry/brandgate/internal/brand"
	"github.com/sketchfoundry/brandgate/internal/converge"
	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/predicate"
	"github.com/sketchfoundry/brandgate/internal/validator"
)

// #endregion imports

// #region main

func main() {
	dbPath := envOr("BRANDGATE_DB", "brandgate.db")
	profilePath := os.Getenv("BRANDGATE_PROFILE")

	store, err := audit.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open audit store: %v", err)
	}
	defer store.Close()

	profileStore, err := brand.NewProfileStore(store.DB())
	if err != nil {
		log.Fatalf("failed to init profile store: %v", err)
	}

	var profile *brand.Profile
	if profilePath != "" {
		profile, err = brand.LoadProfile(profilePath)
		if err != nil {
			log.Fatalf("failed to load brand profile: %v", err)
		}
		if _, err := profileStore.Save(profile); err != nil {
			log.Printf("[VAL] warning: could not persist profile %q: %v", profile.Name, err)
		}
	}

	v := validator.New(predicate.DefaultSet(profile))
	synth := converge.New(v, profile)

	fmt.Println("Brandgate validation engine ready.")
	fmt.Printf("  DB: %s", dbPath)
	if profile != nil {
		fmt.Printf(" | Profile: %s (%d palette colors)", profile.Name, len(profile.Palette))
	}
	fmt.Println()
	fmt.Println("Paste a manifest as a JSON line ('ground' for the baseline, 'quit' to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return
		case "ground":
			printJSON(manifest.GroundState())
			continue
		case "clear":
			v.ClearCache()
			fmt.Println("cache cleared")
			continue
		}

		m, err := manifest.Decode([]byte(line))
		if err != nil {
			log.Printf("[VAL] bad manifest: %v", err)
			continue
		}

		res := v.Validate(m)
		printResult(res)
		if profile != nil {
			fmt.Printf("on-brand (%s): %v\n", profile.Name, brand.IsOnBrand(m, profile))
		}

		var path []converge.Step
		if !res.Valid {
			path = synth.EscapePath(m)
			printPath(path)
		}

		rec, err := store.RecordRun(m, res, path)
		if err != nil {
			log.Printf("[VAL] audit write failed: %v", err)
			continue
		}
		fmt.Printf("recorded run %s\n\n", rec.RunID)
	}
}

// #endregion main

// #region output

func printResult(res *validator.Result) {
	if res.Valid {
		fmt.Println("VALID — all predicates passed")
		return
	}
	fmt.Printf("INVALID — %d violation(s), energy %.0f\n", len(res.Violations), converge.Energy(res))
	for _, vio := range res.Violations {
		fmt.Printf("  [%s] %s: %s\n", vio.Severity, vio.PredicateID, vio.Message)
	}
	for _, rep := range res.Repairs {
		fmt.Printf("  repair available: %s\n", rep.PredicateID)
	}
}

func printPath(path []converge.Step) {
	fmt.Printf("escape path (%d steps):\n", len(path))
	for _, step := range path {
		fmt.Printf("  step %2d  phase=%-13s energy=%.0f  distance=%.1f\n",
			step.Index, step.Phase, step.Energy, step.Distance)
	}
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("[VAL] marshal: %v", err)
		return
	}
	fmt.Println(string(data))
}

// #endregion output

// #region env

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion env
