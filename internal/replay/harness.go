package replay

// #region imports
import (
	"fmt"

	"github.com/sketchfoundry/brandgate/internal/converge"
	"github.com/sketchfoundry/brandgate/internal/predicate"
	"github.com/sketchfoundry/brandgate/internal/validator"
)

// #endregion imports

// #region types

// CaseResult captures the outcome of replaying one fixture case.
type CaseResult struct {
	Name       string
	Pass       bool
	Reason     string
	Valid      bool
	Violations []string
	PathLen    int
}

// Summary aggregates a replay run.
type Summary struct {
	Total  int
	Passed int
	Failed int
}

// #endregion types

// #region replay

// Replay runs every fixture case through validation and convergence
// entirely in memory and checks each against its expectation. The validator is built
// fresh from the fixture's profile so replays are reproducible regardless
// of host configuration.
func Replay(fx *Fixture) ([]CaseResult, Summary) {
	v := validator.New(predicate.DefaultSet(fx.Profile))
	synth := converge.New(v, fx.Profile)

	results := make([]CaseResult, 0, len(fx.Cases))
	var summary Summary

	for _, c := range fx.Cases {
		res := v.Validate(c.Manifest)

		cr := CaseResult{
			Name:  c.Name,
			Valid: res.Valid,
		}
		for _, vio := range res.Violations {
			cr.Violations = append(cr.Violations, vio.PredicateID)
		}
		if !res.Valid {
			path := synth.EscapePath(c.Manifest)
			cr.PathLen = len(path)
		}

		cr.Pass, cr.Reason = check(c.Expect, cr)
		summary.Total++
		if cr.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
		results = append(results, cr)
	}
	return results, summary
}

// check compares one case result against its expectation.
func check(expect Expectation, got CaseResult) (bool, string) {
	if got.Valid != expect.Valid {
		return false, fmt.Sprintf("valid=%v, expected %v", got.Valid, expect.Valid)
	}
	if len(expect.Violations) > 0 {
		if len(got.Violations) != len(expect.Violations) {
			return false, fmt.Sprintf("got %d violations %v, expected %v",
				len(got.Violations), got.Violations, expect.Violations)
		}
		for i, id := range expect.Violations {
			if got.Violations[i] != id {
				return false, fmt.Sprintf("violation %d is %s, expected %s", i, got.Violations[i], id)
			}
		}
	}
	escaped := got.PathLen > 0
	if escaped != expect.Escaped {
		return false, fmt.Sprintf("escaped=%v, expected %v", escaped, expect.Escaped)
	}
	return true, "ok"
}

// #endregion replay
