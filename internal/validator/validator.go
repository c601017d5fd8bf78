package validator

// #region imports
import (
	"fmt"
	"sync"

	"github.com/sketchfoundry/brandgate/internal/manifest"
	"github.com/sketchfoundry/brandgate/internal/predicate"
)

// #endregion imports

// #region types

// Violation reports one failed predicate.
type Violation struct {
	PredicateID string             `json:"predicate_id"`
	Message     string             `json:"message"`
	Severity    predicate.Severity `json:"severity"`
}

// Repair records a predicate's independently repaired manifest. Repairs
// are advisory: the validator never composes them into a single corrected
// manifest; the escape path is the only constructive route to validity.
type Repair struct {
	PredicateID string             `json:"predicate_id"`
	Manifest    *manifest.Manifest `json:"manifest"`
}

// Result is the outcome of one validation pass. Valid is the logical AND
// of every predicate result; Violations and Repairs preserve predicate
// evaluation order.
type Result struct {
	Valid      bool        `json:"valid"`
	Hash       string      `json:"hash"`
	Violations []Violation `json:"violations"`
	Repairs    []Repair    `json:"repairs"`
}

// HasError reports whether any violation carries error severity.
func (r *Result) HasError() bool {
	for _, v := range r.Violations {
		if v.Severity == predicate.SeverityError {
			return true
		}
	}
	return false
}

// #endregion types

// #region validator

// Validator evaluates the fixed predicate set against manifests and
// memoizes results by structural content identity. The cache is owned by
// the instance, unbounded, and invalidated only wholesale through
// ClearCache: callers must clear it whenever predicate definitions or the
// brand profile change, since the key is content-only.
type Validator struct {
	preds []predicate.Predicate

	mu    sync.RWMutex
	cache map[string]*Result
}

// New creates a Validator owning the given predicate set.
func New(preds []predicate.Predicate) *Validator {
	return &Validator{
		preds: preds,
		cache: make(map[string]*Result),
	}
}

// Predicates returns the validator's predicate set (read-only to callers).
func (v *Validator) Predicates() []predicate.Predicate {
	return v.preds
}

// #endregion validator

// #region validate

// Validate evaluates every predicate in fixed order and aggregates
// violations and repair attempts. Structurally identical manifests return
// the same cached *Result. A predicate that panics is converted to a
// violation and never aborts the pass.
func (v *Validator) Validate(m *manifest.Manifest) *Result {
	hash := manifest.StructuralHash(m)

	v.mu.RLock()
	cached, hit := v.cache[hash]
	v.mu.RUnlock()
	if hit {
		return cached
	}

	res := &Result{Valid: true, Hash: hash}
	for _, p := range v.preds {
		finding := runTest(p, m)
		if finding.Valid {
			continue
		}
		res.Valid = false
		res.Violations = append(res.Violations, Violation{
			PredicateID: p.ID,
			Message:     finding.Message,
			Severity:    p.Severity,
		})
		if repaired, okFix := runFix(p, m); okFix {
			res.Repairs = append(res.Repairs, Repair{PredicateID: p.ID, Manifest: repaired})
		}
	}

	// Insert-or-overwrite under the same key always carries equivalent
	// content, so last-writer-wins is fine.
	v.mu.Lock()
	v.cache[hash] = res
	v.mu.Unlock()
	return res
}

// runTest isolates a predicate test: a panic becomes a failed finding
// carrying the panic message.
func runTest(p predicate.Predicate, m *manifest.Manifest) (f predicate.Finding) {
	defer func() {
		if r := recover(); r != nil {
			f = predicate.Finding{Valid: false, Message: fmt.Sprintf("predicate crashed: %v", r)}
		}
	}()
	if p.Test == nil {
		return predicate.Finding{Valid: true}
	}
	return p.Test(m)
}

// runFix isolates a repair the same way; a panicking or absent fix is
// simply not recorded.
func runFix(p predicate.Predicate, m *manifest.Manifest) (out *manifest.Manifest, okFix bool) {
	defer func() {
		if r := recover(); r != nil {
			out, okFix = nil, false
		}
	}()
	if p.Fix == nil {
		return nil, false
	}
	return p.Fix(m), true
}

// #endregion validate

// #region cache-control

// ClearCache drops every memoized result.
func (v *Validator) ClearCache() {
	v.mu.Lock()
	v.cache = make(map[string]*Result)
	v.mu.Unlock()
}

// CacheSize returns the number of memoized results.
func (v *Validator) CacheSize() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.cache)
}

// #endregion cache-control
