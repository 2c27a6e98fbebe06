// Package gridsearch implements exhaustive hyperparameter search with
// cross-validated model selection. A GridSearch enumerates the Cartesian
// product of candidate parameter values for a registered estimator type,
// trains and scores one candidate per combination through a Validator, and
// keeps the best-scoring instance as its active delegate.
package gridsearch

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
	"github.com/modelkit/modelkit/registry"
	"github.com/modelkit/modelkit/validation"
)

// A TrialResult records one evaluated parameter combination. Results are
// appended in enumeration order and immutable once recorded; together they
// form the audit trail of the most recent search.
type TrialResult struct {
	Params   map[string]interface{} `json:"params"`
	Score    float64                `json:"score"`
	Duration time.Duration          `json:"duration"`
}

// GridSearch selects the best configuration of a base estimator type over a
// parameter grid. It is itself an estimator: Train runs the search and
// Predict and Proba delegate to the selected instance.
type GridSearch struct {
	baseType    string
	schema      registry.Schema
	grid        [][]interface{}
	names       []string
	validator   validation.Validator
	logger      golog.Logger
	clock       clock.Clock
	parallelism int

	mu        sync.Mutex
	results   []TrialResult
	active    estimator.Estimator
	bestIndex int
	trained   bool
}

// Option configures a GridSearch.
type Option func(*GridSearch)

// WithClock injects the clock used to time trials.
func WithClock(c clock.Clock) Option {
	return func(g *GridSearch) { g.clock = c }
}

// WithParallelism bounds how many trials may run concurrently. The
// selection reduction stays sequential in enumeration order, so results are
// identical to a sequential search. Defaults to 1.
func WithParallelism(n int) Option {
	return func(g *GridSearch) { g.parallelism = n }
}

// New returns a GridSearch over the named registered estimator type.
//
// Grid holds one non-empty candidate list per searched parameter, bound
// positionally to the type's declared parameter names: the first list
// supplies candidates for the first declared parameter, and so on. Fewer
// lists than declared parameters is allowed; the rest take the type's
// defaults.
func New(
	baseType string,
	grid [][]interface{},
	validator validation.Validator,
	logger golog.Logger,
	opts ...Option,
) (*GridSearch, error) {
	schema, ok := registry.Lookup(baseType)
	if !ok {
		return nil, estimator.NewConfigError(
			"estimator type %q is not registered (have %v)", baseType, registry.RegisteredNames())
	}
	if len(grid) > len(schema.Params) {
		return nil, estimator.NewConfigError(
			"%d parameter lists supplied but type %q declares only %d parameters",
			len(grid), baseType, len(schema.Params))
	}
	for i, candidates := range grid {
		if len(candidates) == 0 {
			return nil, estimator.NewConfigError(
				"candidate list for parameter %q is empty", schema.Params[i])
		}
	}
	if validator == nil {
		return nil, estimator.NewConfigError("a validator is required")
	}
	g := &GridSearch{
		baseType:    baseType,
		schema:      schema,
		grid:        grid,
		names:       schema.Params[:len(grid)],
		validator:   validator,
		logger:      logger,
		clock:       clock.New(),
		parallelism: 1,
		bestIndex:   -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.parallelism < 1 {
		g.parallelism = 1
	}
	return g, nil
}

// Train runs the full search against a labeled dataset. Every combination
// in the grid is constructed, scored by the validator, and recorded; the
// strictly-highest score wins, with ties kept by the earliest-enumerated
// combination. Any prior search state is replaced only after the whole
// search completes. A constructor or scoring failure aborts the search.
func (g *GridSearch) Train(ds dataset.Dataset) error {
	labeled, ok := ds.(*dataset.Labeled)
	if !ok {
		return estimator.NewInputError(
			"grid search requires a labeled dataset to score candidates against")
	}

	combos := cartesian(g.grid)
	results := make([]TrialResult, len(combos))
	candidates := make([]estimator.Estimator, len(combos))

	var group errgroup.Group
	group.SetLimit(g.parallelism)
	for i, combo := range combos {
		group.Go(func() error {
			params := g.bind(combo)
			start := g.clock.Now()
			est, err := g.schema.Constructor(params)
			if err != nil {
				return errors.Wrapf(err, "constructing %q with params %v", g.baseType, params)
			}
			score, err := g.validator.Score(est, labeled)
			if err != nil {
				return errors.Wrapf(err, "scoring %q with params %v", g.baseType, params)
			}
			results[i] = TrialResult{Params: params, Score: score, Duration: g.clock.Since(start)}
			candidates[i] = est
			if g.logger != nil {
				g.logger.Debugw("trial scored", "type", g.baseType, "params", params, "score", score)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	// Deterministic reduction in enumeration order; strict > keeps the
	// earliest of any tie. The first trial is always the initial incumbent.
	bestIndex := 0
	bestScore := results[0].Score
	for i := 1; i < len(results); i++ {
		if results[i].Score > bestScore {
			bestScore = results[i].Score
			bestIndex = i
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.results = results
	g.bestIndex = bestIndex
	g.active = candidates[bestIndex]
	g.trained = true
	if g.logger != nil {
		g.logger.Infow("grid search complete",
			"type", g.baseType,
			"trials", len(results),
			"best_params", results[bestIndex].Params,
			"best_score", bestScore,
		)
	}
	return nil
}

// Predict delegates to the selected estimator.
func (g *GridSearch) Predict(ds dataset.Dataset) ([]string, error) {
	active, err := g.delegate()
	if err != nil {
		return nil, err
	}
	return active.Predict(ds)
}

// Proba delegates to the selected estimator, which must be probabilistic.
func (g *GridSearch) Proba(ds dataset.Dataset) ([]map[string]float64, error) {
	active, err := g.delegate()
	if err != nil {
		return nil, err
	}
	prob, ok := active.(estimator.Probabilistic)
	if !ok {
		return nil, errors.Errorf("estimator type %q does not report probabilities", g.baseType)
	}
	return prob.Proba(ds)
}

// Best returns the selected estimator and its trial record.
func (g *GridSearch) Best() (estimator.Estimator, TrialResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.trained {
		return nil, TrialResult{}, estimator.ErrNotTrained
	}
	return g.active, g.results[g.bestIndex], nil
}

// Results returns the trial records of the most recent search, in
// enumeration order.
func (g *GridSearch) Results() []TrialResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]TrialResult, len(g.results))
	copy(out, g.results)
	return out
}

func (g *GridSearch) delegate() (estimator.Estimator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.trained {
		return nil, estimator.ErrNotTrained
	}
	return g.active, nil
}

// bind assigns combination values positionally to parameter names.
func (g *GridSearch) bind(combo []interface{}) map[string]interface{} {
	params := make(map[string]interface{}, len(combo))
	for i, v := range combo {
		params[g.names[i]] = v
	}
	return params
}

// cartesian expands candidate lists in odometer order: the first list
// varies slowest, each partial product extended by every option of the next
// list. An empty grid yields the single empty combination.
func cartesian(grid [][]interface{}) [][]interface{} {
	combos := [][]interface{}{{}}
	for _, candidates := range grid {
		next := make([][]interface{}, 0, len(combos)*len(candidates))
		for _, partial := range combos {
			for _, v := range candidates {
				combo := make([]interface{}, len(partial), len(partial)+1)
				copy(combo, partial)
				next = append(next, append(combo, v))
			}
		}
		combos = next
	}
	return combos
}
