package gridsearch

import (
	"github.com/pkg/errors"

	"github.com/modelkit/modelkit/estimator"
)

// A Snapshot is the reconstructible state of a GridSearch, shaped for an
// external persister. The wire format is the persister's concern.
type Snapshot struct {
	BaseType   string                 `json:"base_type"`
	ParamNames []string               `json:"param_names"`
	Grid       [][]interface{}        `json:"grid"`
	Results    []TrialResult          `json:"results"`
	BestIndex  int                    `json:"best_index"`
	BestParams map[string]interface{} `json:"best_params,omitempty"`
}

// Snapshot captures the most recent search state.
func (g *GridSearch) Snapshot() (*Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.trained {
		return nil, estimator.ErrNotTrained
	}
	results := make([]TrialResult, len(g.results))
	copy(results, g.results)
	return &Snapshot{
		BaseType:   g.baseType,
		ParamNames: g.names,
		Grid:       g.grid,
		Results:    results,
		BestIndex:  g.bestIndex,
		BestParams: g.results[g.bestIndex].Params,
	}, nil
}

// Restore reinstates a search trace captured by Snapshot and rebuilds the
// active delegate from the best parameters through the registry. The
// delegate comes back untrained; persisting a trained delegate is the
// estimator's own persistence concern.
func (g *GridSearch) Restore(s *Snapshot) error {
	if s.BaseType != g.baseType {
		return errors.Errorf("snapshot is for type %q, this search is over %q", s.BaseType, g.baseType)
	}
	if s.BestIndex < 0 || s.BestIndex >= len(s.Results) {
		return errors.Errorf("snapshot best index %d out of range for %d results", s.BestIndex, len(s.Results))
	}
	active, err := g.schema.Constructor(s.Results[s.BestIndex].Params)
	if err != nil {
		return errors.Wrap(err, "rebuilding selected estimator")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.results = s.Results
	g.bestIndex = s.BestIndex
	g.active = active
	g.trained = true
	return nil
}
