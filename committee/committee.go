// Package committee implements a committee machine: an ensemble of
// independently-trained probabilistic classifiers whose per-class
// probability distributions are averaged into a single consensus
// prediction.
package committee

import (
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
)

// defaultEpsilon guards the aggregation denominator against degenerate
// division and fixes it regardless of summation order.
const defaultEpsilon = 1e-8

// Machine is a fixed, non-empty committee of probabilistic experts.
// Membership is immutable after construction.
type Machine struct {
	experts []estimator.Probabilistic
	epsilon float64
	logger  golog.Logger

	mu      sync.Mutex
	classes []string
	trained bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithEpsilon overrides the aggregation denominator guard. The epsilon is
// owned per instance so independent committees stay isolated.
func WithEpsilon(eps float64) Option {
	return func(m *Machine) { m.epsilon = eps }
}

// New returns a Machine over the given experts. Every expert must satisfy
// estimator.Probabilistic; a committee of opaque label predictors has
// nothing to aggregate. All violations are reported together.
func New(experts []estimator.Estimator, logger golog.Logger, opts ...Option) (*Machine, error) {
	if len(experts) == 0 {
		return nil, estimator.NewConfigError("a committee requires at least one expert")
	}
	var violations error
	probabilistic := make([]estimator.Probabilistic, 0, len(experts))
	for i, ex := range experts {
		prob, ok := ex.(estimator.Probabilistic)
		if !ok {
			violations = multierr.Append(violations,
				estimator.NewConfigError("expert %d (%T) does not report probabilities", i, ex))
			continue
		}
		probabilistic = append(probabilistic, prob)
	}
	if violations != nil {
		return nil, violations
	}
	m := &Machine{
		experts: probabilistic,
		epsilon: defaultEpsilon,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NumExperts returns the committee size.
func (m *Machine) NumExperts() int { return len(m.experts) }

// Classes returns the class-label universe derived at training time, in
// first-seen order.
func (m *Machine) Classes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.classes))
	copy(out, m.classes)
	return out
}

// Train derives the class-label universe from the dataset's distinct
// outcomes and trains every expert on its own deep copy, so no mutable
// training state is shared between experts or with the caller. Derived
// state is replaced only after every expert has trained.
func (m *Machine) Train(ds dataset.Dataset) error {
	labeled, ok := ds.(*dataset.Labeled)
	if !ok {
		return estimator.NewInputError("a committee trains on labeled data only")
	}
	classes := labeled.PossibleOutcomes()
	if len(classes) == 0 {
		return estimator.NewInputError("training dataset has no outcomes")
	}
	for i, ex := range m.experts {
		if err := ex.Train(labeled.CloneLabeled()); err != nil {
			return errors.Wrapf(err, "training expert %d", i)
		}
		if m.logger != nil {
			m.logger.Debugw("expert trained", "expert", i, "rows", labeled.Len())
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes = classes
	m.trained = true
	return nil
}

// Proba returns one aggregated distribution per row, in row order. Each
// expert's per-class probability contributes p/(numExperts+epsilon), summed
// key-wise over a distribution initialized to zero for every training-time
// class. Rows are approximately convex; they are not renormalized to 1.
func (m *Machine) Proba(ds dataset.Dataset) ([]map[string]float64, error) {
	m.mu.Lock()
	classes := m.classes
	trained := m.trained
	m.mu.Unlock()
	if !trained {
		return nil, estimator.ErrNotTrained
	}

	n := ds.Len()
	aggregated := make([]map[string]float64, n)
	for i := range aggregated {
		dist := make(map[string]float64, len(classes))
		for _, class := range classes {
			dist[class] = 0
		}
		aggregated[i] = dist
	}

	denominator := float64(len(m.experts)) + m.epsilon
	for i, ex := range m.experts {
		dists, err := ex.Proba(ds)
		if err != nil {
			return nil, errors.Wrapf(err, "expert %d probabilities", i)
		}
		if len(dists) != n {
			return nil, errors.Errorf("expert %d returned %d distributions for %d rows", i, len(dists), n)
		}
		for row, dist := range dists {
			for class, p := range dist {
				aggregated[row][class] += p / denominator
			}
		}
	}
	return aggregated, nil
}

// Predict returns the consensus label per row: the class with the maximum
// aggregated probability. Classes are compared in the deterministic
// first-seen order fixed at training, and only a strictly greater
// probability displaces the incumbent, so ties keep the earliest class.
func (m *Machine) Predict(ds dataset.Dataset) ([]string, error) {
	aggregated, err := m.Proba(ds)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	classes := m.classes
	m.mu.Unlock()

	predictions := make([]string, len(aggregated))
	for i, dist := range aggregated {
		best := ""
		bestP := math.Inf(-1)
		for _, class := range classes {
			if p := dist[class]; p > bestP {
				best = class
				bestP = p
			}
		}
		predictions[i] = best
	}
	return predictions, nil
}
