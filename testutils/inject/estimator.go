// Package inject provides injected (function-field) doubles of the
// module's contracts for testing.
package inject

import (
	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
)

// Estimator is an injected estimator.
type Estimator struct {
	estimator.Estimator
	TrainFunc   func(ds dataset.Dataset) error
	PredictFunc func(ds dataset.Dataset) ([]string, error)
}

// Train calls the injected Train or the real version.
func (e *Estimator) Train(ds dataset.Dataset) error {
	if e.TrainFunc == nil {
		return e.Estimator.Train(ds)
	}
	return e.TrainFunc(ds)
}

// Predict calls the injected Predict or the real version.
func (e *Estimator) Predict(ds dataset.Dataset) ([]string, error) {
	if e.PredictFunc == nil {
		return e.Estimator.Predict(ds)
	}
	return e.PredictFunc(ds)
}

// Probabilistic is an injected probabilistic estimator.
type Probabilistic struct {
	Estimator
	ProbaFunc func(ds dataset.Dataset) ([]map[string]float64, error)
}

// Proba calls the injected Proba or the real version.
func (p *Probabilistic) Proba(ds dataset.Dataset) ([]map[string]float64, error) {
	if p.ProbaFunc == nil {
		return p.Estimator.Estimator.(estimator.Probabilistic).Proba(ds)
	}
	return p.ProbaFunc(ds)
}
