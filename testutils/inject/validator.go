package inject

import (
	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
	"github.com/modelkit/modelkit/validation"
)

// Validator is an injected validator.
type Validator struct {
	validation.Validator
	ScoreFunc func(est estimator.Estimator, ds *dataset.Labeled) (float64, error)
}

// Score calls the injected Score or the real version.
func (v *Validator) Score(est estimator.Estimator, ds *dataset.Labeled) (float64, error) {
	if v.ScoreFunc == nil {
		return v.Validator.Score(est, ds)
	}
	return v.ScoreFunc(est, ds)
}
