// Package estimator defines the capability contracts shared by every
// trainable model in this module, along with the error kinds they report.
package estimator

import (
	"github.com/modelkit/modelkit/dataset"
)

// Estimator is a trainable model. Train fits the model to a dataset;
// implementations requiring ground truth return an InputError when the
// dataset is not labeled. Predict returns one label per row, preserving row
// order, and fails with ErrNotTrained before a successful Train.
type Estimator interface {
	Train(ds dataset.Dataset) error
	Predict(ds dataset.Dataset) ([]string, error)
}

// Probabilistic is an Estimator that can additionally report a per-class
// probability distribution for each row.
type Probabilistic interface {
	Estimator

	// Proba returns one label->probability map per row, in row order.
	Proba(ds dataset.Dataset) ([]map[string]float64, error)
}
