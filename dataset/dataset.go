// Package dataset provides the tabular feature/label containers that
// estimators, validators, and ensembles operate on.
package dataset

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a read-only view over rows of float64 features. Both labeled
// and unlabeled tabular data satisfy it; components that require ground
// truth assert for *Labeled.
type Dataset interface {
	// Len returns the number of rows.
	Len() int
	// Row returns the feature vector of row i.
	Row(i int) []float64
	// Clone returns a deep copy sharing no backing storage with the
	// original.
	Clone() Dataset
}

// Unlabeled is a rectangular feature matrix with no outcome column.
type Unlabeled struct {
	rows [][]float64
}

// New returns an Unlabeled dataset over the given rows. All rows must have
// the same number of features.
func New(rows [][]float64) (*Unlabeled, error) {
	if err := checkRectangular(rows); err != nil {
		return nil, err
	}
	return &Unlabeled{rows: rows}, nil
}

// Len returns the number of rows.
func (d *Unlabeled) Len() int { return len(d.rows) }

// Row returns the feature vector of row i.
func (d *Unlabeled) Row(i int) []float64 { return d.rows[i] }

// Clone deep-copies the dataset.
func (d *Unlabeled) Clone() Dataset {
	return &Unlabeled{rows: copyRows(d.rows)}
}

// Matrix returns a dense matrix view of the features. The matrix copies the
// underlying rows, so mutating it does not affect the dataset.
func (d *Unlabeled) Matrix() mat.Matrix {
	if len(d.rows) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(d.rows), len(d.rows[0]), nil)
	for i, row := range d.rows {
		m.SetRow(i, row)
	}
	return m
}

// Labeled is a rectangular feature matrix with one outcome label per row.
type Labeled struct {
	rows   [][]float64
	labels []string
}

// NewLabeled returns a Labeled dataset over the given rows and labels.
func NewLabeled(rows [][]float64, labels []string) (*Labeled, error) {
	if err := checkRectangular(rows); err != nil {
		return nil, err
	}
	if len(rows) != len(labels) {
		return nil, errors.Errorf("have %d rows but %d labels", len(rows), len(labels))
	}
	return &Labeled{rows: rows, labels: labels}, nil
}

// Len returns the number of rows.
func (d *Labeled) Len() int { return len(d.rows) }

// Row returns the feature vector of row i.
func (d *Labeled) Row(i int) []float64 { return d.rows[i] }

// Label returns the outcome label of row i.
func (d *Labeled) Label(i int) string { return d.labels[i] }

// Labels returns all outcome labels in row order.
func (d *Labeled) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// PossibleOutcomes returns the distinct outcome labels in first-seen order.
func (d *Labeled) PossibleOutcomes() []string {
	return lo.Uniq(d.labels)
}

// Clone deep-copies the dataset.
func (d *Labeled) Clone() Dataset {
	return d.CloneLabeled()
}

// CloneLabeled deep-copies the dataset, keeping the concrete type.
func (d *Labeled) CloneLabeled() *Labeled {
	labels := make([]string, len(d.labels))
	copy(labels, d.labels)
	return &Labeled{rows: copyRows(d.rows), labels: labels}
}

// Subset returns a new Labeled dataset containing the given row indices, in
// the given order. The subset copies its rows.
func (d *Labeled) Subset(indices []int) (*Labeled, error) {
	rows := make([][]float64, 0, len(indices))
	labels := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.rows) {
			return nil, errors.Errorf("row index %d out of range [0,%d)", idx, len(d.rows))
		}
		row := make([]float64, len(d.rows[idx]))
		copy(row, d.rows[idx])
		rows = append(rows, row)
		labels = append(labels, d.labels[idx])
	}
	return &Labeled{rows: rows, labels: labels}, nil
}

// Matrix returns a dense matrix view of the features.
func (d *Labeled) Matrix() mat.Matrix {
	if len(d.rows) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(d.rows), len(d.rows[0]), nil)
	for i, row := range d.rows {
		m.SetRow(i, row)
	}
	return m
}

func checkRectangular(rows [][]float64) error {
	if len(rows) == 0 {
		return nil
	}
	want := len(rows[0])
	for i, row := range rows {
		if len(row) != want {
			return errors.Errorf("row %d has %d features, want %d", i, len(row), want)
		}
	}
	return nil
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
