package committee

import (
	"github.com/modelkit/modelkit/classification"
	"github.com/modelkit/modelkit/dataset"
)

// Classifications returns the aggregated distributions as scored labels,
// one list per row, ordered by the training-time class order. This is the
// consumer-facing view of Proba; postprocessors from the classification
// package compose over it.
func (m *Machine) Classifications(ds dataset.Dataset) ([]classification.Classifications, error) {
	aggregated, err := m.Proba(ds)
	if err != nil {
		return nil, err
	}
	classes := m.Classes()
	out := make([]classification.Classifications, len(aggregated))
	for i, dist := range aggregated {
		out[i] = classification.FromDistribution(dist, classes)
	}
	return out, nil
}
