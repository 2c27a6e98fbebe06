// Package classification provides label+score records derived from
// per-class probability distributions, plus postprocessors for filtering
// them.
package classification

import "fmt"

// Classification is one scored label.
type Classification interface {
	Score() float64
	Label() string
}

// Classifications is a list of scored labels for one sample.
type Classifications []Classification

type classification struct {
	score float64
	label string
}

// NewClassification creates a scored label.
func NewClassification(score float64, label string) Classification {
	return &classification{score: score, label: label}
}

func (c *classification) Score() float64 { return c.score }

func (c *classification) Label() string { return c.label }

func (c *classification) String() string {
	return fmt.Sprintf("Label: %s, Score: %.2f", c.label, c.score)
}

// FromDistribution converts a label->probability map into Classifications
// ordered by the given class order. Classes absent from the distribution
// are skipped.
func FromDistribution(dist map[string]float64, order []string) Classifications {
	out := make(Classifications, 0, len(dist))
	for _, label := range order {
		score, ok := dist[label]
		if !ok {
			continue
		}
		out = append(out, NewClassification(score, label))
	}
	return out
}

// Top returns the highest-scoring classification. Ties keep the earliest
// entry. The second return is false when the list is empty.
func (cc Classifications) Top() (Classification, bool) {
	var top Classification
	for _, c := range cc {
		if top == nil || c.Score() > top.Score() {
			top = c
		}
	}
	return top, top != nil
}
