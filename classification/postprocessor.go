package classification

import (
	"strings"

	"github.com/samber/lo"
)

// Postprocessor defines a function that filters/modifies an incoming list
// of Classifications.
type Postprocessor func(Classifications) Classifications

// NewScoreFilter returns a function that filters out classifications below
// a certain score.
func NewScoreFilter(conf float64) Postprocessor {
	return func(in Classifications) Classifications {
		return lo.Filter(in, func(c Classification, _ int) bool {
			return c.Score() >= conf
		})
	}
}

// NewLabelFilter returns a function that filters out classifications
// without one of the chosen labels. Does not filter when input is empty.
func NewLabelFilter(labels map[string]interface{}) Postprocessor {
	return func(in Classifications) Classifications {
		if len(labels) < 1 {
			return in
		}
		return lo.Filter(in, func(c Classification, _ int) bool {
			_, ok := labels[strings.ToLower(c.Label())]
			return ok
		})
	}
}

// NewLabelConfidenceFilter returns a function that filters out
// classifications based on a per-label score threshold map. Does not filter
// when input is empty.
func NewLabelConfidenceFilter(labels map[string]float64) Postprocessor {
	theLabels := make(map[string]float64)
	for name, conf := range labels {
		theLabels[strings.ToLower(name)] = conf
	}
	return func(in Classifications) Classifications {
		if len(theLabels) < 1 {
			return in
		}
		return lo.Filter(in, func(c Classification, _ int) bool {
			conf, ok := theLabels[strings.ToLower(c.Label())]
			return ok && c.Score() >= conf
		})
	}
}
