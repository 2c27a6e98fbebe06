// Package knn implements a k-nearest-neighbor probabilistic classifier
// with a pluggable distance strategy.
package knn

import (
	"math"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
	"github.com/modelkit/modelkit/registry"
)

// distanceEpsilon keeps inverse-distance weights finite for exact matches.
const distanceEpsilon = 1e-8

// Config holds the searchable hyperparameters.
type Config struct {
	K        int  `mapstructure:"k"`
	Weighted bool `mapstructure:"weighted"`
}

// Validate applies defaults and checks ranges.
func (c *Config) Validate() error {
	if c.K == 0 {
		c.K = 5
	}
	if c.K < 0 {
		return estimator.NewConfigError("k must be positive, got %d", c.K)
	}
	return nil
}

// Classifier is a lazy-learning classifier: Train memorizes the dataset and
// Predict votes among the k nearest memorized rows.
type Classifier struct {
	cfg  Config
	dist estimator.Distance

	rows    [][]float64
	labels  []string
	classes []string
	trained bool
}

// New returns a Classifier with the given config and distance. A nil
// distance defaults to Euclidean.
func New(cfg Config, dist estimator.Distance) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if dist == nil {
		dist = estimator.Euclidean
	}
	return &Classifier{cfg: cfg, dist: dist}, nil
}

// Train memorizes a deep copy of the labeled dataset.
func (c *Classifier) Train(ds dataset.Dataset) error {
	labeled, ok := ds.(*dataset.Labeled)
	if !ok {
		return estimator.NewInputError("knn trains on labeled data only")
	}
	if labeled.Len() == 0 {
		return estimator.NewInputError("training dataset is empty")
	}
	memorized := labeled.CloneLabeled()
	rows := make([][]float64, memorized.Len())
	for i := range rows {
		rows[i] = memorized.Row(i)
	}
	c.rows = rows
	c.labels = memorized.Labels()
	c.classes = memorized.PossibleOutcomes()
	c.trained = true
	return nil
}

// Predict returns the highest-probability class per row.
func (c *Classifier) Predict(ds dataset.Dataset) ([]string, error) {
	dists, err := c.Proba(ds)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(dists))
	for i, dist := range dists {
		best := ""
		bestP := math.Inf(-1)
		for _, class := range c.classes {
			if p := dist[class]; p > bestP {
				best = class
				bestP = p
			}
		}
		out[i] = best
	}
	return out, nil
}

// Proba returns, per row, the class vote shares among the k nearest
// memorized rows. With Weighted set, votes are inverse-distance weighted.
func (c *Classifier) Proba(ds dataset.Dataset) ([]map[string]float64, error) {
	if !c.trained {
		return nil, estimator.ErrNotTrained
	}
	out := make([]map[string]float64, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		if len(row) != len(c.rows[0]) {
			return nil, errors.Errorf("row %d has %d features, trained on %d", i, len(row), len(c.rows[0]))
		}
		out[i] = c.vote(row)
	}
	return out, nil
}

type neighbor struct {
	index    int
	distance float64
}

func (c *Classifier) vote(row []float64) map[string]float64 {
	neighbors := make([]neighbor, len(c.rows))
	for i, memorized := range c.rows {
		neighbors[i] = neighbor{index: i, distance: c.dist(row, memorized)}
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].distance < neighbors[b].distance
	})
	k := c.cfg.K
	if k > len(neighbors) {
		k = len(neighbors)
	}

	votes := make(map[string]float64, len(c.classes))
	for _, class := range c.classes {
		votes[class] = 0
	}
	total := 0.0
	for _, nb := range neighbors[:k] {
		weight := 1.0
		if c.cfg.Weighted {
			weight = 1.0 / (nb.distance + distanceEpsilon)
		}
		votes[c.labels[nb.index]] += weight
		total += weight
	}
	for class := range votes {
		votes[class] /= total
	}
	return votes
}

func init() {
	registry.Register("knn", registry.Schema{
		Params:        []string{"k", "weighted"},
		Probabilistic: true,
		Constructor: func(params map[string]interface{}) (estimator.Estimator, error) {
			var cfg Config
			// weak typing so numeric params survive JSON round trips
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &cfg})
			if err != nil {
				return nil, err
			}
			if err := decoder.Decode(params); err != nil {
				return nil, errors.Wrap(err, "decoding knn params")
			}
			return New(cfg, estimator.Euclidean)
		},
	})
}
