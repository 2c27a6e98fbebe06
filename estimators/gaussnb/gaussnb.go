// Package gaussnb implements a Gaussian naive Bayes probabilistic
// classifier.
package gaussnb

import (
	"math"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
	"github.com/modelkit/modelkit/registry"
)

// Config holds the searchable hyperparameters.
type Config struct {
	// Smoothing is added to every feature variance to keep likelihoods
	// finite for zero-variance features.
	Smoothing float64 `mapstructure:"smoothing"`
}

// Validate applies defaults and checks ranges.
func (c *Config) Validate() error {
	if c.Smoothing == 0 {
		c.Smoothing = 1e-9
	}
	if c.Smoothing < 0 {
		return estimator.NewConfigError("smoothing must be positive, got %v", c.Smoothing)
	}
	return nil
}

type classStats struct {
	prior     float64
	means     []float64
	variances []float64
}

// Classifier fits one Gaussian per class per feature and predicts by
// maximum posterior likelihood under the feature-independence assumption.
type Classifier struct {
	cfg Config

	classes []string
	stats   map[string]*classStats
	trained bool
}

// New returns a Classifier with the given config.
func New(cfg Config) (*Classifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{cfg: cfg}, nil
}

// Train estimates per-class feature means, variances, and priors.
func (c *Classifier) Train(ds dataset.Dataset) error {
	labeled, ok := ds.(*dataset.Labeled)
	if !ok {
		return estimator.NewInputError("gaussian nb trains on labeled data only")
	}
	if labeled.Len() == 0 {
		return estimator.NewInputError("training dataset is empty")
	}

	classes := labeled.PossibleOutcomes()
	byClass := make(map[string][][]float64, len(classes))
	for i := 0; i < labeled.Len(); i++ {
		label := labeled.Label(i)
		byClass[label] = append(byClass[label], labeled.Row(i))
	}

	numFeatures := len(labeled.Row(0))
	statsByClass := make(map[string]*classStats, len(classes))
	for _, class := range classes {
		rows := byClass[class]
		cs := &classStats{
			prior:     float64(len(rows)) / float64(labeled.Len()),
			means:     make([]float64, numFeatures),
			variances: make([]float64, numFeatures),
		}
		column := make([]float64, len(rows))
		for f := 0; f < numFeatures; f++ {
			for r, row := range rows {
				column[r] = row[f]
			}
			mean, std := stat.MeanStdDev(column, nil)
			if math.IsNaN(std) {
				std = 0
			}
			cs.means[f] = mean
			cs.variances[f] = std*std + c.cfg.Smoothing
		}
		statsByClass[class] = cs
	}

	c.classes = classes
	c.stats = statsByClass
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

// Proba returns normalized class posteriors per row. Log-likelihoods are
// shifted by their maximum before exponentiation to avoid underflow.
func (c *Classifier) Proba(ds dataset.Dataset) ([]map[string]float64, error) {
	if !c.trained {
		return nil, estimator.ErrNotTrained
	}
	out := make([]map[string]float64, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		logLikelihoods := make([]float64, len(c.classes))
		maxLL := math.Inf(-1)
		for ci, class := range c.classes {
			cs := c.stats[class]
			if len(row) != len(cs.means) {
				return nil, errors.Errorf("row %d has %d features, trained on %d", i, len(row), len(cs.means))
			}
			ll := math.Log(cs.prior)
			for f, v := range row {
				ll += gaussianLogDensity(v, cs.means[f], cs.variances[f])
			}
			logLikelihoods[ci] = ll
			if ll > maxLL {
				maxLL = ll
			}
		}
		dist := make(map[string]float64, len(c.classes))
		total := 0.0
		for ci, class := range c.classes {
			p := math.Exp(logLikelihoods[ci] - maxLL)
			dist[class] = p
			total += p
		}
		for class := range dist {
			dist[class] /= total
		}
		out[i] = dist
	}
	return out, nil
}

func gaussianLogDensity(x, mean, variance float64) float64 {
	diff := x - mean
	return -0.5*math.Log(2*math.Pi*variance) - diff*diff/(2*variance)
}

func init() {
	registry.Register("gaussian_nb", registry.Schema{
		Params:        []string{"smoothing"},
		Probabilistic: true,
		Constructor: func(params map[string]interface{}) (estimator.Estimator, error) {
			var cfg Config
			// weak typing so numeric params survive JSON round trips
			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{WeaklyTypedInput: true, Result: &cfg})
			if err != nil {
				return nil, err
			}
			if err := decoder.Decode(params); err != nil {
				return nil, errors.Wrap(err, "decoding gaussian nb params")
			}
			return New(cfg)
		},
	})
}
