// Package validation scores trained estimators against labeled data. It
// supplies the Validator contract consumed by grid search plus hold-out and
// k-fold implementations of it.
package validation

import (
	"math/rand"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/modelkit/modelkit/dataset"
	"github.com/modelkit/modelkit/estimator"
)

// A Validator produces a fitness score for an estimator against a labeled
// dataset. Higher is better. The validator owns training: it receives an
// untrained (or stale) estimator and fits it on whatever split its protocol
// dictates.
type Validator interface {
	Score(est estimator.Estimator, ds *dataset.Labeled) (float64, error)
}

// Accuracy returns the fraction of predictions matching the actual labels.
func Accuracy(predicted, actual []string) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, errors.Errorf("have %d predictions but %d labels", len(predicted), len(actual))
	}
	if len(actual) == 0 {
		return 0, errors.New("cannot score zero predictions")
	}
	correct := 0
	for i, p := range predicted {
		if p == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(actual)), nil
}

// HoldOut scores by training on a random portion of the dataset and
// measuring accuracy on the held-out remainder.
type HoldOut struct {
	ratio float64
	seed  int64
}

// NewHoldOut returns a HoldOut validator holding out the given ratio of
// rows for testing. Ratio must be in (0, 1).
func NewHoldOut(ratio float64, seed int64) (*HoldOut, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, estimator.NewConfigError("hold-out ratio must be in (0, 1), got %v", ratio)
	}
	return &HoldOut{ratio: ratio, seed: seed}, nil
}

// Score trains est on the training portion and returns accuracy on the
// held-out portion.
func (h *HoldOut) Score(est estimator.Estimator, ds *dataset.Labeled) (float64, error) {
	n := ds.Len()
	nTest := int(float64(n) * h.ratio)
	if nTest < 1 || n-nTest < 1 {
		return 0, errors.Errorf("cannot hold out %d of %d rows", nTest, n)
	}
	perm := rand.New(rand.NewSource(h.seed)).Perm(n)
	test, err := ds.Subset(perm[:nTest])
	if err != nil {
		return 0, err
	}
	train, err := ds.Subset(perm[nTest:])
	if err != nil {
		return 0, err
	}
	return trainAndScore(est, train, test)
}

// KFold scores by k-fold cross validation: the dataset is partitioned into
// k folds and each fold is scored by an estimator trained on the others.
// The score is the mean fold accuracy.
type KFold struct {
	k    int
	seed int64
}

// NewKFold returns a KFold validator with the given fold count (at least 2).
func NewKFold(k int, seed int64) (*KFold, error) {
	if k < 2 {
		return nil, estimator.NewConfigError("k-fold requires at least 2 folds, got %d", k)
	}
	return &KFold{k: k, seed: seed}, nil
}

// Score returns the mean accuracy over all folds.
func (kf *KFold) Score(est estimator.Estimator, ds *dataset.Labeled) (float64, error) {
	n := ds.Len()
	if n < kf.k {
		return 0, errors.Errorf("cannot split %d rows into %d folds", n, kf.k)
	}
	perm := rand.New(rand.NewSource(kf.seed)).Perm(n)
	scores := make([]float64, 0, kf.k)
	for fold := 0; fold < kf.k; fold++ {
		lo := fold * n / kf.k
		hi := (fold + 1) * n / kf.k
		test, err := ds.Subset(perm[lo:hi])
		if err != nil {
			return 0, err
		}
		trainIdx := make([]int, 0, n-(hi-lo))
		trainIdx = append(trainIdx, perm[:lo]...)
		trainIdx = append(trainIdx, perm[hi:]...)
		train, err := ds.Subset(trainIdx)
		if err != nil {
			return 0, err
		}
		score, err := trainAndScore(est, train, test)
		if err != nil {
			return 0, errors.Wrapf(err, "fold %d", fold)
		}
		scores = append(scores, score)
	}
	return stats.Mean(stats.Float64Data(scores))
}

func trainAndScore(est estimator.Estimator, train, test *dataset.Labeled) (float64, error) {
	if err := est.Train(train); err != nil {
		return 0, err
	}
	predicted, err := est.Predict(test)
	if err != nil {
		return 0, err
	}
	return Accuracy(predicted, test.Labels())
}
