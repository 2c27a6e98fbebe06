package dataset_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/modelkit/modelkit/dataset"
)

func TestNew(t *testing.T) {
	ds, err := dataset.New([][]float64{{1, 2}, {3, 4}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ds.Len(), test.ShouldEqual, 2)
	test.That(t, ds.Row(1), test.ShouldResemble, []float64{3, 4})

	_, err = dataset.New([][]float64{{1, 2}, {3}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "row 1")
}

func TestNewLabeled(t *testing.T) {
	ds, err := dataset.NewLabeled([][]float64{{1}, {2}}, []string{"a", "b"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ds.Label(0), test.ShouldEqual, "a")
	test.That(t, ds.Labels(), test.ShouldResemble, []string{"a", "b"})

	_, err = dataset.NewLabeled([][]float64{{1}, {2}}, []string{"a"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "2 rows but 1 labels")
}

func TestPossibleOutcomes(t *testing.T) {
	ds, err := dataset.NewLabeled(
		[][]float64{{1}, {2}, {3}, {4}},
		[]string{"b", "a", "b", "c"},
	)
	test.That(t, err, test.ShouldBeNil)
	// first-seen order, deterministic
	test.That(t, ds.PossibleOutcomes(), test.ShouldResemble, []string{"b", "a", "c"})
}

func TestCloneIsDeep(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	ds, err := dataset.NewLabeled(rows, []string{"a", "b"})
	test.That(t, err, test.ShouldBeNil)

	clone := ds.CloneLabeled()
	clone.Row(0)[0] = 99
	test.That(t, ds.Row(0)[0], test.ShouldEqual, 1.0)

	rows[1][1] = 42
	test.That(t, clone.Row(1)[1], test.ShouldEqual, 4.0)
}

func TestSubset(t *testing.T) {
	ds, err := dataset.NewLabeled(
		[][]float64{{1}, {2}, {3}},
		[]string{"a", "b", "c"},
	)
	test.That(t, err, test.ShouldBeNil)

	sub, err := ds.Subset([]int{2, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sub.Len(), test.ShouldEqual, 2)
	test.That(t, sub.Row(0), test.ShouldResemble, []float64{3})
	test.That(t, sub.Labels(), test.ShouldResemble, []string{"c", "a"})

	// subset copies rows
	sub.Row(0)[0] = 7
	test.That(t, ds.Row(2)[0], test.ShouldEqual, 3.0)

	_, err = ds.Subset([]int{3})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
}

func TestMatrix(t *testing.T) {
	ds, err := dataset.New([][]float64{{1, 2, 3}, {4, 5, 6}})
	test.That(t, err, test.ShouldBeNil)
	m := ds.Matrix()
	r, c := m.Dims()
	test.That(t, r, test.ShouldEqual, 2)
	test.That(t, c, test.ShouldEqual, 3)
	test.That(t, m.At(1, 2), test.ShouldEqual, 6.0)
}
