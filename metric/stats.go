package metric

import (
	"github.com/pkg/errors"
	ts "github.com/sugarme/gotch/tensor"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the values of a tensor.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// Within reports whether all values lie in [lo, hi].
func (s Stats) Within(lo, hi float64) bool {
	return s.Min >= lo && s.Max <= hi
}

// Describe computes Stats of all values of x.
func Describe(x *ts.Tensor) (Stats, error) {
	vals := x.Float64Values()
	if len(vals) == 0 {
		return Stats{}, errors.New("empty tensor")
	}

	mean, std := stat.MeanStdDev(vals, nil)

	return Stats{
		Min:  floats.Min(vals),
		Max:  floats.Max(vals),
		Mean: mean,
		Std:  std,
	}, nil
}

// MeanScore returns the average realism score of a discriminator score map
// [B 1 H W]: the fraction of patches judged real, loosely speaking.
func MeanScore(scores *ts.Tensor) (float64, error) {
	s, err := Describe(scores)
	if err != nil {
		return 0, err
	}
	return s.Mean, nil
}
