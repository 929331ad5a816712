package matching

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidWeights is a configuration error: weights not summing to
// 1.0 must prevent the scorer from starting at all.
var ErrInvalidWeights = errors.New("invalid weight configuration")

const weightSumTolerance = 1e-6

// Weights distribute the overall score across the soft dimensions.
// They are configuration, not business logic, but must sum to 1.0.
type Weights struct {
	Skill        float64
	Values       float64
	Causes       float64
	Compensation float64
	Location     float64
	Language     float64
}

func (w Weights) Validate() error {
	for _, v := range []float64{w.Skill, w.Values, w.Causes, w.Compensation, w.Location, w.Language} {
		if v < 0 {
			return errors.Wrap(ErrInvalidWeights, "weights must be non-negative")
		}
	}
	sum := w.Skill + w.Values + w.Causes + w.Compensation + w.Location + w.Language
	if math.Abs(sum-1.0) > weightSumTolerance {
		return errors.Wrapf(ErrInvalidWeights, "weights sum to %v, want 1.0", sum)
	}
	return nil
}

// DefaultWeights is the balanced preset.
func DefaultWeights() Weights {
	return Weights{
		Skill:        0.30,
		Values:       0.20,
		Causes:       0.15,
		Compensation: 0.15,
		Location:     0.10,
		Language:     0.10,
	}
}
