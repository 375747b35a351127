package pendulum

import (
	"fmt"

	env "github.com/samuelfneumann/gopendulum/environment"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"github.com/samuelfneumann/gopendulum/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// Continuous implements the pendulum swing-up environment with
// continuous actions. Actions are 1-dimensional and determine the
// torque to apply to the pendulum at its fixed base. Actions are
// bounded by [MinContinuousAction, MaxContinuousAction] = [-2, 2];
// actions outside of this region are clipped to stay within these
// bounds.
//
// Continuous implements the environment.Environment interface.
type Continuous struct {
	*base
}

// NewContinuous returns a new pendulum environment with continuous
// actions, along with the first timestep of the environment.
func NewContinuous(t env.Task, discount float64, obs Observations) (
	*Continuous, ts.TimeStep, error) {
	pendulum, firstStep, err := newBase(t, discount, obs)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}

	return &Continuous{pendulum}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (p *Continuous) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{MinContinuousAction})
	upperBound := mat.NewVecDense(ActionDims, []float64{MaxContinuousAction})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// Step takes one environmental step given action a and returns the
// next timestep as a timestep.TimeStep and a bool indicating whether
// or not the episode has ended. Actions are continuous, consisting of
// the torque applied to the pendulum's fixed base, and are clipped to
// stay within [MinContinuousAction, MaxContinuousAction].
func (p *Continuous) Step(a *mat.VecDense) (ts.TimeStep, bool) {
	// Ensure action is 1-dimensional
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions must be %v-dimensional "+
			"\n\thave(%v)", ActionDims, a.Len()))
	}

	// Calculate the torque applied
	torque := floatutils.Clip(a.AtVec(0), MinContinuousAction,
		MaxContinuousAction)

	// Calculate the next state given the torque/action
	newState := p.nextState(torque)

	// Update the embedded base environment
	return p.update(mat.NewVecDense(ActionDims, []float64{torque}), newState)
}

// String converts the environment to a string representation
func (p *Continuous) String() string {
	return fmt.Sprintf("Continuous  |  θ: %v  |  θ̇: %v",
		p.state.AtVec(0), p.state.AtVec(1))
}
