package pendulum

import (
	"fmt"

	env "github.com/samuelfneumann/gopendulum/environment"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"gonum.org/v1/gonum/mat"
)

// Discrete implements the pendulum swing-up environment with discrete
// actions. Actions are 1-dimensional and in the set
// {MinDiscreteAction, ..., MaxDiscreteAction} = {0, 1, 2, 3, 4},
// mapping evenly onto torques in [-TorqueBound, TorqueBound]:
//
//	action:	0		1		2		3		4
//	torque:	-2.0	-1.0	0.0		1.0		2.0
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*base
}

// NewDiscrete returns a new pendulum environment with discrete
// actions, along with the first timestep of the environment.
func NewDiscrete(t env.Task, discount float64, obs Observations) (
	*Discrete, ts.TimeStep, error) {
	pendulum, firstStep, err := newBase(t, discount, obs)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}

	return &Discrete{pendulum}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (p *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the
// next timestep as a timestep.TimeStep and a bool indicating whether
// or not the episode has ended. Actions outside the legal set cause a
// panic.
func (p *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool) {
	// Ensure action is 1-dimensional
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions must be %v-dimensional "+
			"\n\thave(%v)", ActionDims, a.Len()))
	}

	// Ensure a legal action was selected
	intAction := int(a.AtVec(0))
	if intAction < MinDiscreteAction || intAction > MaxDiscreteAction {
		panic(fmt.Sprintf("step: illegal action %v ∉ [%v, %v]", intAction,
			MinDiscreteAction, MaxDiscreteAction))
	}

	// Convert the discrete action to a torque applied to the fixed
	// base: actions map evenly onto [-TorqueBound, TorqueBound]
	torque := MinContinuousAction + float64(intAction)*
		(MaxContinuousAction-MinContinuousAction)/
		float64(MaxDiscreteAction-MinDiscreteAction)

	// Calculate the next state given the torque/action
	newState := p.nextState(torque)

	// Update the embedded base environment
	return p.update(mat.NewVecDense(ActionDims, []float64{torque}), newState)
}

// String converts the environment to a string representation
func (p *Discrete) String() string {
	return fmt.Sprintf("Discrete  |  θ: %v  |  θ̇: %v",
		p.state.AtVec(0), p.state.AtVec(1))
}
