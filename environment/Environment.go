// Package environment outlines the interfaces and structs needed to implement
// concrete environments
package environment

import (
	"fmt"

	"github.com/samuelfneumann/gopendulum/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments. Seeding happens at construction
// time: to re-seed an environment, construct a new Starter.
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when and how episodes end. Enders are external to
// the environment dynamics: an environment whose dynamics never reach
// a terminal state may still have its episodes cut off by an Ender.
type Ender interface {
	// End takes the next TimeStep in an episode and modifies its
	// StepType and EndType in-place if the episode should end at
	// that step, returning whether the episode ended.
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment. A Task determines the start state distribution of its
// environment and when episodes of its environment end.
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action a in state,
	// transitioning to nextState. The state vectors are the internal
	// environment state, not the encoded observation.
	GetReward(state, a, nextState mat.Vector) float64

	// AtGoal returns whether state is a goal state of the Task
	AtGoal(state mat.Matrix) bool

	// Min and Max return the minimum and maximum attainable rewards
	// on any single timestep
	Min() float64
	Max() float64

	RewardSpec() Spec
}

// Environment implements a simulated environment, which includes a
// Task to complete
type Environment interface {
	Task
	fmt.Stringer

	// Reset resets the environment, begins a new episode, and returns
	// the first timestep of the new episode
	Reset() timestep.TimeStep

	// CurrentTimeStep returns the last TimeStep that occurred in the
	// environment
	CurrentTimeStep() timestep.TimeStep

	// Step takes one environmental step given an action, returning
	// the next timestep and whether the episode has ended
	Step(action *mat.VecDense) (timestep.TimeStep, bool)

	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
