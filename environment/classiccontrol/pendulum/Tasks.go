package pendulum

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/gopendulum/environment"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"github.com/samuelfneumann/gopendulum/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

const (
	// Weights of the quadratic cost terms
	speedCostWeight  float64 = 0.1
	torqueCostWeight float64 = 0.001

	// TorqueWeight scales the quadratic action-cost weighting returned
	// by TorqueMatrix
	TorqueWeight float64 = 0.002

	// Tolerance within which a balanced pendulum counts as at-goal
	goalTolerance float64 = 1e-2
)

// SwingUp implements the task where the agent must swing the pendulum
// up from its hanging-down start state and hold it in a vertical
// position. Rewards are the negated quadratic cost
//
//	cost = normalize(θ)² + 0.1⋅θ̇² + 0.001⋅u²
//
// where normalize wraps the angle into [-π, π) and u is the effective
// (clipped) torque. Rewards are maximal (0) with the pendulum balanced
// upright, motionless, and unactuated.
//
// The task never terminates episodes at a goal state; episodes are cut
// off by a step limit only, and the cutoff step gets EndType
// timestep.Timeout.
type SwingUp struct {
	env.Starter
	ender env.Ender
}

// NewSwingUp returns a new SwingUp task with start state distribution
// defined by s and episodic step limit cutoff
func NewSwingUp(s env.Starter, cutoff int) *SwingUp {
	return &SwingUp{s, env.NewStepLimit(cutoff)}
}

// End determines if a timestep is the last in the episode, adjusting
// its StepType and EndType in-place if so
func (s *SwingUp) End(t *ts.TimeStep) bool {
	return s.ender.End(t)
}

// GetReward returns the reward for taking action a in state. Rewards
// depend on the pre-transition state only; nextState is ignored. The
// action is clipped to the legal torque range before the cost is
// computed.
func (s *SwingUp) GetReward(state, a, _ mat.Vector) float64 {
	th, thdot := state.AtVec(0), state.AtVec(1)
	u := floatutils.Clip(a.AtVec(0), MinContinuousAction,
		MaxContinuousAction)

	return -cost(th, thdot, u)
}

// AtGoal returns whether the argument state is a goal state, i.e.
// whether the pendulum is balanced upright and motionless
func (s *SwingUp) AtGoal(state mat.Matrix) bool {
	th := normalizeAngle(state.At(0, 0))
	thdot := state.At(1, 0)

	return math.Abs(th) < goalTolerance && math.Abs(thdot) < goalTolerance
}

// Min returns the minimum attainable reward on any single timestep
func (s *SwingUp) Min() float64 {
	return -(AngleBound*AngleBound +
		speedCostWeight*SpeedBound*SpeedBound +
		torqueCostWeight*TorqueBound*TorqueBound)
}

// Max returns the maximum attainable reward on any single timestep
func (s *SwingUp) Max() float64 {
	return 0.0
}

// RewardSpec returns the reward specification of the Task
func (s *SwingUp) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{s.Min()})
	upperBound := mat.NewVecDense(1, []float64{s.Max()})

	return env.NewSpec(shape, env.Reward, lowerBound, upperBound,
		env.Continuous)
}

// CostFn recomputes costs for a batch of vector-encoded observations
// and actions. Each row of states is an observation (cos θ, sin θ, θ̇)
// from which the angle is recovered with atan2; each row of actions
// holds a torque. The returned vector holds one cost per row.
//
// CostFn exists for external trajectory-optimization callers and plays
// no part in the environment's own control flow. Actions are not
// clipped.
func (s *SwingUp) CostFn(states, actions mat.Matrix) *mat.VecDense {
	r, c := states.Dims()
	if c != VectorObservationDims {
		panic(fmt.Sprintf("costFn: states must have %v columns "+
			"\n\thave(%v)", VectorObservationDims, c))
	}
	if ra, _ := actions.Dims(); ra != r {
		panic(fmt.Sprintf("costFn: got %v states but %v actions", r, ra))
	}

	costs := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		th := math.Atan2(states.At(i, 1), states.At(i, 0))
		costs.SetVec(i, cost(th, states.At(i, 2), actions.At(i, 0)))
	}
	return costs
}

// TorqueMatrix returns the quadratic action-cost weighting used by
// external planners: a TorqueWeight-scaled identity matrix sized to
// the action dimension
func (s *SwingUp) TorqueMatrix() *mat.DiagDense {
	weights := make([]float64, ActionDims)
	for i := range weights {
		weights[i] = TorqueWeight
	}
	return mat.NewDiagDense(ActionDims, weights)
}

// cost is the quadratic swing-up cost. The angle is normalized into
// [-π, π) for cost computation only.
func cost(th, thdot, torque float64) float64 {
	norm := normalizeAngle(th)
	return norm*norm + speedCostWeight*thdot*thdot +
		torqueCostWeight*torque*torque
}
