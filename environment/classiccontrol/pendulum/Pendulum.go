// Package pendulum implements the pendulum swing-up environment
package pendulum

import (
	"fmt"
	"math"
	"os"

	env "github.com/samuelfneumann/gopendulum/environment"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"github.com/samuelfneumann/gopendulum/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Default physical constants
const (
	AngleBound  float64 = math.Pi // +/- Angle bounds for cost computation
	SpeedBound  float64 = 8.0     // +/- Speed bounds
	TorqueBound float64 = 2.0     // +/- Torque bounds

	MaxContinuousAction float64 = TorqueBound
	MinContinuousAction float64 = -MaxContinuousAction

	MinDiscreteAction int = 0
	MaxDiscreteAction int = 4

	dt      float64 = 0.05
	Gravity float64 = 10.0
	Mass    float64 = 1.0
	Length  float64 = 1.0

	ActionDims int = 1
	StateDims  int = 2

	// Start states are drawn uniformly from the hanging-down
	// configuration perturbed by these half-widths
	InitialAngle      float64 = math.Pi
	InitialAngleRange float64 = 0.01
	InitialSpeedRange float64 = 0.01
)

// base implements the pendulum swing-up environment. In this
// environment, a pendulum is attached to a fixed, actuated base. An
// agent can swing the pendulum back and forth, but the swinging torque
// is underpowered. In order to swing the pendulum straight up, it must
// first be rocked back and forth, using the momentum to gradually
// climb higher until the pendulum can point straight up.
//
// The internal state consists of the angle of the pendulum from the
// positive y-axis and the angular velocity of the pendulum. The
// angular velocity is clipped between [-SpeedBound, SpeedBound]. The
// angle is left unwrapped; it is normalized into [-π, π) only for
// cost computation. Episodes start with the pendulum hanging nearly
// straight down: θ ∈ [π-0.01, π+0.01] and θ̇ ∈ [-0.01, 0.01].
//
// Observations are produced by the configured Observations encoding:
// either the 3-vector (cos θ, sin θ, θ̇) or a flattened image of the
// rendered scene, optionally stacked over a sliding window of prior
// frames. See Observations.
//
// Actions determine the torque to apply to the pendulum at its fixed
// base. Actions are bounded by [-TorqueBound, TorqueBound] = [-2, 2].
// Actions outside of this region are clipped to stay within these
// bounds.
//
// The dynamics never reach a terminal state. Episodes end only when
// the Task's Ender cuts them off, in which case the final timestep
// has EndType timestep.Timeout.
//
// base does not implement the environment.Environment interface, but
// is embedded in Continuous and Discrete which do implement this
// interface. This struct is used to share code between the discrete
// action and continuous action versions of the environment.
type base struct {
	env.Task

	state   *mat.VecDense // (θ, θ̇), θ unwrapped
	encoder *obsEncoder

	lastStep ts.TimeStep
	discount float64

	speedBounds  r1.Interval
	torqueBounds r1.Interval
}

// newBase returns a new base pendulum environment
func newBase(t env.Task, discount float64, obs Observations) (*base,
	ts.TimeStep, error) {
	encoder, err := newObsEncoder(obs)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: %v", err)
	}

	pendulum := &base{
		Task:         t,
		encoder:      encoder,
		discount:     discount,
		speedBounds:  r1.Interval{Min: -SpeedBound, Max: SpeedBound},
		torqueBounds: r1.Interval{Min: -TorqueBound, Max: TorqueBound},
	}

	state := t.Start()
	if err := validateState(state, pendulum.speedBounds); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newBase: %v", err)
	}
	pendulum.state = state

	firstStep := ts.New(ts.First, 0.0, discount, encoder.observe(state), 0)
	pendulum.lastStep = firstStep

	return pendulum, firstStep, nil
}

// CurrentTimeStep returns the current timestep of the environment
func (p *base) CurrentTimeStep() ts.TimeStep {
	return p.lastStep
}

// State returns a copy of the current internal state (θ, θ̇) of the
// environment. The angle is unwrapped.
func (p *base) State() *mat.VecDense {
	state := mat.NewVecDense(StateDims, nil)
	state.CopyVec(p.state)
	return state
}

// Reset resets the environment, begins a new episode, and returns the
// first timestep of the new episode. The start state is drawn from the
// Task's Starter and any frame history of the observation encoding is
// cleared.
func (p *base) Reset() ts.TimeStep {
	state := p.Start()
	if err := validateState(state, p.speedBounds); err != nil {
		panic(fmt.Sprintf("reset: %v", err))
	}
	p.state = state
	p.encoder.reset()

	startStep := ts.New(ts.First, 0, p.discount, p.encoder.observe(state), 0)
	p.lastStep = startStep

	return startStep
}

// nextState computes the next internal state of the environment given
// an amount of torque to apply to the fixed base of the pendulum. The
// torque is first clipped to the appropriate torque bounds.
func (p *base) nextState(torque float64) *mat.VecDense {
	th, thdot := p.state.AtVec(0), p.state.AtVec(1)

	torque = floatutils.ClipInterval(torque, p.torqueBounds)

	// Semi-implicit Euler: the angular velocity is updated first and
	// the updated velocity advances the angle
	newthdot := thdot + (-3.0*Gravity/(2.0*Length)*math.Sin(th+math.Pi)+
		3.0/(Mass*Length*Length)*torque)*dt
	newth := th + newthdot*dt

	newthdot = floatutils.ClipInterval(newthdot, p.speedBounds)

	return mat.NewVecDense(StateDims, []float64{newth, newthdot})
}

// update updates the base environment by constructing a new current
// TimeStep from the clipped torque and the next internal state.
//
// This function is used so that the discrete and continuous action
// versions of the environment can be dealt with uniformly. Each
// calculates the torque to apply and calls this struct's nextState()
// function, whose result is passed to this function along with the
// torque, which is needed to calculate the reward.
func (p *base) update(torque, newState *mat.VecDense) (ts.TimeStep, bool) {
	// Rewards are computed from the pre-transition state and the
	// effective (clipped) torque
	reward := p.GetReward(p.state, torque, newState)
	p.state = newState

	nextStep := ts.New(ts.Mid, reward, p.discount,
		p.encoder.observe(newState), p.lastStep.Number+1)

	// Check if the step is the last in the episode and adjust the step
	// type if necessary
	p.End(&nextStep)

	p.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// DiscountSpec returns the discount specification of the environment
func (p *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{p.discount})
	upperBound := mat.NewVecDense(1, []float64{p.discount})

	return env.NewSpec(shape, env.Discount, lowerBound, upperBound,
		env.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment. The specification depends on the observation encoding:
// vector observations are bounded by (±1, ±1, ±SpeedBound), while
// image observations consist of pixel values in [0, 1].
func (p *base) ObservationSpec() env.Spec {
	dims := p.encoder.obsDims()
	shape := mat.NewVecDense(dims, nil)

	var lowerBound, upperBound *mat.VecDense
	switch p.encoder.mode {
	case Vector:
		lowerBound = mat.NewVecDense(dims, []float64{-1.0, -1.0,
			p.speedBounds.Min})
		upperBound = mat.NewVecDense(dims, []float64{1.0, 1.0,
			p.speedBounds.Max})

	case Image:
		lowerBound = mat.NewVecDense(dims, nil)
		ones := make([]float64, dims)
		for i := range ones {
			ones[i] = 1.0
		}
		upperBound = mat.NewVecDense(dims, ones)
	}

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// Close releases the rendering resources of the environment. The
// environment should not be stepped after it has been closed.
func (p *base) Close() {
	p.encoder.close()
}

// String converts the environment to a string representation
func (p *base) String() string {
	return fmt.Sprintf("Pendulum  |  θ: %v  |  θ̇: %v",
		p.state.AtVec(0), p.state.AtVec(1))
}

// Render renders the current state of the environment to the terminal
func (p *base) Render() {
	angle := normalizeAngle(p.state.AtVec(0))
	var frame string

	if angle > -math.Pi/8 && angle < math.Pi/8 {
		frame = "  | \n  ."
	} else if angle > -math.Pi/8 && angle < (3*math.Pi/8) {
		frame = "   / \n  ."
	} else if angle >= (3*math.Pi/8) && angle < (5*math.Pi/8) {
		frame = "  .--\n"
	} else if angle >= (5*math.Pi/8) && angle < (7*math.Pi/8) {
		frame = "  . \n   \\"
	} else if angle >= (7*math.Pi/8) || angle <= (-7*math.Pi/8) {
		frame = "  . \n  |"
	} else if angle > (-7*math.Pi/8) && angle <= (-5*math.Pi/8) {
		frame = "  . \n/"
	} else if angle > (-5*math.Pi/8) && angle <= (-3*math.Pi/8) {
		frame = "--.\n"
	} else if angle > (-3*math.Pi/8) && angle <= (-math.Pi/8) {
		frame = "\\ \n  ."
	}
	os.Stdout.WriteString("\x1b[3;J\x1b[H\x1b[2J")
	fmt.Printf("\n\n%s\n\n", frame)
}

// normalizeAngle wraps an unbounded angle into [-π, π)
func normalizeAngle(th float64) float64 {
	return floatutils.WrapInterval(th,
		r1.Interval{Min: -AngleBound, Max: AngleBound})
}

// validateState validates a state vector, ensuring the angular
// velocity is within the environmental limits. The angle is unwrapped
// and so is unrestricted.
func validateState(state *mat.VecDense, speedBounds r1.Interval) error {
	if l := state.Len(); l != StateDims {
		return fmt.Errorf("illegal state length \n\twant(%v) \n\thave(%v)",
			StateDims, l)
	}

	thdot := state.AtVec(1)
	if thdot < speedBounds.Min || thdot > speedBounds.Max {
		return fmt.Errorf("angular velocity %v is not within bounds %v",
			thdot, speedBounds)
	}
	return nil
}
