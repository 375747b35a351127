package pendulum

import (
	"math"
	"testing"

	env "github.com/samuelfneumann/gopendulum/environment"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// fixedStarter returns a Starter that always starts episodes at
// exactly (th, thdot)
func fixedStarter(th, thdot float64) env.UniformStarter {
	return env.NewUniformStarter([]r1.Interval{
		{Min: th, Max: th},
		{Min: thdot, Max: thdot},
	}, 1)
}

// newTestEnv returns a Continuous pendulum starting episodes at
// exactly (th, thdot) with episode cutoff cutoff
func newTestEnv(t *testing.T, th, thdot float64, cutoff int) *Continuous {
	t.Helper()

	task := NewSwingUp(fixedStarter(th, thdot), cutoff)
	p, _, err := NewContinuous(task, 1.0, NewVectorObservations())
	if err != nil {
		t.Fatalf("newTestEnv: %v", err)
	}
	return p
}

// angularDistance returns the absolute angular difference between two
// angles, accounting for wrap-around
func angularDistance(a, b float64) float64 {
	return math.Abs(normalizeAngle(a - b))
}

func TestStepClipsSpeed(t *testing.T) {
	starts := []float64{-SpeedBound, 0.0, SpeedBound}
	torques := []float64{-TorqueBound, TorqueBound}

	for _, thdot := range starts {
		for _, torque := range torques {
			p := newTestEnv(t, math.Pi, thdot, 1000)
			action := mat.NewVecDense(1, []float64{torque})

			for i := 0; i < 500; i++ {
				p.Step(action)

				speed := p.State().AtVec(1)
				if speed < -SpeedBound || speed > SpeedBound {
					t.Fatalf("step %v: angular velocity %v exceeds bounds "+
						"±%v", i, speed, SpeedBound)
				}
			}
		}
	}
}

func TestStepClipsTorque(t *testing.T) {
	// Overdriven torques should behave exactly like the torque bound
	excessive := []float64{100.0, 3.0, math.Inf(1)}

	for _, torque := range excessive {
		clipped := newTestEnv(t, math.Pi, 0.5, 1000)
		reference := newTestEnv(t, math.Pi, 0.5, 1000)

		stepExcessive, _ := clipped.Step(mat.NewVecDense(1,
			[]float64{torque}))
		stepBound, _ := reference.Step(mat.NewVecDense(1,
			[]float64{TorqueBound}))

		if !mat.EqualApprox(clipped.State(), reference.State(), 1e-12) {
			t.Errorf("torque %v: got state %v, want state %v", torque,
				clipped.State().RawVector().Data,
				reference.State().RawVector().Data)
		}
		if math.Abs(stepExcessive.Reward-stepBound.Reward) > 1e-12 {
			t.Errorf("torque %v: got reward %v, want reward %v", torque,
				stepExcessive.Reward, stepBound.Reward)
		}
	}
}

func TestResetStartDistribution(t *testing.T) {
	starter := env.NewUniformStarter([]r1.Interval{
		{Min: InitialAngle - InitialAngleRange,
			Max: InitialAngle + InitialAngleRange},
		{Min: -InitialSpeedRange, Max: InitialSpeedRange},
	}, 1934)

	task := NewSwingUp(starter, 200)
	p, _, err := NewContinuous(task, 1.0, NewVectorObservations())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 100; i++ {
		p.Reset()
		state := p.State()
		th, thdot := state.AtVec(0), state.AtVec(1)

		if th < InitialAngle-InitialAngleRange ||
			th > InitialAngle+InitialAngleRange {
			t.Fatalf("reset %v: θ = %v outside [π-%v, π+%v]", i, th,
				InitialAngleRange, InitialAngleRange)
		}
		if thdot < -InitialSpeedRange || thdot > InitialSpeedRange {
			t.Fatalf("reset %v: θ̇ = %v outside ±%v", i, thdot,
				InitialSpeedRange)
		}
	}
}

func TestStepFromHangingReward(t *testing.T) {
	// From exactly (π, 0) with no torque, the cost is dominated
	// entirely by the angle term: reward = -normalize(π)² = -π²
	p := newTestEnv(t, math.Pi, 0.0, 200)

	step, done := p.Step(mat.NewVecDense(1, nil))

	want := -math.Pi * math.Pi
	if math.Abs(step.Reward-want) > 1e-12 {
		t.Errorf("got reward %v, want %v", step.Reward, want)
	}
	if done {
		t.Error("episode should not end after a single step")
	}
}

func TestObservationRoundTrip(t *testing.T) {
	angles := []float64{-3.0, -1.2, 0.0, 0.5, math.Pi / 2, math.Pi,
		4.0, 7.5, -10.0}

	for _, th := range angles {
		p := newTestEnv(t, 0.0, 0.0, 200)
		p.state = mat.NewVecDense(StateDims, []float64{th, 1.0})

		obs := p.encoder.observe(p.state)
		recovered := math.Atan2(obs.AtVec(1), obs.AtVec(0))

		if dist := angularDistance(recovered, th); dist > 1e-8 {
			t.Errorf("θ = %v: recovered %v, angular distance %v", th,
				recovered, dist)
		}
		if thdot := obs.AtVec(2); thdot != 1.0 {
			t.Errorf("θ = %v: observation carries θ̇ = %v, want 1.0", th,
				thdot)
		}
	}
}

func TestEpisodeTruncation(t *testing.T) {
	cutoff := 10
	p := newTestEnv(t, math.Pi, 0.0, cutoff)
	action := mat.NewVecDense(1, nil)

	for i := 1; i < cutoff; i++ {
		step, done := p.Step(action)
		if done {
			t.Fatalf("step %v: episode ended before the %v-step cutoff", i,
				cutoff)
		}
		if step.EndType() != ts.Nil {
			t.Fatalf("step %v: got EndType %v, want Nil", i, step.EndType())
		}
	}

	step, done := p.Step(action)
	if !done {
		t.Fatal("episode did not end at the step cutoff")
	}
	if !step.Last() {
		t.Errorf("cutoff step has StepType %v, want Last", step.StepType)
	}
	if step.EndType() != ts.Timeout {
		t.Errorf("cutoff step has EndType %v, want Timeout", step.EndType())
	}
}

func TestDiscreteTorqueMapping(t *testing.T) {
	// Discrete actions should map evenly onto the continuous torque
	// range: {0, ..., 4} → {-2, -1, 0, 1, 2}
	torques := []float64{-2.0, -1.0, 0.0, 1.0, 2.0}

	for action, torque := range torques {
		task := NewSwingUp(fixedStarter(math.Pi, 0.5), 200)
		d, _, err := NewDiscrete(task, 1.0, NewVectorObservations())
		if err != nil {
			t.Fatal(err)
		}

		c := newTestEnv(t, math.Pi, 0.5, 200)

		d.Step(mat.NewVecDense(1, []float64{float64(action)}))
		c.Step(mat.NewVecDense(1, []float64{torque}))

		if !mat.EqualApprox(d.State(), c.State(), 1e-12) {
			t.Errorf("action %v: discrete state %v != continuous state %v "+
				"for torque %v", action, d.State().RawVector().Data,
				c.State().RawVector().Data, torque)
		}
	}
}

func TestStateUnwrapped(t *testing.T) {
	// The internal angle accumulates without wrapping; only the cost
	// computation normalizes it
	p := newTestEnv(t, math.Pi, SpeedBound, 10_000)
	action := mat.NewVecDense(1, []float64{TorqueBound})

	for i := 0; i < 100; i++ {
		p.Step(action)
	}

	if th := p.State().AtVec(0); th <= AngleBound {
		t.Errorf("after 100 full-torque steps from max speed, θ = %v "+
			"should have accumulated past %v", th, AngleBound)
	}
}
