package envconfig

import (
	"testing"

	"github.com/samuelfneumann/gopendulum/environment/classiccontrol/pendulum"
	"gonum.org/v1/gonum/mat"
)

func TestCreateVector(t *testing.T) {
	config := NewConfig(Pendulum, SwingUp, true, 200, 0.99)

	env, firstStep, err := config.Create(14)
	if err != nil {
		t.Fatal(err)
	}
	if !firstStep.First() {
		t.Error("create: first timestep should have StepType First")
	}

	if l := env.ObservationSpec().Shape.Len(); l != 3 {
		t.Errorf("got observation shape %v, want 3", l)
	}

	// The environment should be usable as constructed
	step, done := env.Step(mat.NewVecDense(1, []float64{1.0}))
	if done {
		t.Error("step: episode ended on the first step")
	}
	if step.Number != 1 {
		t.Errorf("step: got step number %v, want 1", step.Number)
	}
}

func TestCreateImage(t *testing.T) {
	dims, window := 4, 1
	config := NewImageConfig(Pendulum, SwingUp, false, 200, 0.99, dims,
		window)

	env, _, err := config.Create(14)
	if err != nil {
		t.Fatal(err)
	}

	want := dims * dims * 3 * (window + 1)
	if l := env.ObservationSpec().Shape.Len(); l != want {
		t.Errorf("got observation shape %v, want %v", l, want)
	}

	step, _ := env.Step(mat.NewVecDense(1, []float64{2.0}))
	if l := step.Observation.Len(); l != want {
		t.Errorf("got observation length %v, want %v", l, want)
	}
}

func TestCreateDefaultsEpisodeCutoff(t *testing.T) {
	config := NewConfig(Pendulum, SwingUp, true, 0, 1.0)

	env, _, err := config.Create(3)
	if err != nil {
		t.Fatal(err)
	}

	action := mat.NewVecDense(1, nil)
	var done bool
	var steps int
	for !done {
		_, done = env.Step(action)
		steps++

		if steps > int(DefaultEpisodeCutoff) {
			t.Fatalf("episode ran past the default cutoff of %v steps",
				DefaultEpisodeCutoff)
		}
	}

	if steps != int(DefaultEpisodeCutoff) {
		t.Errorf("episode ended after %v steps, want %v", steps,
			DefaultEpisodeCutoff)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, _, err := NewConfig("Cartpole", SwingUp, true, 200,
		1.0).Create(1); err == nil {
		t.Error("expected an error for an unknown environment")
	}

	if _, _, err := NewConfig(Pendulum, "Balance", true, 200,
		1.0).Create(1); err == nil {
		t.Error("expected an error for an unknown task")
	}

	config := NewConfig(Pendulum, SwingUp, true, 200, 1.0)
	config.ObservationMode = pendulum.ObservationMode("Sound")
	if _, _, err := config.Create(1); err == nil {
		t.Error("expected an error for an unknown observation mode")
	}
}
