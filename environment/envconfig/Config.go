// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/gopendulum/environment"
	"github.com/samuelfneumann/gopendulum/environment/classiccontrol/pendulum"
	ts "github.com/samuelfneumann/gopendulum/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Pendulum EnvName = "Pendulum"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	SwingUp TaskName = "SwingUp"
)

// DefaultEpisodeCutoff is the episode step limit used when a Config
// leaves EpisodeCutoff unset
const DefaultEpisodeCutoff uint = 200

// Config implements a specific configuration of a specific environment
// and specific task. All fields are named and typed; there is no
// dynamic keyword injection.
type Config struct {
	Environment       EnvName
	Task              TaskName
	ContinuousActions bool
	EpisodeCutoff     uint
	Discount          float64

	// Observation encoding. ImageDims and SlidingWindow apply to
	// image-encoded observations only.
	ObservationMode pendulum.ObservationMode
	ImageDims       int
	SlidingWindow   int
}

// NewConfig returns a new environment Config with vector-encoded
// observations
func NewConfig(envName EnvName, taskName TaskName, continuousActions bool,
	episodeCutoff uint, discount float64) Config {
	return Config{
		Environment:       envName,
		Task:              taskName,
		ContinuousActions: continuousActions,
		EpisodeCutoff:     episodeCutoff,
		Discount:          discount,
		ObservationMode:   pendulum.Vector,
	}
}

// NewImageConfig returns a new environment Config with image-encoded
// observations of side length imageDims, stacked over slidingWindow
// prior frames
func NewImageConfig(envName EnvName, taskName TaskName,
	continuousActions bool, episodeCutoff uint, discount float64,
	imageDims, slidingWindow int) Config {
	config := NewConfig(envName, taskName, continuousActions, episodeCutoff,
		discount)
	config.ObservationMode = pendulum.Image
	config.ImageDims = imageDims
	config.SlidingWindow = slidingWindow

	return config
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	switch c.Environment {
	case Pendulum:
		return c.createPendulum(seed)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: no such environment %v",
		c.Environment)
}

// createPendulum is a factory for creating the pendulum environment
// with default physical parameters and default task parameters
func (c Config) createPendulum(seed uint64) (env.Environment, ts.TimeStep,
	error) {
	angle := r1.Interval{
		Min: pendulum.InitialAngle - pendulum.InitialAngleRange,
		Max: pendulum.InitialAngle + pendulum.InitialAngleRange,
	}
	speed := r1.Interval{
		Min: -pendulum.InitialSpeedRange,
		Max: pendulum.InitialSpeedRange,
	}

	starter := env.NewUniformStarter([]r1.Interval{angle, speed}, seed)

	cutoff := c.EpisodeCutoff
	if cutoff == 0 {
		cutoff = DefaultEpisodeCutoff
	}

	var task env.Task
	switch c.Task {
	case SwingUp:
		task = pendulum.NewSwingUp(starter, int(cutoff))

	default:
		return nil, ts.TimeStep{}, fmt.Errorf("createPendulum: Pendulum "+
			"environment has no task %v", c.Task)
	}

	var obs pendulum.Observations
	switch c.ObservationMode {
	case pendulum.Vector:
		obs = pendulum.NewVectorObservations()

	case pendulum.Image:
		obs = pendulum.NewImageObservations(c.ImageDims, c.SlidingWindow)

	default:
		return nil, ts.TimeStep{}, fmt.Errorf("createPendulum: no such "+
			"observation mode %q", c.ObservationMode)
	}

	if c.ContinuousActions {
		p, firstStep, err := pendulum.NewContinuous(task, c.Discount, obs)
		if err != nil {
			return nil, ts.TimeStep{}, err
		}
		return p, firstStep, nil
	}

	p, firstStep, err := pendulum.NewDiscrete(task, c.Discount, obs)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return p, firstStep, nil
}
