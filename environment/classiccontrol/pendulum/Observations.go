package pendulum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// VectorObservationDims is the size of vector-encoded observations
const VectorObservationDims int = 3

// ObservationMode determines how the environment encodes its internal
// state into observations
type ObservationMode string

const (
	// Vector encodes the state as the 3-vector (cos θ, sin θ, θ̇)
	Vector ObservationMode = "Vector"

	// Image encodes the state as a flattened RGB image of the rendered
	// scene, optionally stacked over a sliding window of prior frames
	Image ObservationMode = "Image"
)

// Observations configures the observation encoding of the environment.
// The configuration is fixed for the lifetime of an environment.
//
// ImageDims and SlidingWindow are meaningful in Image mode only.
// Observations in Image mode are flattened vectors of
// ImageDims² × 3 × (SlidingWindow + 1) pixel channel values in [0, 1].
type Observations struct {
	Mode          ObservationMode
	ImageDims     int // Side length of rendered observations, in pixels
	SlidingWindow int // Number of prior frames stacked onto each observation
}

// NewVectorObservations returns the configuration for vector-encoded
// observations
func NewVectorObservations() Observations {
	return Observations{Mode: Vector}
}

// NewImageObservations returns the configuration for image-encoded
// observations with frames of side length imageDims, each observation
// stacked with the slidingWindow previous frames.
func NewImageObservations(imageDims, slidingWindow int) Observations {
	return Observations{
		Mode:          Image,
		ImageDims:     imageDims,
		SlidingWindow: slidingWindow,
	}
}

// obsEncoder encodes internal (θ, θ̇) states into observations. In
// Image mode the encoder owns the frame renderer and the sliding
// window of previously rendered frames.
type obsEncoder struct {
	mode          ObservationMode
	imageDims     int
	slidingWindow int

	renderer   *renderer
	prevFrames [][]float64 // most recent first
}

func newObsEncoder(obs Observations) (*obsEncoder, error) {
	switch obs.Mode {
	case Vector:
		return &obsEncoder{mode: Vector}, nil

	case Image:
		if obs.ImageDims <= 0 {
			return nil, fmt.Errorf("image dims must be positive "+
				"\n\thave(%v)", obs.ImageDims)
		}
		if obs.SlidingWindow < 0 {
			return nil, fmt.Errorf("sliding window cannot be negative "+
				"\n\thave(%v)", obs.SlidingWindow)
		}
		return &obsEncoder{
			mode:          Image,
			imageDims:     obs.ImageDims,
			slidingWindow: obs.SlidingWindow,
			renderer:      newRenderer(),
		}, nil
	}

	return nil, fmt.Errorf("no such observation mode %q", obs.Mode)
}

// obsDims returns the length of encoded observation vectors
func (e *obsEncoder) obsDims() int {
	if e.mode == Image {
		return e.imageDims * e.imageDims * frameChannels *
			(e.slidingWindow + 1)
	}
	return VectorObservationDims
}

// reset clears the frame history. It is called at the start of each
// episode so that frames cannot leak across episode boundaries.
func (e *obsEncoder) reset() {
	e.prevFrames = nil
}

// observe encodes an internal state into an observation vector
func (e *obsEncoder) observe(state *mat.VecDense) *mat.VecDense {
	th, thdot := state.AtVec(0), state.AtVec(1)

	if e.mode == Vector {
		return mat.NewVecDense(VectorObservationDims, []float64{
			math.Cos(th),
			math.Sin(th),
			thdot,
		})
	}

	frame := e.renderer.frame(th, e.imageDims)
	if e.slidingWindow == 0 {
		return mat.NewVecDense(len(frame), frame)
	}

	// The first observation of an episode replicates the current
	// frame across the entire window
	if e.prevFrames == nil {
		e.prevFrames = make([][]float64, e.slidingWindow)
		for i := range e.prevFrames {
			e.prevFrames[i] = frame
		}
	}

	stack := make([][]float64, 0, e.slidingWindow+1)
	stack = append(stack, frame)
	stack = append(stack, e.prevFrames...)

	obs := make([]float64, 0, e.obsDims())
	for _, f := range stack {
		obs = append(obs, f...)
	}

	// Slide the window: the oldest frame falls off
	e.prevFrames = stack[:len(stack)-1]

	return mat.NewVecDense(len(obs), obs)
}

// close releases the renderer and any frame history
func (e *obsEncoder) close() {
	e.renderer = nil
	e.prevFrames = nil
}
