package pendulum

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

const (
	// ScreenDims is the side length in pixels of fully rendered frames
	ScreenDims int = 500

	// The renderer views the world box [-2.2, 2.2] × [-2.2, 2.2], with
	// the pendulum's fixed base at the origin
	worldBound float64 = 2.2

	// Rod and axle sizes in world units
	rodWidth   float64 = 0.2
	axleRadius float64 = 0.05

	// Rendered frames are RGB
	frameChannels int = 3
)

// renderer draws the pendulum scene into RGB images. Rendering is done
// at full ScreenDims resolution and scaled down for image-encoded
// observations.
type renderer struct {
	scale float64 // pixels per world unit
}

func newRenderer() *renderer {
	return &renderer{scale: float64(ScreenDims) / (2 * worldBound)}
}

// rgba renders the scene for a pendulum at angle th into a full
// resolution RGB image. The angle is measured from the positive
// y-axis, so th = 0 draws the rod pointing straight up.
func (r *renderer) rgba(th float64) *image.RGBA {
	dc := gg.NewContext(ScreenDims, ScreenDims)
	dc.SetRGB(1.0, 1.0, 1.0)
	dc.Clear()

	centre := float64(ScreenDims) / 2.0

	// Screen y grows downward, world y grows upward
	tipX := centre + r.scale*Length*math.Cos(th+math.Pi/2)
	tipY := centre - r.scale*Length*math.Sin(th+math.Pi/2)

	// Rod
	dc.SetRGB(0.8, 0.3, 0.3)
	dc.SetLineWidth(rodWidth * r.scale)
	dc.SetLineCapRound()
	dc.DrawLine(centre, centre, tipX, tipY)
	dc.Stroke()

	// Axle
	dc.SetRGB(0.0, 0.0, 0.0)
	dc.DrawCircle(centre, centre, axleRadius*r.scale)
	dc.Fill()

	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	rgba := image.NewRGBA(img.Bounds())
	xdraw.Draw(rgba, rgba.Bounds(), img, image.Point{}, xdraw.Src)
	return rgba
}

// frame renders the scene for a pendulum at angle th, scales it down
// to dims × dims with bilinear interpolation, and returns the RGB
// channel values normalized to [0, 1] in row-major order.
func (r *renderer) frame(th float64, dims int) []float64 {
	src := r.rgba(th)

	dst := image.NewRGBA(image.Rect(0, 0, dims, dims))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	frame := make([]float64, 0, dims*dims*frameChannels)
	for y := 0; y < dims; y++ {
		for x := 0; x < dims; x++ {
			c := dst.RGBAAt(x, y)
			frame = append(frame,
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			)
		}
	}
	return frame
}

// RGBFrame returns the current state of the environment rendered as a
// full-resolution RGB image. External video-capture collaborators grab
// frames from here; the environment itself never encodes video.
func (p *base) RGBFrame() *image.RGBA {
	if p.encoder.renderer == nil {
		p.encoder.renderer = newRenderer()
	}
	return p.encoder.renderer.rgba(p.state.AtVec(0))
}
