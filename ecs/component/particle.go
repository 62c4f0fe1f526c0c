package component

import (
	"image/color"

	"github.com/jakecoffman/cp"
)

// Particle is a short-lived debug sprite. It lives as long as its TTL.
type Particle struct {
	Effect   string
	Velocity cp.Vector
	Size     float64
	Color    color.NRGBA
}

var ParticleComponent = NewComponent[Particle]()
