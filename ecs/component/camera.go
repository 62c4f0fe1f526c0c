package component

import "github.com/jakecoffman/cp"

type Camera struct {
	// Offset is the view displacement applied when drawing.
	Offset cp.Vector
	Zoom   float64
}

var CameraComponent = NewComponent[Camera]()
