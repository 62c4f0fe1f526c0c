package component

// CameraShake oscillates the camera while Active. Speed is in cycles per
// second and Magnitude in world units.
type CameraShake struct {
	Speed     float64
	Magnitude float64
	Active    bool
	Phase     float64
	// Depth counts overlapping shakes.
	Depth int
}

var CameraShakeComponent = NewComponent[CameraShake]()
