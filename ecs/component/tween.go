package component

// TweenTrack eases one render property from From toward To.
type TweenTrack struct {
	Property string
	From     float64
	To       float64
	Elapsed  int
	Frames   int
}

// Tween holds the running tracks of an entity, one per property.
type Tween struct {
	Tracks map[string]*TweenTrack
}

var TweenComponent = NewComponent[Tween]()
