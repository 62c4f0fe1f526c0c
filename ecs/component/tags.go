package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// DefeatedTag marks a fighter whose death has been reported.
type DefeatedTag struct{}

var DefeatedTagComponent = NewComponent[DefeatedTag]()
