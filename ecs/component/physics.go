package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Fighters use kinematic bodies; the physics system creates Body and Shape on
// first sight.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Height float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Motion is what the combat engine asks of the movement controller.
type Motion struct {
	// Velocity in units per second, used while not seeking.
	Velocity cp.Vector
	// Seeking moves the entity toward Target at Speed until it arrives.
	Seeking bool
	Target  cp.Vector
	Speed   float64
	// Hold keeps the body still, as during a hit freeze.
	Hold bool
}

var MotionComponent = NewComponent[Motion]()
