package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
)

// PhysicsSystem moves fighters with kinematic Chipmunk bodies. Velocities
// are in units per second and the step follows the arena time scale.
type PhysicsSystem struct {
	space  *cp.Space
	arena  *combat.Arena
	bodies map[ecs.Entity]*component.PhysicsBody
}

func NewPhysicsSystem(arena *combat.Arena) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	return &PhysicsSystem{
		space:  space,
		arena:  arena,
		bodies: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.pruneBodies(w)

	dt := ps.stepSeconds()
	ecs.ForEach3(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.MotionComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody, m *component.Motion) {
			body := ps.ensureBody(e, t, pb)
			if m.Hold || dt <= 0 || ps.frozen(w, e) {
				body.SetVelocityVector(cp.Vector{})
				return
			}
			if !m.Seeking {
				body.SetVelocityVector(m.Velocity)
				return
			}
			pos := body.Position()
			to := m.Target.Sub(pos)
			dist := to.Length()
			if m.Speed <= 0 || dist <= m.Speed*dt {
				// Arrive this step.
				body.SetPosition(m.Target)
				body.SetVelocityVector(cp.Vector{})
				m.Seeking = false
				return
			}
			body.SetVelocityVector(to.Mult(m.Speed / dist))
		})

	if dt > 0 {
		ps.space.Step(dt)
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
		if pb.Body == nil {
			return
		}
		p := pb.Body.Position()
		t.X, t.Y = p.X, p.Y
	})
}

// stepSeconds is the scaled duration of one tick.
func (ps *PhysicsSystem) stepSeconds() float64 {
	if ps.arena == nil {
		return 1 / combat.DefaultFrameRate
	}
	return ps.arena.TimeScale().Scale() / ps.arena.FrameRate()
}

func (ps *PhysicsSystem) frozen(w *ecs.World, e ecs.Entity) bool {
	f, ok := ecs.Get(w, e, component.FighterComponent.Kind())
	return ok && f.Character != nil && f.Character.Frozen()
}

func (ps *PhysicsSystem) ensureBody(e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) *cp.Body {
	if pb.Body != nil {
		return pb.Body
	}
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	w, h := pb.Width, pb.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	shape := cp.NewBox(body, w, h, 0)
	shape.SetSensor(true)
	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	pb.Body, pb.Shape = body, shape
	ps.bodies[e] = pb
	return body
}

func (ps *PhysicsSystem) pruneBodies(w *ecs.World) {
	for e, pb := range ps.bodies {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		if pb.Shape != nil {
			ps.space.RemoveShape(pb.Shape)
		}
		if pb.Body != nil {
			ps.space.RemoveBody(pb.Body)
		}
		pb.Body, pb.Shape = nil, nil
		delete(ps.bodies, e)
	}
}
