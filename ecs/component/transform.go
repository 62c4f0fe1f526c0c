package component

// Transform is the world placement of an entity. Scale and Alpha are render
// properties driven by tweens; NewTransform sets them to 1.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Alpha    float64
}

var TransformComponent = NewComponent[Transform]()

// NewTransform returns a transform at x, y with rest render properties.
func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1, Alpha: 1}
}

// SetProperty writes a tweenable property by name.
func (t *Transform) SetProperty(property string, v float64) bool {
	switch property {
	case "scale":
		t.ScaleX, t.ScaleY = v, v
	case "scale_x":
		t.ScaleX = v
	case "scale_y":
		t.ScaleY = v
	case "rotation":
		t.Rotation = v
	case "alpha":
		t.Alpha = v
	default:
		return false
	}
	return true
}

// ResetProperty restores a property to its rest value.
func (t *Transform) ResetProperty(property string) {
	rest := 1.0
	if property == "rotation" {
		rest = 0
	}
	t.SetProperty(property, rest)
}
