package component

// AIScript drives a fighter from a tengo script. The script runs every
// Interval ticks.
type AIScript struct {
	Name     string
	Source   []byte
	Interval int
	Timer    int
	// Version bumps when Source changes so the runtime recompiles.
	Version int
}

var AIScriptComponent = NewComponent[AIScript]()
