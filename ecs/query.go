package ecs

// intersect returns the entities of base present in every other store. The
// result is a fresh slice so callers may mutate the world while iterating.
func intersect(base []Entity, others ...store) []Entity {
	out := make([]Entity, 0, len(base))
	for _, e := range base {
		keep := true
		for _, s := range others {
			if !s.has(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}
