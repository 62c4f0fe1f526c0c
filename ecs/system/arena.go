package system

import (
	"github.com/milk9111/brawler/combat"
	"github.com/milk9111/brawler/ecs"
)

// ArenaSystem steps the combat engine once per update.
type ArenaSystem struct {
	arena *combat.Arena
}

func NewArenaSystem(arena *combat.Arena) *ArenaSystem {
	return &ArenaSystem{arena: arena}
}

func (s *ArenaSystem) Update(_ *ecs.World) {
	if s == nil || s.arena == nil {
		return
	}
	s.arena.Tick()
}
