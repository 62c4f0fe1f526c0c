package combat

import (
	"fmt"
	"strings"
)

// Faction decides who may hit whom.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

var factionNames = []string{"neutral", "player", "enemy"}

func (f Faction) String() string {
	if f < 0 || int(f) >= len(factionNames) {
		return fmt.Sprintf("faction(%d)", int(f))
	}
	return factionNames[f]
}

// ParseFaction converts an authored name into a Faction.
func ParseFaction(s string) (Faction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range factionNames {
		if n == key {
			return Faction(i), nil
		}
	}
	return FactionNeutral, fmt.Errorf("unknown faction %q", s)
}

func factionCanHit(attacker, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return true
	}
	return attacker != target
}

// CanHit reports whether a fighter of faction f may hit one of target.
func (f Faction) CanHit(target Faction) bool {
	return factionCanHit(f, target)
}
