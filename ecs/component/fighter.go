package component

import "github.com/milk9111/brawler/combat"

// Fighter links an entity to its combat character.
type Fighter struct {
	Character *combat.Character
	// Spec is the prefab the fighter was built from, used on reload.
	Spec string
}

var FighterComponent = NewComponent[Fighter]()
