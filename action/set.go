package action

import (
	"errors"
	"fmt"
)

// ActionSet is the per-character catalog of actions. Every action in it is a
// clone owned by the set.
type ActionSet struct {
	basics  BasicActions
	combat  []*Action
	byName  map[string]*Action
	basicOf map[*Action]BasicActionType
	lib     AnimationLibrary
}

// NewActionSet clones and validates the given actions for one character.
//
// Configuration errors never make the set unusable: an invalid basic action
// falls back to its default, an invalid or duplicate combat action is left
// out, and an unknown linkable name is dropped. All of them are joined into
// the returned error so the loader can report them.
func NewActionSet(basics BasicActions, combat []*Action, lib AnimationLibrary) (*ActionSet, error) {
	s := &ActionSet{
		byName:  make(map[string]*Action),
		basicOf: make(map[*Action]BasicActionType),
		lib:     lib,
	}
	var errs []error

	for i := range basics {
		t := BasicActionType(i)
		a := basics[i].Clone()
		if a == nil {
			a = DefaultBasicAction(t)
		} else if err := a.Validate(lib); err != nil {
			errs = append(errs, fmt.Errorf("basic %s: %w", t, err))
			a = DefaultBasicAction(t)
		}
		s.basics[i] = a
		s.basicOf[a] = t
	}

	for _, tmpl := range combat {
		a := tmpl.Clone()
		if err := a.Validate(lib); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := s.byName[a.Name]; dup {
			errs = append(errs, fmt.Errorf("action %q: %w", a.Name, ErrDuplicateAction))
			continue
		}
		s.byName[a.Name] = a
		s.combat = append(s.combat, a)
	}

	link := func(a *Action) {
		a.linked = a.linked[:0]
		for _, name := range a.Linkable {
			target, ok := s.byName[name]
			if !ok {
				errs = append(errs, fmt.Errorf("action %q: linkable %q: %w", a.Name, name, ErrUnknownAction))
				continue
			}
			a.linked = append(a.linked, target)
		}
	}
	for _, a := range s.combat {
		link(a)
	}
	for _, a := range s.basics {
		link(a)
	}

	return s, errors.Join(errs...)
}

// SelectAction returns the action the input should start, or nil.
//
// Linkable actions of current are scanned first and bypass the cancel rules.
// Combat actions then basic actions follow, in declared order, and are only
// eligible when current is cancelable or the candidate overrides it.
func (s *ActionSet) SelectAction(in Input, current *Action) *Action {
	if current != nil {
		for _, a := range current.linked {
			if a.ListensToInput && a.Trigger.Matches(in) {
				return a
			}
		}
	}
	for _, a := range s.combat {
		if s.eligible(a, in, current) {
			return a
		}
	}
	for _, a := range s.basics {
		if s.eligible(a, in, current) {
			return a
		}
	}
	return nil
}

func (s *ActionSet) eligible(a *Action, in Input, current *Action) bool {
	if !a.ListensToInput || !a.Trigger.Matches(in) {
		return false
	}
	return current == nil || current.Cancelable || a.OverrideCancelable
}

// Action returns the combat action with the given name.
func (s *ActionSet) Action(name string) (*Action, bool) {
	a, ok := s.byName[name]
	return a, ok
}

// Basic returns the basic action in slot t. An empty slot is a programming
// error.
func (s *ActionSet) Basic(t BasicActionType) *Action {
	a := s.basics.Get(t)
	if a == nil {
		panic(fmt.Sprintf("action: no basic action registered for %s", t))
	}
	return a
}

// BasicType reports which roster slot a holds, if any.
func (s *ActionSet) BasicType(a *Action) (BasicActionType, bool) {
	t, ok := s.basicOf[a]
	return t, ok
}

// CombatActions returns the combat actions in priority order.
func (s *ActionSet) CombatActions() []*Action {
	return s.combat
}

// Library returns the animation library the set was validated against.
func (s *ActionSet) Library() AnimationLibrary {
	return s.lib
}
