package combat

import (
	"sort"

	"github.com/milk9111/brawler/action"
)

type entryKind int

const (
	entryEvent entryKind = iota
	entryRevert
	entryForceStart
	entryForceEnd
)

// entry is a timer keyed by a character clock time. Owned entries die with
// their action instance; the rest belong to the character.
type entry struct {
	due   float64
	seq   uint64
	kind  entryKind
	inst  *instance
	owned bool

	event  action.Event
	force  *action.Force
	active *activeForce
	revert func()
}

// scheduler keeps entries sorted by due time. Entries sharing a due time
// keep insertion order.
type scheduler struct {
	entries []entry
	seq     uint64
}

func (s *scheduler) add(e entry) {
	s.seq++
	e.seq = s.seq
	i := sort.Search(len(s.entries), func(i int) bool { return s.entries[i].due > e.due })
	s.entries = append(s.entries, entry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = e
}

// popDue removes and returns the earliest entry due at or before now.
func (s *scheduler) popDue(now float64) (entry, bool) {
	if len(s.entries) == 0 || s.entries[0].due > now {
		return entry{}, false
	}
	e := s.entries[0]
	copy(s.entries, s.entries[1:])
	s.entries[len(s.entries)-1] = entry{}
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// cancel drops every entry owned by inst.
func (s *scheduler) cancel(inst *instance) {
	s.removeIf(func(e *entry) bool { return e.owned && e.inst == inst })
}

// pending reports whether inst still owns an entry.
func (s *scheduler) pending(inst *instance) bool {
	for i := range s.entries {
		if s.entries[i].owned && s.entries[i].inst == inst {
			return true
		}
	}
	return false
}

func (s *scheduler) removeIf(drop func(e *entry) bool) {
	kept := s.entries[:0]
	for i := range s.entries {
		if !drop(&s.entries[i]) {
			kept = append(kept, s.entries[i])
		}
	}
	for i := len(kept); i < len(s.entries); i++ {
		s.entries[i] = entry{}
	}
	s.entries = kept
}

func (s *scheduler) len() int {
	return len(s.entries)
}
